package main

// Regenerates ../earthmap.go from an equirectangular projection PNG of Earth.
// Original projection borrowed from https://github.com/arscan/encom-globe
//
//	go run ./utils -in equirectangle_projection.png -out earthmap.go

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

func main() {
	var (
		inPath    string
		outPath   string
		width     int
		height    int
		threshold int
	)
	flag.StringVar(&inPath, "in", "equirectangle_projection.png", "Source PNG (light = water, dark = land)")
	flag.StringVar(&outPath, "out", "", "Output Go file (default: stdout)")
	flag.IntVar(&width, "w", 120, "Bitmap width in cells")
	flag.IntVar(&height, "h", 60, "Bitmap height in cells")
	flag.IntVar(&threshold, "t", 128, "Brightness threshold 0-255 separating water from land")
	flag.Parse()

	if width < 8 || height < 4 {
		fmt.Fprintf(os.Stderr, "Error: bitmap must be at least 8x4 (got %dx%d)\n", width, height)
		os.Exit(1)
	}
	if threshold < 0 || threshold > 255 {
		fmt.Fprintf(os.Stderr, "Error: threshold must be 0-255 (got %d)\n", threshold)
		os.Exit(1)
	}

	file, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding PNG: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	writeBitmap(w, landMask(img, width, height, uint32(threshold)))
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing bitmap: %v\n", err)
		os.Exit(1)
	}
}

// landMask samples img onto a width x height grid of '#' (land) and ' ' (water).
func landMask(img image.Image, width, height int, threshold uint32) []string {
	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / float64(width)
	scaleY := float64(bounds.Dy()) / float64(height)

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			imgX := bounds.Min.X + int(float64(x)*scaleX)
			imgY := bounds.Min.Y + int(float64(y)*scaleY)
			r, g, b, _ := img.At(imgX, imgY).RGBA()
			// RGBA is 16-bit per channel
			if (r+g+b)/3>>8 > threshold {
				row[x] = ' '
			} else {
				row[x] = '#'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

func writeBitmap(w io.Writer, rows []string) {
	fmt.Fprintln(w, "// Code generated by utils/convert_png.go from an equirectangular projection; DO NOT EDIT.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "package main")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "// earthBitmap is a %dx%d land mask. Row 0 is the north pole, column 0 is\n", len(rows[0]), len(rows))
	fmt.Fprintln(w, "// longitude -180. Land is '#', water is a space.")
	fmt.Fprintln(w, "func earthBitmap() []string {")
	fmt.Fprintln(w, "\treturn []string{")
	for _, row := range rows {
		fmt.Fprintf(w, "\t\t%q,\n", row)
	}
	fmt.Fprintln(w, "\t}")
	fmt.Fprintln(w, "}")
}
