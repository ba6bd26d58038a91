package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestLandMask(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.SetGray(x, 0, color.Gray{Y: 255})
		img.SetGray(x, 1, color.Gray{Y: 0})
	}
	// left half of the bottom row light again
	img.SetGray(0, 1, color.Gray{Y: 255})
	img.SetGray(1, 1, color.Gray{Y: 255})

	rows := landMask(img, 4, 2, 128)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0] != "    " {
		t.Errorf("Expected water row, got %q", rows[0])
	}
	if rows[1] != "  ##" {
		t.Errorf("Expected half land row, got %q", rows[1])
	}
}

func TestWriteBitmap(t *testing.T) {
	var buf bytes.Buffer
	writeBitmap(&buf, []string{"# ", " #"})
	out := buf.String()

	if !strings.HasPrefix(out, "// Code generated") {
		t.Errorf("Missing generated header: %q", out)
	}
	for _, want := range []string{"package main", "func earthBitmap() []string {", "\"# \",", "\" #\","} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}
