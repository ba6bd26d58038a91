package main

import (
	"math"

	"chronicle-globe/internal/camera"
	"chronicle-globe/internal/geo"
	"chronicle-globe/internal/scene"
)

// cellKind decides the style a raster cell is drawn with.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLand
	cellRim
	cellArc
	cellMarker
	cellGlow
	cellHighlight
	cellHome
)

type Cell struct {
	Ch    rune
	Kind  cellKind
	Light float64
}

// Globe rasterises the earth bitmap and scene overlays for one camera.
type Globe struct {
	Radius      float64
	Width       int
	Height      int
	EarthMap    []string
	MapWidth    int
	MapHeight   int
	AspectRatio float64
	Charset     Charset
}

// Night-side sun direction in view space: from the upper left, behind the
// globe, so a terminator crosses the disk.
var nightSun = geo.Vec3{X: -0.8, Y: 0.35, Z: 0.45}.Normalize()

func NewGlobe(width, height int, aspectRatio float64, charset Charset) *Globe {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	effectiveHeight := float64(height) * aspectRatio
	radius := math.Min(float64(width)/2.5, effectiveHeight/2.5)
	if radius < 1.0 {
		radius = 1.0
	}

	earthMap := earthBitmap()
	return &Globe{
		Radius:      radius,
		Width:       width,
		Height:      height,
		EarthMap:    earthMap,
		MapWidth:    len(earthMap[0]),
		MapHeight:   len(earthMap),
		AspectRatio: aspectRatio,
		Charset:     charset,
	}
}

func (g *Globe) sampleEarthAt(lat, lon float64) byte {
	y := int((90 - lat) / 180 * float64(g.MapHeight-1))
	x := int((lon + 180) / 360 * float64(g.MapWidth-1))
	if y < 0 {
		y = 0
	}
	if y >= g.MapHeight {
		y = g.MapHeight - 1
	}
	if x < 0 {
		x = 0
	}
	if x >= g.MapWidth {
		x = g.MapWidth - 1
	}
	return g.EarthMap[y][x]
}

// lighting is the land brightness for a view-space surface normal.
func lighting(sc *scene.Scene, normal geo.Vec3) float64 {
	if sc.Mode != scene.Night {
		return sc.LightIntensity
	}
	// LightIntensity is the ambient floor, the sun adds Lambertian diffuse on top
	return sc.LightIntensity + (1-sc.LightIntensity)*math.Max(0, normal.Dot(nightSun))
}

// project maps a view-space point to a raster cell. ok is false when the
// cell is off the raster.
func (g *Globe) project(v geo.Vec3, radius float64) (x, y int, ok bool) {
	x = int(math.Round(v.X*radius)) + g.Width/2
	y = int(math.Round(-v.Y*radius/g.AspectRatio)) + g.Height/2
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0, 0, false
	}
	return x, y, true
}

// occluded reports whether a view-space point sits behind the unit globe.
func occluded(v geo.Vec3) bool {
	return v.Z < 0 && v.X*v.X+v.Y*v.Y < 1
}

func (g *Globe) render(cam *camera.Camera, sc *scene.Scene) [][]Cell {
	if g.Width <= 0 || g.Height <= 0 {
		return [][]Cell{{{Ch: ' '}}}
	}

	density := make([][]float64, g.Height)
	light := make([][]float64, g.Height)
	for i := range density {
		density[i] = make([]float64, g.Width)
		light[i] = make([]float64, g.Width)
	}

	centerX, centerY := g.Width/2, g.Height/2
	radius := g.Radius * cam.Scale()
	right, up, forward := cam.Basis()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			dx := float64(x - centerX)
			dy := float64(y-centerY) * g.AspectRatio
			distance := math.Sqrt(dx*dx + dy*dy)

			if distance <= radius {
				nx := dx / radius
				ny := -dy / radius
				nzSquared := 1 - nx*nx - ny*ny
				if nzSquared >= 0 {
					normal := geo.Vec3{X: nx, Y: ny, Z: math.Sqrt(nzSquared)}
					world := right.Scale(normal.X).Add(up.Scale(normal.Y)).Add(forward.Scale(normal.Z))
					lat, lon := geo.LatLon(world)

					if g.sampleEarthAt(lat, lon) != ' ' {
						lightFactor := lighting(sc, normal)
						light[y][x] = lightFactor
						density[y][x] += lightFactor

						// Anti-aliasing
						for ay := -1; ay <= 1; ay++ {
							for ax := -1; ax <= 1; ax++ {
								x2, y2 := x+ax, y+ay
								if x2 >= 0 && x2 < g.Width && y2 >= 0 && y2 < g.Height {
									density[y2][x2] += 0.05 * lightFactor
								}
							}
						}
					}
				}
			}

			if distance > radius-0.5 && distance < radius+0.5 {
				density[y][x] += 0.2
			}
		}
	}

	screen := make([][]Cell, g.Height)
	for y := range screen {
		screen[y] = make([]Cell, g.Width)
		for x := range screen[y] {
			c := Cell{Ch: densityToChar(density[y][x], g.Charset), Light: light[y][x]}
			switch {
			case c.Ch == ' ':
				c.Kind = cellEmpty
			case light[y][x] > 0:
				c.Kind = cellLand
			default:
				c.Kind = cellRim
			}
			screen[y][x] = c
		}
	}

	// Globe positions are at DefaultRadius; the raster disk is the unit sphere.
	for _, grp := range sc.Groups() {
		if !grp.Visible {
			continue
		}
		for _, line := range grp.Lines {
			g.drawLine(screen, cam, radius, line)
		}
	}
	for _, grp := range sc.Groups() {
		if !grp.Visible {
			continue
		}
		for _, m := range grp.Markers {
			g.drawMarker(screen, cam, sc, radius, grp.Name, m)
		}
	}

	return screen
}

func (g *Globe) drawLine(screen [][]Cell, cam *camera.Camera, radius float64, line scene.Line) {
	for _, p := range line.Points {
		v := cam.ToView(p)
		if occluded(v) {
			continue
		}
		x, y, ok := g.project(v, radius)
		if !ok {
			continue
		}
		if k := screen[y][x].Kind; k == cellEmpty || k == cellLand || k == cellRim {
			screen[y][x] = Cell{Ch: '·', Kind: cellArc}
		}
	}
}

func (g *Globe) drawMarker(screen [][]Cell, cam *camera.Camera, sc *scene.Scene, radius float64, group string, m scene.Marker) {
	v := cam.ToView(m.Position)
	if v.Z < 0 {
		return
	}
	x, y, ok := g.project(v, radius)
	if !ok {
		return
	}
	switch {
	case group == scene.GroupHome:
		screen[y][x] = Cell{Ch: 'H', Kind: cellHome}
	case m.ID == sc.Highlight:
		screen[y][x] = Cell{Ch: '@', Kind: cellHighlight}
	case sc.EmissiveIntensity > 0:
		screen[y][x] = Cell{Ch: '*', Kind: cellGlow, Light: sc.EmissiveIntensity}
	default:
		screen[y][x] = Cell{Ch: '*', Kind: cellMarker}
	}
}
