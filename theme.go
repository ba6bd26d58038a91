package main

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// shadeLevels is how many land styles are precomputed between the shaded
// and fully lit globe colours.
const shadeLevels = 8

type Theme struct {
	Name        string
	Background  tcell.Color
	Text        tcell.Color
	Globe       tcell.Color
	GlobeShaded tcell.Color
	Marker      tcell.Color
	Highlight   tcell.Color
	Arc         tcell.Color
	Home        tcell.Color
	Heading     tcell.Color
	Accent      tcell.Color
	Dim         tcell.Color
	Separator   tcell.Color
	Error       tcell.Color

	land [shadeLevels]tcell.Style
}

type palette struct {
	background, text, globe, globeShaded, marker, highlight, arc, home, heading, accent, dim, separator, errColor string
}

var palettes = map[string]palette{
	"default": {
		background: "#000000", text: "#ffffff", globe: "#00c000", globeShaded: "#004800",
		marker: "#ff3030", highlight: "#ffff00", arc: "#ff9600", home: "#00ffff",
		heading: "#ffff00", accent: "#00ffff", dim: "#808080", separator: "#808080", errColor: "#ff0000",
	},
	"matrix": {
		background: "#000000", text: "#00ff41", globe: "#00ff41", globeShaded: "#005a18",
		marker: "#a0ffa0", highlight: "#ffffff", arc: "#00ff64", home: "#64ff64",
		heading: "#00c832", accent: "#00b42d", dim: "#006419", separator: "#006419", errColor: "#00962a",
	},
	"amber": {
		background: "#000000", text: "#ffb000", globe: "#ffb000", globeShaded: "#5a3c00",
		marker: "#ffdc64", highlight: "#ffffff", arc: "#ffc850", home: "#ffe6a0",
		heading: "#ffa000", accent: "#dc8c00", dim: "#785000", separator: "#785000", errColor: "#b46400",
	},
	"solarized": {
		background: "#002b36", text: "#839496", globe: "#2aa198", globeShaded: "#0f4a46",
		marker: "#dc322f", highlight: "#b58900", arc: "#cb4b16", home: "#268bd2",
		heading: "#b58900", accent: "#268bd2", dim: "#586e75", separator: "#586e75", errColor: "#dc322f",
	},
	"nord": {
		background: "#2e3440", text: "#d8dee9", globe: "#88c0d0", globeShaded: "#3b4f63",
		marker: "#bf616a", highlight: "#ebcb8b", arc: "#d08770", home: "#a3be8c",
		heading: "#ebcb8b", accent: "#81a1c1", dim: "#4c566a", separator: "#4c566a", errColor: "#bf616a",
	},
	"dracula": {
		background: "#282a36", text: "#f8f8f2", globe: "#50fa7b", globeShaded: "#1e5a30",
		marker: "#ff5555", highlight: "#f1fa8c", arc: "#ffb86c", home: "#8be9fd",
		heading: "#f1fa8c", accent: "#bd93f9", dim: "#6272a4", separator: "#6272a4", errColor: "#ff5555",
	},
	"mono": {
		background: "#000000", text: "#ffffff", globe: "#ffffff", globeShaded: "#606060",
		marker: "#ffffff", highlight: "#ffffff", arc: "#c0c0c0", home: "#ffffff",
		heading: "#ffffff", accent: "#ffffff", dim: "#a0a0a0", separator: "#ffffff", errColor: "#ffffff",
	},
}

var themes = buildThemes()

func buildThemes() map[string]*Theme {
	out := make(map[string]*Theme, len(palettes))
	for name, p := range palettes {
		out[name] = newTheme(name, p)
	}
	return out
}

func newTheme(name string, s palette) *Theme {
	t := &Theme{
		Name:        name,
		Background:  hexColor(s.background),
		Text:        hexColor(s.text),
		Globe:       hexColor(s.globe),
		GlobeShaded: hexColor(s.globeShaded),
		Marker:      hexColor(s.marker),
		Highlight:   hexColor(s.highlight),
		Arc:         hexColor(s.arc),
		Home:        hexColor(s.home),
		Heading:     hexColor(s.heading),
		Accent:      hexColor(s.accent),
		Dim:         hexColor(s.dim),
		Separator:   hexColor(s.separator),
		Error:       hexColor(s.errColor),
	}
	lit := mustHex(s.globe)
	shaded := mustHex(s.globeShaded)
	t.land[0] = t.fg(t.GlobeShaded)
	t.land[shadeLevels-1] = t.fg(t.Globe)
	for i := 1; i < shadeLevels-1; i++ {
		frac := float64(i) / float64(shadeLevels-1)
		t.land[i] = t.fg(toTcell(shaded.BlendLab(lit, frac).Clamped()))
	}
	return t
}

// themeNames lists themes in cycling order with "default" first.
func themeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		if name != "default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"default"}, names...)
}

func lookupTheme(name string, monochrome bool) *Theme {
	if monochrome {
		return themes["mono"]
	}
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

func (t *Theme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Text)
}

func (t *Theme) fg(c tcell.Color) tcell.Style {
	return t.base().Foreground(c)
}

// LandStyle picks the land colour for a light level in [0,1].
func (t *Theme) LandStyle(light float64) tcell.Style {
	if light < 0 {
		light = 0
	}
	if light > 1 {
		light = 1
	}
	return t.land[int(light*float64(shadeLevels-1)+0.5)]
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad colour " + s)
	}
	return c
}

func hexColor(s string) tcell.Color {
	return toTcell(mustHex(s))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
