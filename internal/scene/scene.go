// Package scene holds the retained visual state the renderer reads every
// tick: marker and line groups, the globe's lighting mode and the
// highlighted topic.
package scene

import "chronicle-globe/internal/geo"

// Group names.
const (
	GroupPOI         = "poi"
	GroupConnections = "connections"
	GroupHome        = "home"
)

type GlobeMode int

const (
	Day GlobeMode = iota
	Night
)

func (m GlobeMode) String() string {
	if m == Night {
		return "night"
	}
	return "day"
}

// Marker is a point of interest on the globe surface.
type Marker struct {
	ID       string
	Label    string
	Lat      float64
	Lon      float64
	Position geo.Vec3
}

// Line is a sampled polyline, usually an arc between two topics.
type Line struct {
	From   string
	To     string
	Points []geo.Vec3
}

// Group is a named set of primitives shown or hidden together.
type Group struct {
	Name    string
	Visible bool
	Markers []Marker
	Lines   []Line
}

func (g *Group) AddMarker(m Marker) { g.Markers = append(g.Markers, m) }

func (g *Group) AddLine(l Line) { g.Lines = append(g.Lines, l) }

// Primitives counts markers and lines in the group.
func (g *Group) Primitives() int { return len(g.Markers) + len(g.Lines) }

func (g *Group) Clear() {
	g.Markers = nil
	g.Lines = nil
}

// Scene is owned by the controller loop; it has no locking.
type Scene struct {
	Mode GlobeMode
	// LightIntensity scales sunlit land; EmissiveIntensity lights markers
	// on the dark side.
	LightIntensity    float64
	EmissiveIntensity float64
	Highlight         string

	groups map[string]*Group
	order  []string
}

func New() *Scene {
	s := &Scene{groups: make(map[string]*Group)}
	for _, name := range []string{GroupConnections, GroupPOI, GroupHome} {
		s.groups[name] = &Group{Name: name, Visible: true}
		s.order = append(s.order, name)
	}
	s.SetMode(Day)
	return s
}

// Group returns the named group, creating an empty visible one if needed.
func (s *Scene) Group(name string) *Group {
	g, ok := s.groups[name]
	if !ok {
		g = &Group{Name: name, Visible: true}
		s.groups[name] = g
		s.order = append(s.order, name)
	}
	return g
}

// Groups returns groups in draw order.
func (s *Scene) Groups() []*Group {
	out := make([]*Group, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.groups[name])
	}
	return out
}

// SetVisible shows or hides a group without touching its contents.
func (s *Scene) SetVisible(name string, visible bool) {
	s.Group(name).Visible = visible
}

// SetMode switches the globe between day and night lighting.
func (s *Scene) SetMode(mode GlobeMode) {
	s.Mode = mode
	switch mode {
	case Night:
		s.LightIntensity = 0.35
		s.EmissiveIntensity = 1.0
	default:
		s.LightIntensity = 1.0
		s.EmissiveIntensity = 0
	}
}
