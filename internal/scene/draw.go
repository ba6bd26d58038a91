package scene

import (
	"chronicle-globe/internal/content"
	"chronicle-globe/internal/debuglog"
	"chronicle-globe/internal/geo"
)

// TopicFinder resolves topic ids.
type TopicFinder interface {
	FindByID(id string) (content.Topic, bool)
}

// PlaceMarkers adds one marker per topic with coordinates and returns how
// many were added.
func PlaceMarkers(topics []content.Topic, g *Group) int {
	added := 0
	for _, t := range topics {
		if !t.HasCoordinates() {
			continue
		}
		g.AddMarker(Marker{
			ID:       t.ID,
			Label:    t.Title,
			Lat:      t.Coordinates.Lat,
			Lon:      t.Coordinates.Lon,
			Position: geo.Project(t.Coordinates.Lat, t.Coordinates.Lon, geo.DefaultRadius),
		})
		added++
	}
	return added
}

// DrawConnections appends an arc to g for every connection whose endpoints
// both resolve to topics with coordinates. Anything else is skipped.
func DrawConnections(topics TopicFinder, conns []content.Connection, g *Group) int {
	added := 0
	for _, c := range conns {
		from, ok := endpoint(topics, c.From)
		if !ok {
			debuglog.Printf("Connections: Skipping %s -> %s, %q unusable", c.From, c.To, c.From)
			continue
		}
		to, ok := endpoint(topics, c.To)
		if !ok {
			debuglog.Printf("Connections: Skipping %s -> %s, %q unusable", c.From, c.To, c.To)
			continue
		}
		g.AddLine(Line{
			From:   c.From,
			To:     c.To,
			Points: geo.Arc(from, to, geo.ArcSegments),
		})
		added++
	}
	debuglog.Printf("Connections: Drew %d of %d arcs", added, len(conns))
	return added
}

func endpoint(topics TopicFinder, id string) (geo.Vec3, bool) {
	t, ok := topics.FindByID(id)
	if !ok || !t.HasCoordinates() {
		return geo.Vec3{}, false
	}
	return geo.Project(t.Coordinates.Lat, t.Coordinates.Lon, geo.DefaultRadius), true
}
