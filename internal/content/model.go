// Package content loads the chronicle document and indexes its eras,
// topics, connections and stories.
package content

// Document is the decoded content file.
type Document struct {
	Eras        []Era        `json:"eras"`
	Connections []Connection `json:"connections,omitempty"`
	Stories     []Story      `json:"stories,omitempty"`
}

type Era struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

type Topic struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	DateRange   string       `json:"dateRange"`
	Content     string       `json:"content"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Connection links two topics that both carry coordinates.
type Connection struct {
	From string `json:"from_topic_id"`
	To   string `json:"to_topic_id"`
}

// Story is a predefined guided tour over topic ids.
type Story struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// HasCoordinates reports whether the topic can be placed on the globe.
func (t Topic) HasCoordinates() bool {
	return t.Coordinates != nil
}
