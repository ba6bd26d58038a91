package content

import (
	"fmt"
	"sort"
	"strings"

	"chronicle-globe/internal/debuglog"
)

// Repository is a read-only index over a loaded Document. It keeps its own
// copy of the document and hands out copies, so neither the Document nor a
// returned value can change it afterwards.
type Repository struct {
	eras        []Era
	topics      map[string]Topic
	order       []string
	eraOf       map[string]string
	connections []Connection
	stories     []Story
	storyByID   map[string]int
}

// NewRepository flattens every era's topics into one index. Topic ids must be
// unique across the whole document; a reused id is rejected instead of
// letting one copy shadow the other.
func NewRepository(doc *Document) (*Repository, error) {
	if doc == nil || doc.Eras == nil {
		return nil, ErrNoEras
	}

	r := &Repository{
		eras:        cloneEras(doc.Eras),
		topics:      make(map[string]Topic),
		eraOf:       make(map[string]string),
		connections: append([]Connection(nil), doc.Connections...),
		stories:     cloneStories(doc.Stories),
		storyByID:   make(map[string]int, len(doc.Stories)),
	}

	var dupes []string
	for _, era := range r.eras {
		for _, topic := range era.Topics {
			if _, exists := r.topics[topic.ID]; exists {
				dupes = append(dupes, topic.ID)
				continue
			}
			r.topics[topic.ID] = topic
			r.eraOf[topic.ID] = era.ID
			r.order = append(r.order, topic.ID)
		}
	}
	if len(dupes) > 0 {
		sort.Strings(dupes)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTopic, strings.Join(dupes, ", "))
	}

	for i, s := range r.stories {
		r.storyByID[s.ID] = i
	}

	debuglog.Printf("Repository: Indexed %d topics across %d eras", len(r.order), len(r.eras))
	return r, nil
}

// FindByID returns the topic with the given id.
func (r *Repository) FindByID(id string) (Topic, bool) {
	t, ok := r.topics[id]
	return t.clone(), ok
}

// Lookup is FindByID with an ErrTopicNotFound error for absent ids.
func (r *Repository) Lookup(id string) (Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic %q: %w", id, ErrTopicNotFound)
	}
	return t.clone(), nil
}

// Eras returns the eras in document order.
func (r *Repository) Eras() []Era {
	return cloneEras(r.eras)
}

// Era returns the era with the given id.
func (r *Repository) Era(id string) (Era, bool) {
	for _, era := range r.eras {
		if era.ID == id {
			return era.clone(), true
		}
	}
	return Era{}, false
}

// EraOf returns the id of the era holding topicID.
func (r *Repository) EraOf(topicID string) (string, bool) {
	id, ok := r.eraOf[topicID]
	return id, ok
}

// Topics returns every topic in document order.
func (r *Repository) Topics() []Topic {
	out := make([]Topic, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.topics[id].clone())
	}
	return out
}

func (r *Repository) Len() int { return len(r.order) }

func (r *Repository) Connections() []Connection {
	return append([]Connection(nil), r.connections...)
}

func (r *Repository) Stories() []Story {
	return cloneStories(r.stories)
}

func (r *Repository) Story(id string) (Story, bool) {
	i, ok := r.storyByID[id]
	if !ok {
		return Story{}, false
	}
	return r.stories[i].clone(), true
}

func (t Topic) clone() Topic {
	if t.Coordinates != nil {
		c := *t.Coordinates
		t.Coordinates = &c
	}
	return t
}

func (e Era) clone() Era {
	topics := make([]Topic, len(e.Topics))
	for i, t := range e.Topics {
		topics[i] = t.clone()
	}
	e.Topics = topics
	return e
}

func (s Story) clone() Story {
	s.Topics = append([]string(nil), s.Topics...)
	return s
}

func cloneEras(eras []Era) []Era {
	out := make([]Era, len(eras))
	for i, e := range eras {
		out[i] = e.clone()
	}
	return out
}

func cloneStories(stories []Story) []Story {
	out := make([]Story, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.clone())
	}
	return out
}
