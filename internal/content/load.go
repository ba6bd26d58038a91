package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"chronicle-globe/internal/debuglog"
	"chronicle-globe/internal/geo"
)

// DefaultFetchTimeout bounds a remote content fetch.
const DefaultFetchTimeout = 10 * time.Second

// Loader fetches the content document from a path or an http(s) URL.
type Loader struct {
	httpClient *http.Client
}

func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load fetches and decodes source once. Every failure is a *LoadError.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	body, err := l.open(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer body.Close()

	doc, err := Decode(body)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	debuglog.Printf("Content: Loaded %d eras, %d connections, %d stories from %s",
		len(doc.Eras), len(doc.Connections), len(doc.Stories), source)
	return doc, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request content: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Decode parses a content document and drops data the globe cannot use:
// out-of-range coordinates and stories without topics.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	// An empty list is a valid, empty timeline; a missing key is not a
	// chronicle document at all.
	if doc.Eras == nil {
		return nil, ErrNoEras
	}

	for i := range doc.Eras {
		for j := range doc.Eras[i].Topics {
			topic := &doc.Eras[i].Topics[j]
			if topic.Coordinates == nil {
				continue
			}
			if err := geo.Validate(topic.Coordinates.Lat, topic.Coordinates.Lon); err != nil {
				debuglog.Printf("Content: Topic %q dropped coordinates: %v", topic.ID, err)
				topic.Coordinates = nil
			}
		}
	}

	stories := doc.Stories[:0]
	for _, s := range doc.Stories {
		if len(s.Topics) == 0 {
			debuglog.Printf("Content: Story %q has no topics, skipping", s.ID)
			continue
		}
		stories = append(stories, s)
	}
	doc.Stories = stories

	return &doc, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// LoadRepository loads source and indexes it. Index failures such as
// duplicate topic ids are reported as a *LoadError too.
func (l *Loader) LoadRepository(ctx context.Context, source string) (*Repository, error) {
	doc, err := l.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	repo, err := NewRepository(doc)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return repo, nil
}
