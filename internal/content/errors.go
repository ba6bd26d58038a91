package content

import (
	"errors"
	"fmt"
)

var (
	// ErrTopicNotFound marks a lookup of an id the repository does not hold.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrDuplicateTopic marks a document that reuses a topic id.
	ErrDuplicateTopic = errors.New("duplicate topic id")
	ErrNoEras         = errors.New("document has no eras list")
)

// LoadError reports a failed content fetch, decode or index build.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
