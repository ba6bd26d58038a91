// Package story implements the guided tour: a bounded walk over an ordered
// playlist of topic ids.
package story

import (
	"errors"
	"fmt"
)

var ErrEmptyPlaylist = errors.New("story playlist is empty")

// Navigator is either inactive or active at a step inside its playlist.
// Moving past either end is a no-op; it never wraps.
type Navigator struct {
	active   bool
	title    string
	playlist []string
	step     int
}

// Snapshot is a read-only copy of the navigator state.
type Snapshot struct {
	Active   bool
	Title    string
	Playlist []string
	Step     int
}

// Start activates the navigator at step 0. Starting while already active
// restarts with the new playlist.
func (n *Navigator) Start(title string, playlist []string) error {
	if len(playlist) == 0 {
		return ErrEmptyPlaylist
	}
	n.active = true
	n.title = title
	n.playlist = append([]string(nil), playlist...)
	n.step = 0
	return nil
}

// Next advances one step and reports whether it moved.
func (n *Navigator) Next() bool {
	if !n.CanNext() {
		return false
	}
	n.step++
	return true
}

// Previous steps back and reports whether it moved.
func (n *Navigator) Previous() bool {
	if !n.CanPrevious() {
		return false
	}
	n.step--
	return true
}

// End deactivates the navigator and discards the playlist.
func (n *Navigator) End() {
	n.active = false
	n.title = ""
	n.playlist = nil
	n.step = 0
}

func (n *Navigator) CanNext() bool {
	return n.active && n.step+1 < len(n.playlist)
}

func (n *Navigator) CanPrevious() bool {
	return n.active && n.step > 0
}

func (n *Navigator) Active() bool { return n.active }

func (n *Navigator) Title() string { return n.title }

func (n *Navigator) Step() int { return n.step }

func (n *Navigator) Len() int { return len(n.playlist) }

// Current returns the topic id at the current step.
func (n *Navigator) Current() (string, bool) {
	if !n.active {
		return "", false
	}
	return n.playlist[n.step], true
}

// Progress renders the one-based position, e.g. "Step 2 of 5".
func (n *Navigator) Progress() string {
	if !n.active {
		return ""
	}
	return fmt.Sprintf("Step %d of %d", n.step+1, len(n.playlist))
}

func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Active:   n.active,
		Title:    n.title,
		Playlist: append([]string(nil), n.playlist...),
		Step:     n.step,
	}
}
