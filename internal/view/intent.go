package view

import "fmt"

// IntentKind enumerates what the UI can ask the controller to do.
type IntentKind int

const (
	SelectEra IntentKind = iota
	SelectTopic
	ClosePanel
	ToggleGlobeMode
	TogglePOI
	ToggleConnections
	StartStory
	StoryNext
	StoryPrevious
	EndStory
	ZoomIn
	ZoomOut
	ResetView
)

var intentNames = [...]string{
	SelectEra:         "select-era",
	SelectTopic:       "select-topic",
	ClosePanel:        "close-panel",
	ToggleGlobeMode:   "toggle-globe-mode",
	TogglePOI:         "toggle-poi",
	ToggleConnections: "toggle-connections",
	StartStory:        "start-story",
	StoryNext:         "story-next",
	StoryPrevious:     "story-previous",
	EndStory:          "end-story",
	ZoomIn:            "zoom-in",
	ZoomOut:           "zoom-out",
	ResetView:         "reset-view",
}

func (k IntentKind) String() string {
	if k >= 0 && int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// Intent is one user action. ID carries the era, topic or story id for
// the kinds that need one.
type Intent struct {
	Kind IntentKind
	ID   string
}

func (i Intent) String() string {
	if i.ID == "" {
		return i.Kind.String()
	}
	return i.Kind.String() + ":" + i.ID
}

// Do builds an intent without an id.
func Do(kind IntentKind) Intent { return Intent{Kind: kind} }

// On builds an intent that targets id.
func On(kind IntentKind, id string) Intent { return Intent{Kind: kind, ID: id} }
