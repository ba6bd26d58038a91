// Package view maps UI intents onto view state, the story navigator, the
// scene and the camera. The controller is the only writer of that state.
package view

import (
	"errors"
	"fmt"

	"chronicle-globe/internal/camera"
	"chronicle-globe/internal/content"
	"chronicle-globe/internal/debuglog"
	"chronicle-globe/internal/scene"
	"chronicle-globe/internal/story"
)

var (
	ErrNotLoaded    = errors.New("content not loaded")
	ErrUnknownStory = errors.New("unknown story")
)

// Panel is the UI surface the controller writes to.
type Panel interface {
	SetTimeline(eras []content.Era)
	SetTimelineEnabled(enabled bool)
	ShowTopic(t content.Topic)
	ClearTopic()
	SetStory(s StoryStatus)
	ShowError(msg string)
}

// CameraMover receives fire-and-forget camera commands.
type CameraMover interface {
	FlyTo(lat, lon float64)
	Zoom(factor float64)
	Reset()
}

// ViewState is the user-facing state of the globe and panel.
type ViewState struct {
	ActiveEraID        string
	ActiveTopicID      string
	GlobeMode          scene.GlobeMode
	POIVisible         bool
	ConnectionsVisible bool
	PanelOpen          bool
	TimelineEnabled    bool
}

// StoryStatus is what the story bar shows.
type StoryStatus struct {
	Active      bool
	Title       string
	Progress    string
	Step        int
	Total       int
	Playlist    []string
	CanPrevious bool
	CanNext     bool
}

// Options sets the initial view.
type Options struct {
	Night           bool
	HidePOI         bool
	HideConnections bool
}

// LoadSummary counts what Load put on screen.
type LoadSummary struct {
	Eras            int
	TimelineEntries int
	Markers         int
	Connections     int
}

type Controller struct {
	repo   *content.Repository
	scene  *scene.Scene
	panel  Panel
	camera CameraMover
	nav    story.Navigator
	state  ViewState
}

func New(sc *scene.Scene, panel Panel, cam CameraMover, opts Options) *Controller {
	c := &Controller{
		scene:  sc,
		panel:  panel,
		camera: cam,
		state: ViewState{
			GlobeMode:          scene.Day,
			POIVisible:         !opts.HidePOI,
			ConnectionsVisible: !opts.HideConnections,
			TimelineEnabled:    true,
		},
	}
	if opts.Night {
		c.state.GlobeMode = scene.Night
	}
	c.syncScene()
	return c
}

// Load populates the timeline and builds the static marker and arc groups.
func (c *Controller) Load(repo *content.Repository) LoadSummary {
	c.repo = repo
	c.nav.End()

	poi := c.scene.Group(scene.GroupPOI)
	poi.Clear()
	arcs := c.scene.Group(scene.GroupConnections)
	arcs.Clear()

	summary := LoadSummary{
		Eras:            len(repo.Eras()),
		TimelineEntries: repo.Len(),
		Markers:         scene.PlaceMarkers(repo.Topics(), poi),
		Connections:     scene.DrawConnections(repo, repo.Connections(), arcs),
	}

	if eras := repo.Eras(); len(eras) > 0 {
		c.state.ActiveEraID = eras[0].ID
	}
	c.state.ActiveTopicID = ""
	c.state.PanelOpen = false
	c.state.TimelineEnabled = true
	c.syncScene()

	c.panel.SetTimeline(repo.Eras())
	c.panel.SetTimelineEnabled(true)
	c.panel.SetStory(c.storyStatus())

	debuglog.Printf("View: Loaded %d eras, %d timeline entries, %d markers, %d arcs",
		summary.Eras, summary.TimelineEntries, summary.Markers, summary.Connections)
	return summary
}

// LoadFailed reports a content load failure; the controller stays empty.
func (c *Controller) LoadFailed(err error) {
	debuglog.Printf("View: Content load failed: %v", err)
	c.panel.ShowError(fmt.Sprintf("Could not load content: %v", err))
}

// Loaded reports whether content is available.
func (c *Controller) Loaded() bool { return c.repo != nil }

func (c *Controller) State() ViewState { return c.state }

func (c *Controller) Story() StoryStatus { return c.storyStatus() }

func (c *Controller) Repository() *content.Repository { return c.repo }

// Dispatch applies one intent. Out-of-range navigation and unknown topics
// are no-ops; only an unknown story or missing content returns an error.
func (c *Controller) Dispatch(in Intent) error {
	debuglog.Printf("View: Intent %s", in)

	switch in.Kind {
	case ToggleGlobeMode:
		if c.state.GlobeMode == scene.Day {
			c.state.GlobeMode = scene.Night
		} else {
			c.state.GlobeMode = scene.Day
		}
		c.syncScene()
		return nil
	case TogglePOI:
		c.state.POIVisible = !c.state.POIVisible
		c.syncScene()
		return nil
	case ToggleConnections:
		c.state.ConnectionsVisible = !c.state.ConnectionsVisible
		c.syncScene()
		return nil
	case ZoomIn:
		c.camera.Zoom(camera.DollyFactor)
		return nil
	case ZoomOut:
		c.camera.Zoom(1 / camera.DollyFactor)
		return nil
	case ResetView:
		c.camera.Reset()
		return nil
	}

	if c.repo == nil {
		return ErrNotLoaded
	}

	switch in.Kind {
	case SelectEra:
		c.selectEra(in.ID)
	case SelectTopic:
		c.selectTopic(in.ID)
	case ClosePanel:
		c.closePanel()
	case StartStory:
		return c.startStory(in.ID)
	case StoryNext:
		if c.nav.Next() {
			c.showStep()
		}
	case StoryPrevious:
		if c.nav.Previous() {
			c.showStep()
		}
	case EndStory:
		c.endStory()
	default:
		return fmt.Errorf("unsupported intent %s", in)
	}
	return nil
}

func (c *Controller) selectEra(id string) {
	if !c.state.TimelineEnabled {
		return
	}
	if _, ok := c.repo.Era(id); !ok {
		debuglog.Printf("View: Era %q not found", id)
		return
	}
	c.state.ActiveEraID = id
}

func (c *Controller) selectTopic(id string) {
	if !c.state.TimelineEnabled {
		return
	}
	topic, err := c.repo.Lookup(id)
	if err != nil {
		debuglog.Printf("View: %v", err)
		return
	}
	c.showTopic(topic)
}

func (c *Controller) showTopic(topic content.Topic) {
	c.state.ActiveTopicID = topic.ID
	if eraID, ok := c.repo.EraOf(topic.ID); ok {
		c.state.ActiveEraID = eraID
	}
	c.state.PanelOpen = true
	c.scene.Highlight = topic.ID
	c.panel.ShowTopic(topic)
	if topic.HasCoordinates() {
		c.camera.FlyTo(topic.Coordinates.Lat, topic.Coordinates.Lon)
	}
}

func (c *Controller) clearTopic() {
	c.state.ActiveTopicID = ""
	c.state.PanelOpen = false
	c.scene.Highlight = ""
	c.panel.ClearTopic()
}

func (c *Controller) closePanel() {
	if c.nav.Active() {
		c.endStory()
	}
	c.clearTopic()
}

// startStory accepts a story id, or an era id to tour that era's topics.
func (c *Controller) startStory(id string) error {
	title, playlist, err := c.playlist(id)
	if err != nil {
		return err
	}
	if err := c.nav.Start(title, playlist); err != nil {
		return err
	}
	debuglog.Printf("Story: Started %q with %d steps", title, len(playlist))
	c.state.TimelineEnabled = false
	c.panel.SetTimelineEnabled(false)
	c.showStep()
	return nil
}

func (c *Controller) playlist(id string) (string, []string, error) {
	if s, ok := c.repo.Story(id); ok {
		return s.Title, s.Topics, nil
	}
	if era, ok := c.repo.Era(id); ok {
		ids := make([]string, 0, len(era.Topics))
		for _, t := range era.Topics {
			ids = append(ids, t.ID)
		}
		return era.Name, ids, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownStory, id)
}

// showStep displays the current story topic. An id that does not resolve
// still occupies its step; the panel is left empty for it.
func (c *Controller) showStep() {
	id, ok := c.nav.Current()
	if !ok {
		return
	}
	topic, err := c.repo.Lookup(id)
	if err != nil {
		debuglog.Printf("Story: Step %d: %v", c.nav.Step()+1, err)
		c.clearTopic()
	} else {
		c.showTopic(topic)
	}
	c.panel.SetStory(c.storyStatus())
	debuglog.Printf("Story: %s", c.nav.Progress())
}

func (c *Controller) endStory() {
	if !c.nav.Active() {
		return
	}
	debuglog.Printf("Story: Ended %q at %s", c.nav.Title(), c.nav.Progress())
	c.nav.End()
	c.state.TimelineEnabled = true
	c.panel.SetTimelineEnabled(true)
	c.panel.SetStory(c.storyStatus())
}

func (c *Controller) storyStatus() StoryStatus {
	snap := c.nav.Snapshot()
	if !snap.Active {
		return StoryStatus{}
	}
	return StoryStatus{
		Active:      true,
		Title:       snap.Title,
		Progress:    c.nav.Progress(),
		Step:        snap.Step,
		Total:       len(snap.Playlist),
		Playlist:    snap.Playlist,
		CanPrevious: snap.Step > 0,
		CanNext:     snap.Step+1 < len(snap.Playlist),
	}
}

func (c *Controller) syncScene() {
	c.scene.SetMode(c.state.GlobeMode)
	c.scene.SetVisible(scene.GroupPOI, c.state.POIVisible)
	c.scene.SetVisible(scene.GroupConnections, c.state.ConnectionsVisible)
}
