package view

import (
	"errors"
	"strings"
	"testing"

	"chronicle-globe/internal/content"
	"chronicle-globe/internal/scene"
)

type fakePanel struct {
	eras            []content.Era
	timelineEnabled bool
	topic           *content.Topic
	topicUpdates    int
	clears          int
	story           StoryStatus
	err             string
}

func (p *fakePanel) SetTimeline(eras []content.Era)  { p.eras = eras }
func (p *fakePanel) SetTimelineEnabled(enabled bool) { p.timelineEnabled = enabled }
func (p *fakePanel) ShowTopic(t content.Topic)       { p.topic = &t; p.topicUpdates++ }
func (p *fakePanel) ClearTopic()                     { p.topic = nil; p.clears++ }
func (p *fakePanel) SetStory(s StoryStatus)          { p.story = s }
func (p *fakePanel) ShowError(msg string)            { p.err = msg }

type flight struct{ lat, lon float64 }

type fakeCamera struct {
	flights []flight
	zoom    float64
	resets  int
}

func (c *fakeCamera) FlyTo(lat, lon float64) { c.flights = append(c.flights, flight{lat, lon}) }
func (c *fakeCamera) Zoom(factor float64)    { c.zoom = factor }
func (c *fakeCamera) Reset()                 { c.resets++ }

func at(lat, lon float64) *content.Coordinates { return &content.Coordinates{Lat: lat, Lon: lon} }

func testDoc() *content.Document {
	return &content.Document{
		Eras: []content.Era{
			{ID: "ancient", Name: "Antiquity", Topics: []content.Topic{
				{ID: "sumer", Title: "Sumer", Coordinates: at(31.3, 45.6)},
				{ID: "egypt", Title: "Egypt", Coordinates: at(29.9, 31.1)},
			}},
			{ID: "modern", Name: "Modern", Topics: []content.Topic{
				{ID: "press", Title: "Printing Press", Coordinates: at(50.0, 8.3)},
				{ID: "ideas", Title: "Enlightenment"},
			}},
		},
		Connections: []content.Connection{
			{From: "sumer", To: "egypt"},
			{From: "egypt", To: "press"},
			{From: "press", To: "ideas"},
			{From: "press", To: "ghost"},
		},
		Stories: []content.Story{
			{ID: "writing", Title: "Writing", Topics: []string{"sumer", "egypt", "press"}},
			{ID: "broken", Title: "Broken", Topics: []string{"sumer", "ghost", "press"}},
		},
	}
}

func newLoaded(t *testing.T, doc *content.Document) (*Controller, *fakePanel, *fakeCamera, *scene.Scene) {
	t.Helper()
	repo, err := content.NewRepository(doc)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	sc := scene.New()
	panel := &fakePanel{}
	cam := &fakeCamera{}
	c := New(sc, panel, cam, Options{})
	c.Load(repo)
	return c, panel, cam, sc
}

func TestLoadSingleTopic(t *testing.T) {
	doc := &content.Document{Eras: []content.Era{
		{ID: "only", Name: "Only", Topics: []content.Topic{{ID: "t", Title: "T", Coordinates: at(1, 2)}}},
	}}
	repo, err := content.NewRepository(doc)
	if err != nil {
		t.Fatal(err)
	}
	sc := scene.New()
	panel := &fakePanel{}
	c := New(sc, panel, &fakeCamera{}, Options{})
	summary := c.Load(repo)

	if summary.TimelineEntries != 1 {
		t.Errorf("timeline entries %d, want 1", summary.TimelineEntries)
	}
	if summary.Connections != 0 || sc.Group(scene.GroupConnections).Primitives() != 0 {
		t.Errorf("connections %d, want 0", summary.Connections)
	}
	if len(panel.eras) != 1 || len(panel.eras[0].Topics) != 1 {
		t.Errorf("panel timeline %+v", panel.eras)
	}
	if c.State().ActiveEraID != "only" {
		t.Errorf("active era %q", c.State().ActiveEraID)
	}
}

func TestLoadSummary(t *testing.T) {
	_, _, _, sc := newLoaded(t, testDoc())
	if got := len(sc.Group(scene.GroupPOI).Markers); got != 3 {
		t.Errorf("markers %d, want 3", got)
	}
	if got := len(sc.Group(scene.GroupConnections).Lines); got != 2 {
		t.Errorf("arcs %d, want 2", got)
	}
}

func TestSelectTopic(t *testing.T) {
	c, panel, cam, sc := newLoaded(t, testDoc())

	if err := c.Dispatch(On(SelectTopic, "press")); err != nil {
		t.Fatal(err)
	}
	st := c.State()
	if st.ActiveTopicID != "press" || st.ActiveEraID != "modern" || !st.PanelOpen {
		t.Errorf("state after select %+v", st)
	}
	if panel.topic == nil || panel.topic.ID != "press" {
		t.Fatalf("panel topic %+v", panel.topic)
	}
	if len(cam.flights) != 1 || cam.flights[0] != (flight{50.0, 8.3}) {
		t.Errorf("camera flights %+v", cam.flights)
	}
	if sc.Highlight != "press" {
		t.Errorf("highlight %q", sc.Highlight)
	}

	// Topic without coordinates opens the panel but does not move the camera.
	c.Dispatch(On(SelectTopic, "ideas"))
	if len(cam.flights) != 1 {
		t.Errorf("camera moved for a topic without coordinates")
	}
}

func TestSelectUnknownTopicIsNoop(t *testing.T) {
	c, panel, cam, _ := newLoaded(t, testDoc())
	c.Dispatch(On(SelectTopic, "egypt"))
	before := c.State()
	updates := panel.topicUpdates

	if err := c.Dispatch(On(SelectTopic, "ghost")); err != nil {
		t.Fatalf("unknown topic returned %v", err)
	}
	if c.State() != before || panel.topicUpdates != updates || len(cam.flights) != 1 {
		t.Error("unknown topic changed state")
	}
}

func TestClosePanel(t *testing.T) {
	c, panel, _, sc := newLoaded(t, testDoc())
	c.Dispatch(On(SelectTopic, "egypt"))
	c.Dispatch(Do(ClosePanel))
	st := c.State()
	if st.PanelOpen || st.ActiveTopicID != "" || panel.topic != nil || sc.Highlight != "" {
		t.Errorf("panel still open: %+v", st)
	}
}

func TestToggles(t *testing.T) {
	c, _, _, sc := newLoaded(t, testDoc())
	arcs := sc.Group(scene.GroupConnections)
	lines := len(arcs.Lines)

	c.Dispatch(Do(ToggleConnections))
	if c.State().ConnectionsVisible || arcs.Visible {
		t.Error("connections still visible")
	}
	if len(arcs.Lines) != lines {
		t.Error("toggling rebuilt the connection group")
	}
	c.Dispatch(Do(ToggleConnections))
	if !arcs.Visible {
		t.Error("connections not restored")
	}

	c.Dispatch(Do(TogglePOI))
	if sc.Group(scene.GroupPOI).Visible {
		t.Error("POIs still visible")
	}

	c.Dispatch(Do(ToggleGlobeMode))
	if c.State().GlobeMode != scene.Night || sc.Mode != scene.Night {
		t.Error("globe not in night mode")
	}
	c.Dispatch(Do(ToggleGlobeMode))
	if sc.Mode != scene.Day {
		t.Error("globe not back in day mode")
	}
}

func TestOptions(t *testing.T) {
	sc := scene.New()
	c := New(sc, &fakePanel{}, &fakeCamera{}, Options{Night: true, HideConnections: true})
	if sc.Mode != scene.Night || sc.Group(scene.GroupConnections).Visible {
		t.Errorf("options not applied: mode=%s", sc.Mode)
	}
	if !c.State().POIVisible {
		t.Error("POIs hidden without HidePOI")
	}
}

func TestCameraIntents(t *testing.T) {
	c, _, cam, _ := newLoaded(t, testDoc())
	c.Dispatch(Do(ZoomIn))
	if cam.zoom <= 1 {
		t.Errorf("zoom in factor %v", cam.zoom)
	}
	c.Dispatch(Do(ZoomOut))
	if cam.zoom >= 1 {
		t.Errorf("zoom out factor %v", cam.zoom)
	}
	c.Dispatch(Do(ResetView))
	if cam.resets != 1 {
		t.Errorf("resets %d", cam.resets)
	}
}

func TestStoryWalk(t *testing.T) {
	c, panel, cam, _ := newLoaded(t, testDoc())

	if err := c.Dispatch(On(StartStory, "writing")); err != nil {
		t.Fatal(err)
	}
	if c.State().TimelineEnabled || panel.timelineEnabled {
		t.Error("timeline still enabled during story")
	}
	if panel.story.Progress != "Step 1 of 3" || panel.story.CanPrevious || !panel.story.CanNext {
		t.Errorf("story status %+v", panel.story)
	}
	if panel.topic == nil || panel.topic.ID != "sumer" {
		t.Errorf("first step topic %+v", panel.topic)
	}

	c.Dispatch(Do(StoryNext))
	c.Dispatch(Do(StoryNext))
	c.Dispatch(Do(StoryPrevious))
	if got := c.Story().Step; got != 1 {
		t.Errorf("step %d, want 1", got)
	}
	st := c.Story()
	if st.Total != 3 || len(st.Playlist) != 3 || st.Playlist[0] != "sumer" {
		t.Errorf("story playlist %+v", st)
	}
	st.Playlist[0] = "changed"
	if c.Story().Playlist[0] != "sumer" {
		t.Error("story status shares the navigator playlist")
	}
	if len(cam.flights) != 4 {
		t.Errorf("camera flights %d, want 4", len(cam.flights))
	}

	// Timeline selection is ignored while the story runs.
	c.Dispatch(On(SelectTopic, "ideas"))
	if c.State().ActiveTopicID != "egypt" {
		t.Errorf("timeline selection leaked into story: %q", c.State().ActiveTopicID)
	}

	c.Dispatch(Do(EndStory))
	if c.Story().Active || !c.State().TimelineEnabled || !panel.timelineEnabled || panel.story.Active {
		t.Error("story did not end cleanly")
	}
}

func TestStoryBoundaries(t *testing.T) {
	c, panel, _, _ := newLoaded(t, testDoc())
	c.Dispatch(On(StartStory, "writing"))

	updates := panel.topicUpdates
	c.Dispatch(Do(StoryPrevious))
	if c.Story().Step != 0 || panel.topicUpdates != updates {
		t.Error("Previous at step 0 changed state")
	}

	c.Dispatch(Do(StoryNext))
	c.Dispatch(Do(StoryNext))
	updates = panel.topicUpdates
	c.Dispatch(Do(StoryNext))
	if c.Story().Step != 2 || panel.topicUpdates != updates || panel.story.CanNext {
		t.Errorf("Next at last step changed state: %+v", c.Story())
	}
}

func TestStoryUnresolvedStep(t *testing.T) {
	c, panel, cam, _ := newLoaded(t, testDoc())
	c.Dispatch(On(StartStory, "broken"))
	flights := len(cam.flights)

	c.Dispatch(Do(StoryNext))
	if c.Story().Step != 1 || c.Story().Progress != "Step 2 of 3" {
		t.Errorf("story status %+v", c.Story())
	}
	if panel.topic != nil || c.State().ActiveTopicID != "" {
		t.Error("unresolved step left a topic on the panel")
	}
	if len(cam.flights) != flights {
		t.Error("camera moved for an unresolved step")
	}

	c.Dispatch(Do(StoryNext))
	if panel.topic == nil || panel.topic.ID != "press" {
		t.Error("navigation stuck after unresolved step")
	}
}

func TestStartStoryFromEra(t *testing.T) {
	c, panel, _, _ := newLoaded(t, testDoc())
	if err := c.Dispatch(On(StartStory, "modern")); err != nil {
		t.Fatal(err)
	}
	if s := c.Story(); s.Title != "Modern" || s.Total != 2 {
		t.Errorf("era story %+v", s)
	}
	if panel.topic == nil || panel.topic.ID != "press" {
		t.Errorf("first era topic %+v", panel.topic)
	}
}

func TestStartUnknownStory(t *testing.T) {
	c, _, _, _ := newLoaded(t, testDoc())
	err := c.Dispatch(On(StartStory, "nope"))
	if !errors.Is(err, ErrUnknownStory) {
		t.Fatalf("got %v, want ErrUnknownStory", err)
	}
	if c.Story().Active {
		t.Error("story active after failed start")
	}
}

func TestClosePanelEndsStory(t *testing.T) {
	c, _, _, _ := newLoaded(t, testDoc())
	c.Dispatch(On(StartStory, "writing"))
	c.Dispatch(Do(ClosePanel))
	if c.Story().Active || !c.State().TimelineEnabled || c.State().PanelOpen {
		t.Errorf("close panel during story: story=%+v state=%+v", c.Story(), c.State())
	}
}

func TestNotLoaded(t *testing.T) {
	panel := &fakePanel{}
	c := New(scene.New(), panel, &fakeCamera{}, Options{})
	if err := c.Dispatch(On(SelectTopic, "x")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("got %v, want ErrNotLoaded", err)
	}
	if err := c.Dispatch(Do(ToggleGlobeMode)); err != nil {
		t.Errorf("toggle before load: %v", err)
	}
	c.LoadFailed(errors.New("HTTP error: status 404"))
	if !strings.Contains(panel.err, "404") {
		t.Errorf("panel error %q", panel.err)
	}
	if c.Loaded() {
		t.Error("controller reports loaded")
	}
}

func TestIntentString(t *testing.T) {
	if got := On(StartStory, "writing").String(); got != "start-story:writing" {
		t.Errorf("got %q", got)
	}
	if got := Do(ZoomIn).String(); got != "zoom-in" {
		t.Errorf("got %q", got)
	}
	if got := IntentKind(99).String(); got != "intent(99)" {
		t.Errorf("got %q", got)
	}
}
