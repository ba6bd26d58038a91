package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chronicle-globe/internal/camera"
	"chronicle-globe/internal/content"
	"chronicle-globe/internal/debuglog"
	"chronicle-globe/internal/geo"
	"chronicle-globe/internal/scene"
	"chronicle-globe/internal/view"
)

const (
	orbitStep = 15.0
	pageSize  = 10
)

// App is the UI loop. It owns the controller, camera and scene and is the
// only goroutine that touches them.
type App struct {
	tui   *TUI
	panel *Panel
	cam   *camera.Camera
	scene *scene.Scene
	ctl   *view.Controller

	status      string
	statusError bool
	spinBase    float64
	spinSpeed   float64
}

func NewApp(tui *TUI, panel *Panel, cam *camera.Camera, sc *scene.Scene, ctl *view.Controller) *App {
	return &App{
		tui:       tui,
		panel:     panel,
		cam:       cam,
		scene:     sc,
		ctl:       ctl,
		spinBase:  cam.SpinDegPerSec,
		spinSpeed: 1.0,
	}
}

// Load hands the repository to the controller and lists its stories.
func (a *App) Load(repo *content.Repository) view.LoadSummary {
	a.panel.SetStories(repo.Stories())
	return a.ctl.Load(repo)
}

// PlaceHome resolves ip against the GeoIP database and marks it on the
// globe. Failures only reach the debug log.
func (a *App) PlaceHome(dbPath, ip string) {
	locator, err := geo.OpenLocator(dbPath)
	if err != nil {
		debuglog.Printf("Home: %v", err)
		return
	}
	defer locator.Close()

	place, err := locator.Locate(ip)
	if err != nil {
		debuglog.Printf("Home: %v", err)
		return
	}
	g := a.scene.Group(scene.GroupHome)
	g.Clear()
	g.AddMarker(scene.Marker{
		ID:       "home",
		Label:    place.Label,
		Lat:      place.Latitude,
		Lon:      place.Longitude,
		Position: geo.Project(place.Latitude, place.Longitude, geo.DefaultRadius),
	})
	debuglog.Printf("Home: %s at %.2f,%.2f", place.Label, place.Latitude, place.Longitude)
}

func (a *App) setStatus(msg string, isError bool) {
	a.status = msg
	a.statusError = isError
}

func (a *App) frame() Frame {
	return Frame{
		Camera:      a.cam,
		Scene:       a.scene,
		View:        a.ctl.State(),
		Era:         a.eraName(),
		Status:      a.status,
		StatusError: a.statusError,
	}
}

func (a *App) eraName() string {
	repo := a.ctl.Repository()
	if repo == nil {
		return ""
	}
	era, ok := repo.Era(a.ctl.State().ActiveEraID)
	if !ok {
		return ""
	}
	return era.Name
}

func (a *App) Render() {
	a.tui.Render(a.frame())
}

func (a *App) dispatch(in view.Intent) {
	if err := a.ctl.Dispatch(in); err != nil {
		debuglog.Printf("App: %s: %v", in, err)
		a.setStatus(fmt.Sprintf("Error: %v", err), true)
	}
}

// Run drives events and the render tick until the user quits or ctx ends.
func (a *App) Run(ctx context.Context, refresh time.Duration) error {
	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go a.tui.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	last := time.Now()
	a.Render()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				debuglog.Printf("Shutting down")
				return nil
			}
			a.Render()
		case now := <-ticker.C:
			a.cam.Step(now.Sub(last))
			last = now
			a.Render()
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.tui.HandleResize()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// Errors last until the next key; informational messages stay.
	if a.statusError {
		a.setStatus("", false)
	}
	storyActive := a.ctl.Story().Active

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if a.tui.HelpVisible() {
			a.tui.ToggleHelp()
			return true
		}
		a.dispatch(view.Do(view.ClosePanel))
	case tcell.KeyEnter:
		a.openSelected()
	case tcell.KeyUp:
		a.move(-1)
	case tcell.KeyDown:
		a.move(1)
	case tcell.KeyPgUp:
		a.move(-pageSize)
	case tcell.KeyPgDn:
		a.move(pageSize)
	case tcell.KeyLeft:
		if storyActive {
			a.dispatch(view.Do(view.StoryPrevious))
		} else {
			a.cam.Orbit(-orbitStep, 0)
		}
	case tcell.KeyRight:
		if storyActive {
			a.dispatch(view.Do(view.StoryNext))
		} else {
			a.cam.Orbit(orbitStep, 0)
		}
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch unicode.ToLower(r) {
	case 'q':
		return false
	case 'n':
		a.dispatch(view.Do(view.StoryNext))
	case 'p':
		a.dispatch(view.Do(view.StoryPrevious))
	case 'x':
		a.dispatch(view.Do(view.EndStory))
	case 's':
		a.startStoryAtCursor()
	case 'l':
		a.dispatch(view.Do(view.ToggleGlobeMode))
	case 'm':
		a.dispatch(view.Do(view.TogglePOI))
	case 'g':
		a.dispatch(view.Do(view.ToggleConnections))
	case '+', '=':
		a.dispatch(view.Do(view.ZoomIn))
	case '-', '_':
		a.dispatch(view.Do(view.ZoomOut))
	case '0', 'h':
		a.dispatch(view.Do(view.ResetView))
		a.spinSpeed = 1.0
		a.applySpin()
	case 'w':
		a.cam.Orbit(0, orbitStep)
	case 'z':
		a.cam.Orbit(0, -orbitStep)
	case ' ':
		a.cam.AutoRotate = !a.cam.AutoRotate
	case '[':
		a.spinSpeed = math.Max(0.1, a.spinSpeed-0.1)
		a.applySpin()
	case ']':
		a.spinSpeed = math.Min(5.0, a.spinSpeed+0.1)
		a.applySpin()
	case 't':
		a.tui.CycleTheme()
		debuglog.Printf("Theme: %s", a.tui.theme.Name)
	case 'c':
		a.tui.ToggleCommands()
	case '?':
		a.tui.ToggleHelp()
	}
	return true
}

func (a *App) applySpin() {
	a.cam.SpinDegPerSec = a.spinBase * a.spinSpeed
}

// move walks the timeline cursor, or scrolls the open topic.
func (a *App) move(delta int) {
	if a.panel.TopicOpen() {
		a.panel.Scroll(delta)
		return
	}
	a.panel.MoveCursor(delta)
}

func (a *App) openSelected() {
	if !a.panel.TimelineEnabled() || a.panel.TopicOpen() {
		return
	}
	row, ok := a.panel.Selected()
	if !ok {
		return
	}
	switch row.Kind {
	case rowStory:
		a.dispatch(view.On(view.StartStory, row.ID))
	case rowEra:
		a.dispatch(view.On(view.SelectEra, row.ID))
	case rowTopic:
		a.dispatch(view.On(view.SelectTopic, row.ID))
	}
}

// startStoryAtCursor plays the story under the cursor, or tours the era the
// cursor is in.
func (a *App) startStoryAtCursor() {
	if !a.panel.TimelineEnabled() {
		return
	}
	row, ok := a.panel.Selected()
	if !ok {
		a.dispatch(view.Do(view.StartStory))
		return
	}
	id := row.ID
	if row.Kind == rowTopic {
		if repo := a.ctl.Repository(); repo != nil {
			if eraID, found := repo.EraOf(row.ID); found {
				id = eraID
			}
		}
	}
	a.dispatch(view.On(view.StartStory, id))
}
