package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"chronicle-globe/internal/camera"
	"chronicle-globe/internal/scene"
	"chronicle-globe/internal/view"
)

type TUIState struct {
	showHelp     bool
	showCommands bool
	themeIndex   int
}

// Frame is everything one Render call reads.
type Frame struct {
	Camera      *camera.Camera
	Scene       *scene.Scene
	View        view.ViewState
	Era         string
	Status      string
	StatusError bool
}

type TUI struct {
	screen      tcell.Screen
	width       int
	height      int
	aspectRatio float64
	charset     Charset
	globe       *Globe
	panel       *Panel
	theme       *Theme
	state       TUIState
	recorder    *AsciinemaRecorder

	panelX     int
	panelWidth int
}

// NewTUI draws onto an initialised screen. recorder may be nil.
func NewTUI(screen tcell.Screen, panel *Panel, theme *Theme, aspectRatio float64, charset Charset, recorder *AsciinemaRecorder) *TUI {
	tui := &TUI{
		screen:      screen,
		aspectRatio: aspectRatio,
		charset:     charset,
		panel:       panel,
		theme:       theme,
		state:       TUIState{showCommands: true},
		recorder:    recorder,
	}
	for i, name := range themeNames() {
		if name == theme.Name {
			tui.state.themeIndex = i
		}
	}
	screen.SetStyle(theme.base())
	screen.Clear()
	tui.layout()
	return tui
}

func (tui *TUI) layout() {
	tui.width, tui.height = tui.screen.Size()

	// Panel width: 40% of terminal, minimum 32, maximum 60
	panelWidth := tui.width * 2 / 5
	if panelWidth < 32 {
		panelWidth = 32
	}
	if panelWidth > 60 {
		panelWidth = 60
	}
	globeWidth := tui.width - panelWidth - 3
	if globeWidth < 10 {
		globeWidth = 10
	}
	tui.panelWidth = tui.width - globeWidth - 3
	if tui.panelWidth < 0 {
		tui.panelWidth = 0
	}
	tui.panelX = globeWidth + 2
	tui.globe = NewGlobe(globeWidth, tui.height-1, tui.aspectRatio, tui.charset)
}

func (tui *TUI) HandleResize() {
	tui.screen.Sync()
	tui.layout()
	tui.screen.Clear()
}

func (tui *TUI) Close() {
	tui.recorder.Close()
	tui.screen.Fini()
}

func (tui *TUI) ToggleHelp() { tui.state.showHelp = !tui.state.showHelp }

func (tui *TUI) HelpVisible() bool { return tui.state.showHelp }

func (tui *TUI) ToggleCommands() { tui.state.showCommands = !tui.state.showCommands }

func (tui *TUI) CycleTheme() {
	names := themeNames()
	tui.state.themeIndex = (tui.state.themeIndex + 1) % len(names)
	tui.theme = themes[names[tui.state.themeIndex]]
	tui.screen.SetStyle(tui.theme.base())
}

func (tui *TUI) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= tui.height || x >= tui.width {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x >= 0 && x+w <= tui.width {
			tui.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
}

func (tui *TUI) clearRow(x0, x1, y int) {
	style := tui.theme.base()
	for x := x0; x < x1 && x < tui.width; x++ {
		tui.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (tui *TUI) cellStyle(c Cell) tcell.Style {
	t := tui.theme
	switch c.Kind {
	case cellLand:
		return t.LandStyle(c.Light)
	case cellRim:
		return t.fg(t.GlobeShaded)
	case cellArc:
		return t.fg(t.Arc)
	case cellMarker:
		return t.fg(t.Marker)
	case cellGlow:
		return t.fg(t.Marker).Bold(true)
	case cellHighlight:
		return t.fg(t.Highlight).Bold(true)
	case cellHome:
		return t.fg(t.Home).Bold(true)
	}
	return t.base()
}

func (tui *TUI) renderGlobe(f Frame) {
	rows := tui.globe.render(f.Camera, f.Scene)
	for y, row := range rows {
		for x, c := range row {
			tui.screen.SetContent(x, y, c.Ch, nil, tui.cellStyle(c))
		}
	}
}

func (tui *TUI) renderSeparator() {
	style := tui.theme.fg(tui.theme.Separator)
	for y := 0; y < tui.height-1; y++ {
		tui.screen.SetContent(tui.panelX-1, y, '│', nil, style)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (tui *TUI) renderHeader(f Frame) {
	tui.clearRow(tui.panelX, tui.width, 0)
	header := fmt.Sprintf("CHRONICLE  %s  POI:%s  Arcs:%s",
		strings.ToUpper(f.View.GlobeMode.String()), onOff(f.View.POIVisible), onOff(f.View.ConnectionsVisible))
	if f.Era != "" {
		header += "  " + f.Era
	}
	tui.drawText(tui.panelX, 0, fit(header, tui.panelWidth), tui.theme.fg(tui.theme.Heading).Bold(true))
}

func (tui *TUI) lineStyle(s lineStyle) tcell.Style {
	t := tui.theme
	switch s {
	case styleHeading:
		return t.fg(t.Heading).Bold(true)
	case styleAccent:
		return t.fg(t.Accent)
	case styleDim:
		return t.fg(t.Dim)
	case styleSeparator:
		return t.fg(t.Separator)
	case styleError:
		return t.fg(t.Error).Bold(true)
	case styleCursor:
		return t.base().Reverse(true)
	}
	return t.base()
}

func (tui *TUI) renderPanel() {
	lines := tui.panel.Lines(tui.panelWidth, tui.height-2)
	for i, l := range lines {
		y := i + 1
		tui.clearRow(tui.panelX, tui.width, y)
		tui.drawText(tui.panelX, y, l.Text, tui.lineStyle(l.Style))
	}
}

func (tui *TUI) renderStatusLine(f Frame) {
	y := tui.height - 1
	if y < 0 {
		return
	}
	tui.clearRow(0, tui.width, y)

	if f.Status != "" {
		style := tui.theme.fg(tui.theme.Accent)
		if f.StatusError {
			style = tui.theme.fg(tui.theme.Error).Bold(true)
		}
		tui.drawText(0, y, fit(f.Status, tui.width), style)
		return
	}
	if !tui.state.showCommands {
		return
	}

	guide := "↑↓:Move Enter:Open Esc:Close s:Story n/p:Step x:End L:Day/Night M:POI G:Arcs +-:Zoom 0:Reset T:Theme ?:Help Q:Quit"
	text := fit(guide, tui.width)
	startX := (tui.width - runewidth.StringWidth(text)) / 2
	if startX < 0 {
		startX = 0
	}
	tui.drawText(startX, y, text, tui.theme.fg(tui.theme.Dim).Bold(true))
}

var helpText = []string{
	"╔═══════════════════════════════════════╗",
	"║         KEYBOARD CONTROLS             ║",
	"╠═══════════════════════════════════════╣",
	"║ Up/Down  - Move cursor / scroll text  ║",
	"║ Enter    - Open era, topic or story   ║",
	"║ Esc      - Close topic panel          ║",
	"║ S        - Start story at cursor      ║",
	"║ N/P      - Next/previous story step   ║",
	"║ X        - End story                  ║",
	"║ L        - Toggle day/night globe     ║",
	"║ M        - Toggle topic markers       ║",
	"║ G        - Toggle connection arcs     ║",
	"║ +/-      - Zoom in/out                ║",
	"║ 0        - Reset view                 ║",
	"║ Arrows   - Orbit (outside stories)    ║",
	"║ Space    - Pause/Resume rotation      ║",
	"║ [/]      - Decrease/Increase spin     ║",
	"║ T        - Cycle themes               ║",
	"║ C        - Toggle command guide       ║",
	"║ ?        - Toggle this help panel     ║",
	"║ Q/Ctrl-C - Exit                       ║",
	"╚═══════════════════════════════════════╝",
}

func (tui *TUI) renderHelpPanel() {
	if !tui.state.showHelp {
		return
	}
	startY := (tui.height - len(helpText)) / 2
	startX := (tui.width - runewidth.StringWidth(helpText[0])) / 2
	style := tui.theme.fg(tui.theme.Heading)
	for i, line := range helpText {
		tui.drawText(startX, startY+i, line, style)
	}
}

func (tui *TUI) Render(f Frame) {
	tui.renderGlobe(f)
	tui.renderSeparator()
	tui.renderHeader(f)
	tui.renderPanel()
	tui.renderStatusLine(f)
	tui.renderHelpPanel()
	tui.screen.Show()

	if tui.recorder.Enabled() {
		tui.recorder.RecordFrame(tui.snapshot())
	}
}

// snapshot returns the screen's text, one string per row.
func (tui *TUI) snapshot() []string {
	rows := make([]string, tui.height)
	var sb strings.Builder
	for y := 0; y < tui.height; y++ {
		sb.Reset()
		for x := 0; x < tui.width; x++ {
			mainc, _, _, _ := tui.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			sb.WriteRune(mainc)
		}
		rows[y] = sb.String()
	}
	return rows
}
