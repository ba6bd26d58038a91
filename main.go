package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"chronicle-globe/internal/camera"
	"chronicle-globe/internal/config"
	"chronicle-globe/internal/content"
	"chronicle-globe/internal/debuglog"
	"chronicle-globe/internal/scene"
	"chronicle-globe/internal/view"
)

// Initial view: looking at the Mediterranean from slightly above.
const (
	startLat = 25.0
	startLon = 20.0
)

func showHelp() {
	fmt.Printf(`Chronicle Globe - interactive history globe for the terminal

DESCRIPTION:
    Terminal-based application displaying a rotating ASCII globe with topic
    markers grouped by era, connection arcs between related topics, an info
    panel and guided story tours. Content is read once from a JSON file or
    an http(s) URL.

USAGE:
    chronicle-globe [OPTIONS]

OPTIONS:
    -h                Show this help message
    -d <filename>     Enable debug logging to specified file
    -c <source>       Content file path or http(s) URL (default: data.json)
    -s <seconds>      Idle rotation period in seconds (10-300, 0 disables, default: 60)
    -r <milliseconds> Globe refresh rate in milliseconds (50-1000, default: 100)
    -m                Enable monochrome mode
    -a <ratio>        Character aspect ratio (height/width, 1.0-4.0, default: 2.0)

DISPLAY OPTIONS:
    --charset <type>      Character set: ascii|blocks|braille (default: ascii)
    --theme <name>        Theme: default|matrix|amber|solarized|nord|dracula|mono
    --night               Start with the night-side globe
    --poi=false           Start with topic markers hidden
    --arcs=false          Start with connection arcs hidden
    --fetch-timeout <d>   Timeout for fetching remote content (default: 10s)
    --geoip-db <file>     MaxMind City database for the home marker
    --home-ip <ip>        IP address to place the home marker at
    --record <file>       Record session to asciinema file
    --config <file>       Load settings from TOML config file

INTERACTIVE CONTROLS:
    Up/Down  - Move timeline cursor / scroll topic text
    Enter    - Open the era, topic or story under the cursor
    Esc      - Close the topic panel (ends a running story)
    S        - Start the story under the cursor, or tour the cursor's era
    N/P      - Next/previous story step (Right/Left during a story)
    X        - End story
    L        - Toggle day/night globe
    M        - Toggle topic markers
    G        - Toggle connection arcs
    +/-      - Zoom in/out
    0        - Reset view
    Arrows   - Orbit the globe
    Space    - Pause/Resume rotation
    [/]      - Decrease/Increase spin speed
    T        - Cycle through themes
    ?        - Toggle help panel
    Q        - Exit

EXAMPLES:
    # Local content file
    ./chronicle-globe -c history.json

    # Remote content, night globe, Braille characters
    ./chronicle-globe -c https://example.org/chronicle.json --night --charset braille

    # Mark your own location
    ./chronicle-globe --geoip-db GeoLite2-City.mmdb --home-ip 203.0.113.7

`)
}

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			showHelp()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.ShowHelp {
		showHelp()
		os.Exit(0)
	}

	if cfg.Debug.LogFile != "" {
		if err := debuglog.Open(cfg.Debug.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer debuglog.Close()
		debuglog.Printf("Chronicle Globe starting")
		if cfg.ConfigFile != "" {
			debuglog.Printf("Config: %s", cfg.ConfigFile)
		}
	}

	if err := run(cfg); err != nil {
		debuglog.Printf("Exiting with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Exiting...")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing TUI: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing TUI: %w", err)
	}

	width, height := screen.Size()
	recorder, err := NewAsciinemaRecorder(cfg.Debug.Record, width, height)
	if err != nil {
		debuglog.Printf("Failed to initialize recorder: %v", err)
		recorder = &AsciinemaRecorder{}
	}

	theme := lookupTheme(cfg.Display.Theme, cfg.Display.Monochrome)
	debuglog.Printf("Theme: %s", theme.Name)
	debuglog.Printf("Charset: %s", cfg.Display.Charset)

	panel := NewPanel()
	tui := NewTUI(screen, panel, theme, cfg.Display.AspectRatio, parseCharset(cfg.Display.Charset), recorder)
	defer tui.Close()

	sc := scene.New()
	cam := camera.New(startLon, startLat, cfg.RotationPeriod())
	ctl := view.New(sc, panel, cam, view.Options{
		Night:           cfg.Display.Night,
		HidePOI:         !cfg.Layers.POI,
		HideConnections: !cfg.Layers.Connections,
	})
	app := NewApp(tui, panel, cam, sc, ctl)

	app.setStatus(fmt.Sprintf("Loading %s ...", cfg.Content.Source), false)
	app.Render()

	// Validate has already checked the timeout.
	timeout, _ := cfg.FetchTimeout()
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	repo, err := content.NewLoader(timeout).LoadRepository(loadCtx, cfg.Content.Source)
	cancel()
	if err != nil {
		ctl.LoadFailed(err)
		app.setStatus("", false)
	} else {
		summary := app.Load(repo)
		app.setStatus(fmt.Sprintf("Loaded %d eras, %d topics, %d markers, %d arcs",
			summary.Eras, summary.TimelineEntries, summary.Markers, summary.Connections), false)
	}

	if cfg.Home.IP != "" {
		app.PlaceHome(cfg.Home.GeoIPDB, cfg.Home.IP)
	}

	return app.Run(ctx, cfg.RefreshInterval())
}
