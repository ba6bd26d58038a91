// Package config merges built-in defaults, an optional TOML file and
// command-line flags. Flags given explicitly win over the file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Content struct {
		Source       string `toml:"source"`
		FetchTimeout string `toml:"fetch_timeout"`
	} `toml:"content"`

	Display struct {
		Theme          string  `toml:"theme"`
		Charset        string  `toml:"charset"`
		RotationPeriod int     `toml:"rotation_period"`
		RefreshRate    int     `toml:"refresh_rate"`
		AspectRatio    float64 `toml:"aspect_ratio"`
		Monochrome     bool    `toml:"monochrome"`
		Night          bool    `toml:"night"`
	} `toml:"display"`

	Layers struct {
		POI         bool `toml:"poi"`
		Connections bool `toml:"connections"`
	} `toml:"layers"`

	Home struct {
		GeoIPDB string `toml:"geoip_db"`
		IP      string `toml:"ip"`
	} `toml:"home"`

	Debug struct {
		LogFile string `toml:"log_file"`
		Record  string `toml:"record"`
	} `toml:"debug"`

	// ConfigFile is the TOML file the settings came from, if any.
	ConfigFile string `toml:"-"`
	ShowHelp   bool   `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{}
	c.Content.Source = "data.json"
	c.Content.FetchTimeout = "10s"
	c.Display.Theme = "default"
	c.Display.Charset = "ascii"
	c.Display.RotationPeriod = 60
	c.Display.RefreshRate = 100
	c.Display.AspectRatio = 2.0
	c.Layers.POI = true
	c.Layers.Connections = true
	return c
}

// LoadFile decodes a TOML file over c. Keys absent from the file keep their
// current values.
func LoadFile(path string, c *Config) error {
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

// Parse builds the configuration from args (without the program name).
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("chronicle-globe", flag.ContinueOnError)
	fs.SetOutput(output)

	// Flag destinations start from the defaults; only flags the user set
	// are copied back after the file has been applied.
	flagged := Default()
	fs.StringVar(&flagged.Debug.LogFile, "d", "", "Debug log filename")
	fs.BoolVar(&flagged.ShowHelp, "h", false, "Show help")
	fs.IntVar(&flagged.Display.RotationPeriod, "s", flagged.Display.RotationPeriod, "Globe rotation period in seconds (10-300, 0 disables)")
	fs.IntVar(&flagged.Display.RefreshRate, "r", flagged.Display.RefreshRate, "Globe refresh rate in milliseconds (50-1000)")
	fs.BoolVar(&flagged.Display.Monochrome, "m", false, "Enable monochrome mode")
	fs.Float64Var(&flagged.Display.AspectRatio, "a", flagged.Display.AspectRatio, "Character aspect ratio (height/width, 1.0-4.0)")
	fs.StringVar(&flagged.Content.Source, "c", flagged.Content.Source, "Content file path or http(s) URL")
	fs.StringVar(&flagged.Content.FetchTimeout, "fetch-timeout", flagged.Content.FetchTimeout, "Timeout for fetching remote content")
	fs.StringVar(&flagged.Display.Theme, "theme", flagged.Display.Theme, "Theme name")
	fs.StringVar(&flagged.Display.Charset, "charset", flagged.Display.Charset, "Character set: ascii|blocks|braille")
	fs.BoolVar(&flagged.Display.Night, "night", false, "Start with the night-side globe")
	fs.BoolVar(&flagged.Layers.POI, "poi", true, "Show topic markers")
	fs.BoolVar(&flagged.Layers.Connections, "arcs", true, "Show connection arcs")
	fs.StringVar(&flagged.Home.GeoIPDB, "geoip-db", "", "MaxMind City database for the home marker")
	fs.StringVar(&flagged.Home.IP, "home-ip", "", "IP address to place the home marker at")
	fs.StringVar(&flagged.Debug.Record, "record", "", "Record to asciinema file")
	configFile := fs.String("config", "", "Load settings from TOML config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := LoadFile(*configFile, cfg); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	apply := func(name string, fn func()) {
		if set[name] {
			fn()
		}
	}
	apply("d", func() { cfg.Debug.LogFile = flagged.Debug.LogFile })
	apply("h", func() { cfg.ShowHelp = flagged.ShowHelp })
	apply("s", func() { cfg.Display.RotationPeriod = flagged.Display.RotationPeriod })
	apply("r", func() { cfg.Display.RefreshRate = flagged.Display.RefreshRate })
	apply("m", func() { cfg.Display.Monochrome = flagged.Display.Monochrome })
	apply("a", func() { cfg.Display.AspectRatio = flagged.Display.AspectRatio })
	apply("c", func() { cfg.Content.Source = flagged.Content.Source })
	apply("fetch-timeout", func() { cfg.Content.FetchTimeout = flagged.Content.FetchTimeout })
	apply("theme", func() { cfg.Display.Theme = flagged.Display.Theme })
	apply("charset", func() { cfg.Display.Charset = flagged.Display.Charset })
	apply("night", func() { cfg.Display.Night = flagged.Display.Night })
	apply("poi", func() { cfg.Layers.POI = flagged.Layers.POI })
	apply("arcs", func() { cfg.Layers.Connections = flagged.Layers.Connections })
	apply("geoip-db", func() { cfg.Home.GeoIPDB = flagged.Home.GeoIPDB })
	apply("home-ip", func() { cfg.Home.IP = flagged.Home.IP })
	apply("record", func() { cfg.Debug.Record = flagged.Debug.Record })

	if cfg.ShowHelp {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if p := c.Display.RotationPeriod; p != 0 && (p < 10 || p > 300) {
		errs = append(errs, errors.New("rotation period must be between 10 and 300 seconds"))
	}
	if r := c.Display.RefreshRate; r < 50 || r > 1000 {
		errs = append(errs, errors.New("refresh rate must be between 50 and 1000 milliseconds"))
	}
	if a := c.Display.AspectRatio; a < 1.0 || a > 4.0 {
		errs = append(errs, errors.New("aspect ratio must be between 1.0 and 4.0"))
	}
	switch c.Display.Charset {
	case "ascii", "blocks", "braille":
	default:
		errs = append(errs, fmt.Errorf("unknown charset %q", c.Display.Charset))
	}
	if c.Content.Source == "" {
		errs = append(errs, errors.New("content source must not be empty"))
	}
	if _, err := c.FetchTimeout(); err != nil {
		errs = append(errs, err)
	}
	if (c.Home.IP == "") != (c.Home.GeoIPDB == "") {
		errs = append(errs, errors.New("home marker needs both a GeoIP database and an IP"))
	}
	return errors.Join(errs...)
}

// FetchTimeout parses the content fetch timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Content.FetchTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch timeout %q: %w", c.Content.FetchTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("fetch timeout must be positive, got %s", d)
	}
	return d, nil
}

// RotationPeriod is the idle spin period; zero means no idle spin.
func (c *Config) RotationPeriod() time.Duration {
	return time.Duration(c.Display.RotationPeriod) * time.Second
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Display.RefreshRate) * time.Millisecond
}
