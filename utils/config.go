package utils

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Themes lists the color theme names accepted by Config.Theme.
var Themes = []string{"dusk", "lagoon"}

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	TicksPerStep        int           `json:"ticks_per_step"`
	Workers             int           `json:"workers"`
	Seed                uint64        `json:"seed"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
	Interactive         bool          `json:"interactive"`
	Theme               string        `json:"theme"`
	LegacyStamping      bool          `json:"legacy_stamping"`
	LogLevel            string        `json:"log_level"`
	LogFile             string        `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              64,
		FrameRate:           100 * time.Millisecond,
		TicksPerStep:        1,
		Workers:             1,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      0, // no limit
		Interactive:         true,
		Theme:               "dusk",
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet, using the current
// values as defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.DurationVar(&c.FrameRate, "frame-rate", c.FrameRate, "delay between frames")
	fs.IntVar(&c.TicksPerStep, "ticks", c.TicksPerStep, "generations advanced per frame")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per tick (0 or 1 for sequential)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "reset the grid on extinction or stagnation")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant frames before a restart")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations (0 for no limit)")
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "full screen terminal UI with mouse input")
	fs.StringVar(&c.Theme, "theme", c.Theme, "color theme")
	fs.BoolVar(&c.LegacyStamping, "legacy-stamping", c.LegacyStamping, "skip pattern cells with mixed-sign offsets instead of wrapping")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.TicksPerStep < 1:
		return errors.Wrapf(ErrInvalidConfig, "ticks_per_step must be positive, got %d", c.TicksPerStep)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %s", c.FrameRate)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be positive, got %d", c.StagnationThreshold)
	}

	known := false
	for _, name := range Themes {
		if name == c.Theme {
			known = true
			break
		}
	}
	if !known {
		return errors.Wrapf(ErrInvalidConfig, "unknown theme %q", c.Theme)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(ErrInvalidConfig, "unknown log level %q", c.LogLevel)
	}
	return level, nil
}
