package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// defaultConfigPath is read when --config is not given. A missing file is
// not an error.
const defaultConfigPath = "choreo.toml"

// Config is the choreo.toml file.
type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
}

// PlaybackConfig controls the fixed frame step.
type PlaybackConfig struct {
	FPS   int     `toml:"fps"`
	Speed float64 `toml:"speed"`
}

// WindowConfig sizes the play window and the watch bars.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// LogConfig sets the default log level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Playback: PlaybackConfig{FPS: 60, Speed: 1},
		Window:   WindowConfig{Width: 640, Height: 480, Title: "choreo"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config: unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Playback.FPS <= 0 {
		c.Playback.FPS = def.Playback.FPS
	}
	if c.Playback.Speed <= 0 {
		c.Playback.Speed = def.Playback.Speed
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (log.Level, error) {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("load config: %w", err)
	}
	return l, nil
}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the config attached to ctx, or the defaults.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return DefaultConfig()
}
