// Package config loads the YAML settings shared by the blockfall commands.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/plus3/blockfall/game"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Speed    SpeedConfig    `yaml:"speed"`
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Input    InputConfig    `yaml:"input"`
	Recorder RecorderConfig `yaml:"recorder"`
	Observe  ObserveConfig  `yaml:"observe"`
	Seed     uint64         `yaml:"seed"`
}

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Count is the number of boards the simulator runs side by side.
	Count int `yaml:"count"`
}

// SpeedConfig times are in seconds.
type SpeedConfig struct {
	GravityInterval float64 `yaml:"gravity_interval"`
	LockDelay       float64 `yaml:"lock_delay"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type RenderConfig struct {
	CellSize float64 `yaml:"cell_size"`
	Color    string  `yaml:"color"`
}

type InputConfig struct {
	RepeatDelay time.Duration `yaml:"repeat_delay"`
	RepeatRate  float64       `yaml:"repeat_rate"`
}

type RecorderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Every   int    `yaml:"every"`
}

type ObserveConfig struct {
	// Addr is the listen address for the HTTP observe routes. Empty disables them.
	Addr string `yaml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Board: BoardConfig{Width: 10, Height: 20, Count: 1},
		Speed: SpeedConfig{GravityInterval: 0.5, LockDelay: 0.5},
		Window: WindowConfig{
			Width:  640,
			Height: 720,
			Title:  "blockfall",
		},
		Render:   RenderConfig{CellSize: 30, Color: "#82cff0"},
		Input:    InputConfig{RepeatDelay: 170 * time.Millisecond, RepeatRate: 20},
		Recorder: RecorderConfig{Path: "blockfall.rec", Every: 1},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every bad field at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		bad("board must be at least 1x1, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if c.Board.Count <= 0 {
		bad("board.count must be positive, got %d", c.Board.Count)
	}
	if c.Speed.GravityInterval <= 0 {
		bad("speed.gravity_interval must be positive, got %v", c.Speed.GravityInterval)
	}
	if c.Speed.LockDelay < 0 {
		bad("speed.lock_delay must not be negative, got %v", c.Speed.LockDelay)
	}
	if c.Render.CellSize <= 0 {
		bad("render.cell_size must be positive, got %v", c.Render.CellSize)
	}
	if _, err := ParseColor(c.Render.Color); err != nil {
		bad("render.color: %v", err)
	}
	if c.Input.RepeatDelay < 0 || c.Input.RepeatRate < 0 {
		bad("input repeat settings must not be negative")
	}
	if c.Recorder.Enabled && c.Recorder.Path == "" {
		bad("recorder.path is required when the recorder is enabled")
	}
	if c.Recorder.Every <= 0 {
		bad("recorder.every must be positive, got %d", c.Recorder.Every)
	}

	return errors.Join(errs...)
}

// Params builds the game parameters. It assumes Validate passed.
func (c Config) Params() game.Params {
	clr, err := ParseColor(c.Render.Color)
	if err != nil {
		clr = game.DefaultColor
	}
	return game.Params{
		Width:           c.Board.Width,
		Height:          c.Board.Height,
		GravityInterval: c.Speed.GravityInterval,
		LockDelay:       c.Speed.LockDelay,
		CellSize:        c.Render.CellSize,
		Color:           clr,
	}
}

// ParseColor accepts "#rrggbb". An empty string is the default color.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return game.DefaultColor, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
