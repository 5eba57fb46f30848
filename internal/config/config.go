package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/vstick/internal/stick"
	"gopkg.in/yaml.v3"
)

const (
	DefaultThrottleMs  = 10
	DefaultFPS         = 30
	DefaultTheme       = "classic"
	DefaultTermCols    = 16
	DefaultTermRows    = 8
	DefaultWindowScale = 2.0
	DefaultMaxSpeed    = 4.0
	DefaultTurnRate    = 2.5
	DefaultDeadzone    = 0.27
)

type Config struct {
	Stick      stick.Options   `yaml:"stick"`
	ThrottleMs int             `yaml:"throttle_ms"`
	Placement  PlacementConfig `yaml:"placement"`
	Display    DisplayConfig   `yaml:"display"`
	Rover      RoverConfig     `yaml:"rover"`
}

type PlacementConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type DisplayConfig struct {
	FPS         int     `yaml:"fps"`
	Theme       string  `yaml:"theme"`
	TermCols    int     `yaml:"term_cols"`
	TermRows    int     `yaml:"term_rows"`
	WindowScale float64 `yaml:"window_scale"`
}

type RoverConfig struct {
	MaxSpeed float64 `yaml:"max_speed"`
	TurnRate float64 `yaml:"turn_rate"`
	Deadzone float64 `yaml:"deadzone"`
}

func DefaultConfig() *Config {
	return &Config{
		ThrottleMs: DefaultThrottleMs,
		Placement:  PlacementConfig{X: stick.DefaultPlaceX, Y: stick.DefaultPlaceY},
		Display: DisplayConfig{
			FPS:         DefaultFPS,
			Theme:       DefaultTheme,
			TermCols:    DefaultTermCols,
			TermRows:    DefaultTermRows,
			WindowScale: DefaultWindowScale,
		},
		Rover: RoverConfig{
			MaxSpeed: DefaultMaxSpeed,
			TurnRate: DefaultTurnRate,
			Deadzone: DefaultDeadzone,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// FrameRate returns the display frame rate, or DefaultFPS when unset.
func (c *Config) FrameRate() int {
	if c.Display.FPS <= 0 {
		return DefaultFPS
	}
	return c.Display.FPS
}

func (c *Config) Throttle() time.Duration {
	if c.ThrottleMs <= 0 {
		return stick.DefaultThrottle
	}
	return time.Duration(c.ThrottleMs) * time.Millisecond
}

// StickOptions collects the construction options derived from c.
func (c *Config) StickOptions() []stick.Option {
	px, py := c.Placement.X, c.Placement.Y
	if px <= 0 || px > 1 {
		px = stick.DefaultPlaceX
	}
	if py <= 0 || py > 1 {
		py = stick.DefaultPlaceY
	}
	return []stick.Option{
		stick.WithThrottle(c.Throttle()),
		stick.WithPlacement(px, py),
	}
}

// ApplyPreset overlays the colors of a named preset onto c.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Stick = c.Stick.Merge(p.Stick)
	if p.Theme != "" {
		c.Display.Theme = p.Theme
	}
	return nil
}
