package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

const (
	DefaultCols        = 24
	DefaultCoherence   = 0.9
	DefaultOpacity     = 1.0
	DefaultStepDelayMs = 15
	DefaultStartFrom   = "center"
	DefaultBackground  = "#101014"
	DefaultTheme       = "ember"
)

var (
	// ErrInvalidConfig wraps every validation failure of a run configuration.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is one run of the fill, as read from YAML or assembled from flags.
type Config struct {
	Cols        int     `yaml:"cols"`
	Coherence   float64 `yaml:"coherence"`
	Opacity     float64 `yaml:"opacity"`
	StepDelayMs float64 `yaml:"step_delay_ms"`
	StartFrom   string  `yaml:"start_from"`
	Seed        int64   `yaml:"seed"`
	Background  string  `yaml:"background"`
	Theme       string  `yaml:"theme"`
	Blocked     []int   `yaml:"blocked,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Cols:        DefaultCols,
		Coherence:   DefaultCoherence,
		Opacity:     DefaultOpacity,
		StepDelayMs: DefaultStepDelayMs,
		StartFrom:   DefaultStartFrom,
		Background:  DefaultBackground,
		Theme:       DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Blocked = append([]int(nil), base.Blocked...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the inputs a caller must reject before starting a run.
func (c *Config) Validate() error {
	if c.Cols <= 0 {
		return fmt.Errorf("%w: cols must be positive, got %d", ErrInvalidConfig, c.Cols)
	}
	if math.IsNaN(c.Coherence) || c.Coherence < 0 || c.Coherence > 1 {
		return fmt.Errorf("%w: coherence must be in [0, 1], got %v", ErrInvalidConfig, c.Coherence)
	}
	if math.IsNaN(c.Opacity) || c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("%w: opacity must be in [0, 1], got %v", ErrInvalidConfig, c.Opacity)
	}
	if c.StepDelayMs < 0 {
		return fmt.Errorf("%w: step delay must not be negative, got %v", ErrInvalidConfig, c.StepDelayMs)
	}
	if _, err := fill.ParseSelector(c.StartFrom); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	n := c.Cols * c.Cols
	for _, idx := range c.Blocked {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: blocked cell %d outside [0, %d)", ErrInvalidConfig, idx, n)
		}
	}
	return nil
}

func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.StepDelayMs * float64(time.Millisecond))
}

// BackgroundColor parses Background, defaulting to black when empty.
func (c *Config) BackgroundColor() (palette.Color, error) {
	if c.Background == "" {
		return palette.RGB(0, 0, 0), nil
	}
	return palette.ParseColor(c.Background)
}

// Grid builds the grid described by Cols and Blocked.
func (c *Config) Grid() (*fill.Grid, error) {
	g, err := fill.NewGrid(c.Cols)
	if err != nil {
		return nil, err
	}
	for _, idx := range c.Blocked {
		if err := g.Block(idx); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FillConfig resolves the start selector and converts to engine settings.
func (c *Config) FillConfig() (fill.Config, error) {
	sel, err := fill.ParseSelector(c.StartFrom)
	if err != nil {
		return fill.Config{}, err
	}
	start, err := fill.StartIndex(c.Cols, sel)
	if err != nil {
		return fill.Config{}, err
	}
	return fill.Config{
		Start:     start,
		StepDelay: c.StepDelay(),
		Coherence: c.Coherence,
		Opacity:   c.Opacity,
		Seed:      c.Seed,
	}, nil
}

// Engine validates the config and builds an engine for it.
func (c *Config) Engine() (*fill.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g, err := c.Grid()
	if err != nil {
		return nil, err
	}
	fc, err := c.FillConfig()
	if err != nil {
		return nil, err
	}
	return fill.New(g, fc)
}
