package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/nav"
)

const (
	DefaultEffect = "particles"
	DefaultFPS    = 60
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFrames = 120
	DefaultTheme  = "dark"
)

type Config struct {
	Effect    string            `yaml:"effect"`
	Theme     string            `yaml:"theme"`
	FPS       int               `yaml:"fps"`
	Width     int               `yaml:"width"`
	Height    int               `yaml:"height"`
	Frames    int               `yaml:"frames"`
	Seed      int64             `yaml:"seed"`
	Particles fx.ParticleConfig `yaml:"particles"`
	Rain      fx.RainConfig     `yaml:"rain"`
	Glyphs    fx.GlyphConfig    `yaml:"glyphs"`
	Nav       NavConfig         `yaml:"nav"`
}

type NavConfig struct {
	nav.Config `yaml:",inline"`
	Sections   []SectionConfig `yaml:"sections"`
}

type SectionConfig struct {
	ID     string  `yaml:"id"`
	Height float64 `yaml:"height"`
}

// DefaultSectionHeights are the virtual page heights for nav.DefaultSections.
var DefaultSectionHeights = nav.DefaultHeights

func DefaultConfig() *Config {
	sections := make([]SectionConfig, len(nav.DefaultSections))
	for i, id := range nav.DefaultSections {
		sections[i] = SectionConfig{ID: id, Height: DefaultSectionHeights[i]}
	}
	return &Config{
		Effect:    DefaultEffect,
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Frames:    DefaultFrames,
		Particles: fx.DefaultParticleConfig(),
		Rain:      fx.DefaultRainConfig(),
		Glyphs:    fx.DefaultGlyphConfig(),
		Nav:       NavConfig{Config: nav.DefaultConfig(), Sections: sections},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a yaml file on top of base. base is not modified.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Nav.Sections = append([]SectionConfig(nil), c.Nav.Sections...)
	return &out
}

func (c *Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Theme != "dark" && c.Theme != "light" {
		errs = append(errs, fmt.Errorf("theme must be dark or light, got %q", c.Theme))
	}
	if c.Particles.Count < 0 || c.Glyphs.Count < 0 {
		errs = append(errs, errors.New("counts must not be negative"))
	}
	if c.Rain.TrailAlpha < 0 || c.Rain.TrailAlpha > 1 {
		errs = append(errs, fmt.Errorf("rain trail alpha must be in [0,1], got %g", c.Rain.TrailAlpha))
	}
	seen := make(map[string]bool, len(c.Nav.Sections))
	for _, s := range c.Nav.Sections {
		if s.ID == "" {
			errs = append(errs, errors.New("section id must not be empty"))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate section %q", s.ID))
		}
		seen[s.ID] = true
		if s.Height <= 0 {
			errs = append(errs, fmt.Errorf("section %q height must be positive", s.ID))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) Dark() bool { return c.Theme != "light" }

func (c *Config) Options() fx.Options {
	return fx.Options{Particles: c.Particles, Rain: c.Rain, Glyphs: c.Glyphs}
}

// Order lists the section ids in document order.
func (c *Config) Order() []string {
	ids := make([]string, len(c.Nav.Sections))
	for i, s := range c.Nav.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Layout stacks the configured sections into page bounds.
func (c *Config) Layout() []nav.Bounds {
	heights := make([]float64, len(c.Nav.Sections))
	for i, s := range c.Nav.Sections {
		heights[i] = s.Height
	}
	return nav.Stack(c.Order(), heights)
}
