package config

import (
	"fmt"
	"sort"
)

// Presets adjust the defaults. Each one is applied to a fresh DefaultConfig.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.FPS = 30
		c.Particles.Count = 40
		c.Particles.Distance = 140
		c.Glyphs.Count = 20
	},
	"dense": func(c *Config) {
		c.Particles.Count = 160
		c.Particles.Distance = 200
		c.Rain.GlyphWidth = 10
		c.Glyphs.Count = 80
	},
	"minimal": func(c *Config) {
		c.Effect = "glyphs"
		c.Particles.Count = 24
		c.Glyphs.Count = 12
		c.Rain.TrailAlpha = 0.1
	},
	"light": func(c *Config) {
		c.Theme = "light"
	},
}

// GetPreset returns the defaults with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
