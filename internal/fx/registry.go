package fx

import (
	"fmt"
	"sort"
)

// Options carries per-effect settings for the registry.
type Options struct {
	Particles ParticleConfig
	Rain      RainConfig
	Glyphs    GlyphConfig
}

func DefaultOptions() Options {
	return Options{
		Particles: DefaultParticleConfig(),
		Rain:      DefaultRainConfig(),
		Glyphs:    DefaultGlyphConfig(),
	}
}

type Registry struct {
	effects map[string]func(Options, Rand) Animator
}

func NewRegistry() *Registry {
	r := &Registry{effects: make(map[string]func(Options, Rand) Animator)}

	r.effects["particles"] = func(o Options, rng Rand) Animator { return NewParticleField(o.Particles, rng) }
	r.effects["rain"] = func(o Options, rng Rand) Animator { return NewSymbolRain(o.Rain, rng) }
	r.effects["glyphs"] = func(o Options, rng Rand) Animator { return NewFloatingGlyphs(o.Glyphs, rng) }

	return r
}

func (r *Registry) Get(name string, o Options, rng Rand) (Animator, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
	return fn(o, rng), nil
}

// Names lists registered effects in a stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
