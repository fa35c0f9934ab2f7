package fx

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/san-kum/backdrop/internal/loop"
)

const (
	DefaultParticleCount      = 80
	DefaultConnectionDistance = 180.0
	DefaultAttractRadius      = 200.0
	DefaultPointerIdle        = 2 * time.Second

	fastChance     = 0.3
	attractForce   = 0.2
	pulseMax       = 0.5
	pulseGrowth    = 0.3
	haloScale      = 1.5
	linkWidthScale = 0.8
)

type ParticleConfig struct {
	Count         int           `yaml:"count"`
	Distance      float64       `yaml:"distance"`
	AttractRadius float64       `yaml:"attract_radius"`
	PointerIdle   time.Duration `yaml:"pointer_idle"`
}

func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		Count:         DefaultParticleCount,
		Distance:      DefaultConnectionDistance,
		AttractRadius: DefaultAttractRadius,
		PointerIdle:   DefaultPointerIdle,
	}
}

// Particle is one node of the field.
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Pulse      float64
	PulseSpeed float64
	PulseDir   float64
	Fast       bool
}

// MaxSpeed is the cap applied after pointer attraction.
func (p *Particle) MaxSpeed() float64 {
	if p.Fast {
		return 2
	}
	return 1
}

// Speed returns the velocity magnitude.
func (p *Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

// ParticleField draws moving nodes with links between close pairs.
type ParticleField struct {
	cfg       ParticleConfig
	rng       Rand
	width     float64
	height    float64
	particles []Particle
	palette   Palette
	links     int

	pointerX, pointerY float64
	moving             atomic.Bool
	idle               *loop.Debouncer
}

func NewParticleField(cfg ParticleConfig, rng Rand) *ParticleField {
	return NewParticleFieldWith(cfg, rng, nil)
}

// NewParticleFieldWith schedules the pointer idle timer through after. A nil
// after uses real timers.
func NewParticleFieldWith(cfg ParticleConfig, rng Rand, after loop.AfterFunc) *ParticleField {
	if cfg.Count <= 0 {
		cfg.Count = DefaultParticleCount
	}
	if cfg.Distance <= 0 {
		cfg.Distance = DefaultConnectionDistance
	}
	if cfg.AttractRadius <= 0 {
		cfg.AttractRadius = DefaultAttractRadius
	}
	if cfg.PointerIdle <= 0 {
		cfg.PointerIdle = DefaultPointerIdle
	}
	f := &ParticleField{cfg: cfg, rng: rng, palette: DarkPalette}
	settle := func() { f.moving.Store(false) }
	if after == nil {
		f.idle = loop.NewDebouncer(cfg.PointerIdle, settle)
	} else {
		f.idle = loop.NewDebouncerWith(cfg.PointerIdle, settle, after)
	}
	return f
}

func (f *ParticleField) Name() string { return "particles" }

func (f *ParticleField) Config() ParticleConfig { return f.cfg }

// Resize re-seeds every particle across the new viewport.
func (f *ParticleField) Resize(w, h int) {
	f.width, f.height = float64(w), float64(h)
	f.particles = make([]Particle, f.cfg.Count)
	for i := range f.particles {
		fast := f.rng.Float64() > 1-fastChance
		mult := 1.0
		if fast {
			mult = 2
		}
		f.particles[i] = Particle{
			X:          f.rng.Float64() * f.width,
			Y:          f.rng.Float64() * f.height,
			VX:         (f.rng.Float64()*0.6 - 0.3) * mult,
			VY:         (f.rng.Float64()*0.6 - 0.3) * mult,
			Radius:     f.rng.Float64()*2.5 + 1,
			PulseSpeed: f.rng.Float64() * 0.1,
			PulseDir:   1,
			Fast:       fast,
		}
	}
	f.links = 0
}

// SetDark recolors the field. Positions are untouched.
func (f *ParticleField) SetDark(dark bool) { f.palette = PaletteFor(dark) }

// PointerMove records the pointer and keeps attraction on until it has been
// idle for the configured period. The timer is restarted before the flag is
// set so an expiring idle period cannot clear this move.
func (f *ParticleField) PointerMove(x, y float64) {
	f.pointerX, f.pointerY = x, y
	f.idle.Trigger()
	f.moving.Store(true)
}

func (f *ParticleField) PointerActive() bool { return f.moving.Load() }

// Close releases the pointer idle timer.
func (f *ParticleField) Close() {
	f.idle.Stop()
	f.moving.Store(false)
}

// Particles exposes the batch. Callers must not retain it across Resize.
func (f *ParticleField) Particles() []Particle { return f.particles }

// Links returns how many connections the last frame drew.
func (f *ParticleField) Links() int { return f.links }

func (f *ParticleField) Frame(s Surface) {
	s.Clear()
	attract := f.moving.Load()
	for i := range f.particles {
		p := &f.particles[i]
		f.step(p, attract)
		r := p.Radius * (1 + p.Pulse*pulseGrowth)
		s.Circle(p.X, p.Y, r, f.palette.Accent)
		s.Halo(p.X, p.Y, r*haloScale, f.palette.Accent)
	}

	f.links = 0
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= f.cfg.Distance {
				continue
			}
			opacity := ConnectionOpacity(d, f.cfg.Distance)
			s.Line(a.X, a.Y, b.X, b.Y, linkWidthScale*opacity, f.palette.Link.WithAlpha(opacity))
			f.links++
		}
	}
}

func (f *ParticleField) step(p *Particle, attract bool) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > f.width {
		p.VX = -p.VX
		p.X = clamp(p.X, 0, f.width)
	}
	if p.Y < 0 || p.Y > f.height {
		p.VY = -p.VY
		p.Y = clamp(p.Y, 0, f.height)
	}

	p.Pulse += p.PulseSpeed * p.PulseDir
	if p.Pulse > pulseMax || p.Pulse < 0 {
		p.PulseDir = -p.PulseDir
		p.Pulse = clamp(p.Pulse, 0, pulseMax)
	}

	if !attract {
		return
	}
	dx, dy := f.pointerX-p.X, f.pointerY-p.Y
	d := math.Hypot(dx, dy)
	if d == 0 || d >= f.cfg.AttractRadius {
		return
	}
	force := attractForce / d
	p.VX += dx * force
	p.VY += dy * force
	if v, limit := p.Speed(), p.MaxSpeed(); v > limit {
		p.VX = p.VX / v * limit
		p.VY = p.VY / v * limit
	}
}

// ConnectionOpacity is the linear falloff 1 - d/limit, clamped to [0, 1].
func ConnectionOpacity(d, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return clamp(1-d/limit, 0, 1)
}
