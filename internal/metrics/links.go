package metrics

import "github.com/san-kum/backdrop/internal/fx"

// Links reports the connection count of the most recent particle frame.
type Links struct {
	name string
	last int
}

func NewLinks() *Links { return &Links{name: "links"} }

func (l *Links) Name() string { return l.name }

func (l *Links) Observe(a fx.Animator) {
	f, ok := a.(*fx.ParticleField)
	if !ok {
		return
	}
	l.last = f.Links()
}

func (l *Links) Value() float64 { return float64(l.last) }

func (l *Links) Reset() { l.last = 0 }

// Speed is the mean particle speed of the most recent frame.
type Speed struct {
	name string
	mean float64
}

func NewSpeed() *Speed { return &Speed{name: "speed"} }

func (s *Speed) Name() string { return s.name }

func (s *Speed) Observe(a fx.Animator) {
	f, ok := a.(*fx.ParticleField)
	if !ok {
		return
	}
	ps := f.Particles()
	if len(ps) == 0 {
		s.mean = 0
		return
	}
	sum := 0.0
	for i := range ps {
		sum += ps[i].Speed()
	}
	s.mean = sum / float64(len(ps))
}

func (s *Speed) Value() float64 { return s.mean }

func (s *Speed) Reset() { s.mean = 0 }
