package nav

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	scrollFrequency = 6.0
	scrollDamping   = 1.0
	settleDistance  = 0.5
)

// Scroller eases the scroll offset toward a target with a critically damped
// spring, one step per frame.
type Scroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

func NewScroller(fps int) *Scroller {
	if fps <= 0 {
		fps = 60
	}
	return &Scroller{spring: harmonica.NewSpring(harmonica.FPS(fps), scrollFrequency, scrollDamping)}
}

// Start begins a scroll from the current offset to target.
func (s *Scroller) Start(from, target float64) {
	s.pos, s.target = from, target
	s.vel = 0
	s.active = from != target
}

func (s *Scroller) Active() bool { return s.active }

func (s *Scroller) Target() float64 { return s.target }

func (s *Scroller) Cancel() { s.active = false }

// Step advances one frame and returns the new offset. done is true once the
// offset has settled on the target.
func (s *Scroller) Step() (y float64, done bool) {
	if !s.active {
		return s.pos, true
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settleDistance && math.Abs(s.vel) < settleDistance {
		s.pos, s.vel = s.target, 0
		s.active = false
		return s.pos, true
	}
	return s.pos, false
}
