package fx

import (
	"time"

	"github.com/san-kum/backdrop/internal/loop"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type textCall struct {
	x, y  float64
	s     string
	style TextStyle
}

type lineCall struct {
	x0, y0, x1, y1, width float64
	c                     Color
}

type recorder struct {
	clears  int
	fills   []Color
	circles int
	halos   int
	lines   []lineCall
	texts   []textCall
}

func (r *recorder) Clear()                            { r.clears++ }
func (r *recorder) Fill(c Color)                      { r.fills = append(r.fills, c) }
func (r *recorder) Circle(x, y, rad float64, c Color) { r.circles++ }
func (r *recorder) Halo(x, y, rad float64, c Color)   { r.halos++ }
func (r *recorder) Line(x0, y0, x1, y1, w float64, c Color) {
	r.lines = append(r.lines, lineCall{x0, y0, x1, y1, w, c})
}
func (r *recorder) Text(x, y float64, s string, st TextStyle) {
	r.texts = append(r.texts, textCall{x, y, s, st})
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) after(d time.Duration, f func()) loop.Timer {
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireLast() {
	if n := len(c.timers); n > 0 && !c.timers[n-1].stopped {
		c.timers[n-1].fn()
	}
}
