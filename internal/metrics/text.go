package metrics

import "github.com/san-kum/backdrop/internal/fx"

// Streams counts rain columns whose drop is inside the viewport.
type Streams struct {
	name    string
	visible int
}

func NewStreams() *Streams { return &Streams{name: "streams"} }

func (s *Streams) Name() string { return s.name }

func (s *Streams) Observe(a fx.Animator) {
	r, ok := a.(*fx.SymbolRain)
	if !ok {
		return
	}
	s.visible = r.Visible()
}

func (s *Streams) Value() float64 { return float64(s.visible) }

func (s *Streams) Reset() { s.visible = 0 }

// Opacity is the mean glyph opacity of the most recent frame.
type Opacity struct {
	name string
	mean float64
}

func NewOpacity() *Opacity { return &Opacity{name: "opacity"} }

func (o *Opacity) Name() string { return o.name }

func (o *Opacity) Observe(a fx.Animator) {
	g, ok := a.(*fx.FloatingGlyphs)
	if !ok {
		return
	}
	gs := g.Glyphs()
	if len(gs) == 0 {
		o.mean = 0
		return
	}
	sum := 0.0
	for i := range gs {
		sum += gs[i].Opacity
	}
	o.mean = sum / float64(len(gs))
}

func (o *Opacity) Value() float64 { return o.mean }

func (o *Opacity) Reset() { o.mean = 0 }
