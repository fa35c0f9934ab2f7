package fx

import "math"

// Color is an sRGB color with a fractional alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// WithAlpha returns c with its alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp(a, 0, 1)
	return c
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

// TextStyle describes how a glyph is painted.
type TextStyle struct {
	Color    Color
	Size     float64
	Bold     bool
	Rotation float64 // degrees, clockwise
	Centered bool
	Glow     float64 // shadow blur radius, 0 disables
	GlowTint Color
}

// Surface is a 2D raster an animator paints into every frame.
type Surface interface {
	Clear()
	// Fill blends c over the whole surface.
	Fill(c Color)
	Circle(x, y, r float64, c Color)
	// Halo paints a radial gradient from c at the center to transparent at r.
	Halo(x, y, r float64, c Color)
	Line(x0, y0, x1, y1, width float64, c Color)
	Text(x, y float64, s string, style TextStyle)
}

// Animator is one per-frame animation engine.
type Animator interface {
	Name() string
	// Resize re-seeds the whole batch for a w×h viewport.
	Resize(w, h int)
	SetDark(dark bool)
	// Frame runs one update and draw pass.
	Frame(s Surface)
}

// PointerAware is implemented by animators that react to the pointer.
type PointerAware interface {
	PointerMove(x, y float64)
}

// Closer is implemented by animators holding timers.
type Closer interface {
	Close()
}

// Rand is the random source animators draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type discard struct{}

func (discard) Clear()                                    {}
func (discard) Fill(Color)                                {}
func (discard) Circle(x, y, r float64, c Color)           {}
func (discard) Halo(x, y, r float64, c Color)             {}
func (discard) Line(x0, y0, x1, y1, w float64, c Color)   {}
func (discard) Text(x, y float64, s string, st TextStyle) {}

// Discard is a Surface on which all draw calls succeed without doing anything.
var Discard Surface = discard{}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func pick[T any](rng Rand, pool []T) T {
	i := int(rng.Float64() * float64(len(pool)))
	if i >= len(pool) {
		i = len(pool) - 1
	}
	return pool[i]
}
