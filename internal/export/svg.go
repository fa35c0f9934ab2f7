package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/backdrop/internal/fx"
)

const (
	// svgUnit subdivides each pixel so integer svgo coordinates keep a
	// tenth of a pixel of precision.
	svgUnit    = 10
	minOpacity = 0.01
	maxShapes  = 20000
)

type shapeKind int

const (
	shapeCircle shapeKind = iota
	shapeHalo
	shapeLine
	shapeText
)

type shape struct {
	kind           shapeKind
	x0, y0, x1, y1 float64
	size           float64
	color          fx.Color
	text           string
	style          fx.TextStyle
	fade           float64
}

// SVG is an fx.Surface that retains its shapes and writes them out as a
// document. Fill fades the retained shapes toward the background, so
// trailing effects survive across frames.
type SVG struct {
	width, height int
	bg            fx.Color
	shapes        []shape
}

func NewSVG(w, h int, bg fx.Color) *SVG {
	return &SVG{width: w, height: h, bg: bg}
}

func (s *SVG) Resize(w, h int) {
	s.width, s.height = w, h
	s.shapes = s.shapes[:0]
}

func (s *SVG) SetBackground(bg fx.Color) { s.bg = bg }

// Shapes reports how many shapes the next document will contain.
func (s *SVG) Shapes() int { return len(s.shapes) }

func (s *SVG) Clear() { s.shapes = s.shapes[:0] }

func (s *SVG) Fill(c fx.Color) {
	keep := s.shapes[:0]
	for _, sh := range s.shapes {
		sh.fade *= 1 - c.A
		if sh.color.A*sh.fade >= minOpacity {
			keep = append(keep, sh)
		}
	}
	s.shapes = keep
}

func (s *SVG) Circle(x, y, r float64, c fx.Color) {
	s.add(shape{kind: shapeCircle, x0: x, y0: y, size: r, color: c})
}

func (s *SVG) Halo(x, y, r float64, c fx.Color) {
	s.add(shape{kind: shapeHalo, x0: x, y0: y, size: r, color: c})
}

func (s *SVG) Line(x0, y0, x1, y1, width float64, c fx.Color) {
	s.add(shape{kind: shapeLine, x0: x0, y0: y0, x1: x1, y1: y1, size: width, color: c})
}

func (s *SVG) Text(x, y float64, t string, st fx.TextStyle) {
	s.add(shape{kind: shapeText, x0: x, y0: y, text: t, style: st, color: st.Color})
}

func (s *SVG) add(sh shape) {
	sh.fade = 1
	if len(s.shapes) >= maxShapes {
		s.shapes = s.shapes[1:]
	}
	s.shapes = append(s.shapes, sh)
}

// Render writes the retained shapes as one SVG document.
func (s *SVG) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.width, s.height, fmt.Sprintf(`viewBox="0 0 %d %d"`, s.width*svgUnit, s.height*svgUnit))

	halos := s.haloColors()
	if len(halos) > 0 {
		canvas.Def()
		for _, c := range halos {
			canvas.RadialGradient(haloID(c), 50, 50, 50, 50, 50, []svg.Offcolor{
				{Offset: 0, Color: c.Hex(), Opacity: haloPeak},
				{Offset: 100, Color: c.Hex(), Opacity: 0},
			})
		}
		canvas.DefEnd()
	}

	canvas.Rect(0, 0, s.width*svgUnit, s.height*svgUnit, "fill:"+s.bg.Hex())
	for _, sh := range s.shapes {
		alpha := sh.color.A * sh.fade
		switch sh.kind {
		case shapeCircle:
			canvas.Circle(u(sh.x0), u(sh.y0), u(sh.size), fillStyle(sh.color, alpha))
		case shapeHalo:
			canvas.Circle(u(sh.x0), u(sh.y0), u(sh.size), fmt.Sprintf("fill:url(#%s);opacity:%.3f", haloID(sh.color), sh.fade))
		case shapeLine:
			canvas.Line(u(sh.x0), u(sh.y0), u(sh.x1), u(sh.y1),
				fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%d", sh.color.Hex(), alpha, max(1, u(sh.size))))
		case shapeText:
			s.renderText(canvas, sh, alpha)
		}
	}
	canvas.End()
	return ew.err
}

func (s *SVG) renderText(canvas *svg.SVG, sh shape, alpha float64) {
	st := sh.style
	x, y := u(sh.x0), u(sh.y0)
	base := []string{fmt.Sprintf("font-family:monospace;font-size:%d", u(st.Size))}
	if st.Bold {
		base = append(base, "font-weight:bold")
	}
	if st.Centered {
		base = append(base, "text-anchor:middle;dominant-baseline:middle")
	}
	if st.Rotation != 0 {
		canvas.Gtransform(fmt.Sprintf("rotate(%.1f %d %d)", st.Rotation, x, y))
	}
	if st.Glow > 0 {
		glow := append(base, "fill:none", fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%d",
			st.GlowTint.Hex(), st.GlowTint.A*sh.fade*glowAlpha, u(st.Glow/2)))
		canvas.Text(x, y, sh.text, strings.Join(glow, ";"))
	}
	canvas.Text(x, y, sh.text, strings.Join(append(base, fillStyle(sh.color, alpha)), ";"))
	if st.Rotation != 0 {
		canvas.Gend()
	}
}

func (s *SVG) haloColors() []fx.Color {
	var out []fx.Color
	seen := make(map[string]bool)
	for _, sh := range s.shapes {
		if sh.kind != shapeHalo || seen[haloID(sh.color)] {
			continue
		}
		seen[haloID(sh.color)] = true
		out = append(out, sh.color)
	}
	return out
}

func haloID(c fx.Color) string { return "halo" + strings.TrimPrefix(c.Hex(), "#") }

func fillStyle(c fx.Color, alpha float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", c.Hex(), alpha)
}

func u(v float64) int { return int(math.Round(v * svgUnit)) }

// PlotSVG draws a metric series as a polyline scaled to fill the image.
func PlotSVG(w io.Writer, values []float64, width, height int, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("plot needs at least 2 samples, got %d", len(values))
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	pad := span * 0.1
	lo, span = lo-pad, span+2*pad

	xs, ys := make([]int, len(values)), make([]int, len(values))
	for i, v := range values {
		xs[i] = int(math.Round(float64(i) / float64(len(values)-1) * float64(width)))
		ys[i] = height - int(math.Round((v-lo)/span*float64(height)))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0a0a0a")
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", stroke))
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
