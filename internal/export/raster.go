package export

import (
	"image"
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/san-kum/backdrop/internal/fx"
)

const (
	haloPeak        = 0.35
	glowAlpha       = 0.25
	defaultTextSize = 13.0
)

// Raster is an fx.Surface drawing onto an opaque RGBA image through a
// software canvas.
type Raster struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	regular *canvas.Font
	bold    *canvas.Font
	bg      fx.Color
	width   float64
	height  float64
}

func NewRaster(w, h int, bg fx.Color) *Raster {
	r := &Raster{bg: bg}
	r.Resize(w, h)
	return r
}

// Resize replaces the canvas and clears it.
func (r *Raster) Resize(w, h int) {
	w, h = max(1, w), max(1, h)
	r.width, r.height = float64(w), float64(h)
	r.backend = softwarebackend.New(w, h)
	r.cv = canvas.New(r.backend)
	r.regular, _ = r.cv.LoadFont(gomono.TTF)
	r.bold, _ = r.cv.LoadFont(gomonobold.TTF)
	r.Clear()
}

func (r *Raster) Image() *image.RGBA { return r.backend.Image }

func (r *Raster) SetBackground(bg fx.Color) { r.bg = bg }

func nrgba(c fx.Color) color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

func (r *Raster) Clear() {
	r.cv.SetFillStyle(nrgba(r.bg.WithAlpha(1)))
	r.cv.FillRect(0, 0, r.width, r.height)
}

func (r *Raster) Fill(c fx.Color) {
	r.cv.SetFillStyle(nrgba(c))
	r.cv.FillRect(0, 0, r.width, r.height)
}

func (r *Raster) Circle(x, y, rad float64, c fx.Color) {
	if rad <= 0 {
		return
	}
	r.cv.BeginPath()
	r.cv.Arc(x, y, rad, 0, 2*math.Pi, false)
	r.cv.SetFillStyle(nrgba(c))
	r.cv.Fill()
}

// Halo fills a radial gradient from the color at haloPeak strength to fully
// transparent at rad.
func (r *Raster) Halo(x, y, rad float64, c fx.Color) {
	if rad <= 0 {
		return
	}
	grad := r.cv.CreateRadialGradient(x, y, 0, x, y, rad)
	grad.AddColorStop(0, nrgba(c.WithAlpha(c.A*haloPeak)))
	grad.AddColorStop(1, nrgba(c.WithAlpha(0)))
	r.cv.BeginPath()
	r.cv.Arc(x, y, rad, 0, 2*math.Pi, false)
	r.cv.SetFillStyle(grad)
	r.cv.Fill()
}

func (r *Raster) Line(x0, y0, x1, y1, width float64, c fx.Color) {
	if width <= 0 {
		return
	}
	r.cv.BeginPath()
	r.cv.MoveTo(x0, y0)
	r.cv.LineTo(x1, y1)
	r.cv.SetLineWidth(width)
	r.cv.SetStrokeStyle(nrgba(c))
	r.cv.Stroke()
}

// Text draws s rotated clockwise about (x, y). An uncentered anchor is the
// left end of the alphabetic baseline.
func (r *Raster) Text(x, y float64, s string, st fx.TextStyle) {
	font := r.regular
	if st.Bold {
		font = r.bold
	}
	if font == nil || s == "" {
		return
	}
	size := st.Size
	if size <= 0 {
		size = defaultTextSize
	}

	r.cv.Save()
	defer r.cv.Restore()
	r.cv.Translate(x, y)
	r.cv.Rotate(st.Rotation * math.Pi / 180)
	r.cv.SetFont(font, size)
	if st.Centered {
		r.cv.SetTextAlign(canvas.Center)
		r.cv.SetTextBaseline(canvas.Middle)
	} else {
		r.cv.SetTextAlign(canvas.Left)
		r.cv.SetTextBaseline(canvas.Alphabetic)
	}
	if st.Glow > 0 {
		r.cv.SetShadowBlur(st.Glow)
		r.cv.SetShadowColor(nrgba(st.GlowTint))
	}
	r.cv.SetFillStyle(nrgba(st.Color))
	r.cv.FillText(s, 0, 0)
}
