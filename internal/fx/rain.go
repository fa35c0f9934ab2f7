package fx

import "math"

const (
	DefaultGlyphWidth = 14.0
	DefaultTrailAlpha = 0.05

	resetChance   = 0.025
	rerollChance  = 0.2
	minStreamFade = 0.2
)

var (
	rainGlyphs   = []rune("01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン")
	rainSymbols  = []rune("{}<>[]()+-*/=&|!?:;%$#@^~")
	rainKeywords = []string{"if", "for", "var", "let", "const", "function", "class", "return", "async", "await"}
)

type RainConfig struct {
	GlyphWidth float64 `yaml:"glyph_width"`
	TrailAlpha float64 `yaml:"trail_alpha"`
}

func DefaultRainConfig() RainConfig {
	return RainConfig{GlyphWidth: DefaultGlyphWidth, TrailAlpha: DefaultTrailAlpha}
}

// Column is one falling stream. Drop is measured in glyph heights and is
// negative while the stream waits above the viewport.
type Column struct {
	Drop  float64
	Speed float64
	Class float64
}

// SymbolRain renders columns of falling glyphs over a fading trail.
type SymbolRain struct {
	cfg     RainConfig
	rng     Rand
	width   float64
	height  float64
	columns []Column
	dark    bool
}

func NewSymbolRain(cfg RainConfig, rng Rand) *SymbolRain {
	if cfg.GlyphWidth <= 0 {
		cfg.GlyphWidth = DefaultGlyphWidth
	}
	if cfg.TrailAlpha <= 0 {
		cfg.TrailAlpha = DefaultTrailAlpha
	}
	return &SymbolRain{cfg: cfg, rng: rng, dark: true}
}

func (r *SymbolRain) Name() string { return "rain" }

func (r *SymbolRain) Config() RainConfig { return r.cfg }

// Resize rebuilds one column per glyph width.
func (r *SymbolRain) Resize(w, h int) {
	r.width, r.height = float64(w), float64(h)
	n := int(math.Floor(r.width / r.cfg.GlyphWidth))
	if n < 0 {
		n = 0
	}
	r.columns = make([]Column, n)
	for i := range r.columns {
		r.columns[i] = Column{
			Drop:  math.Floor(r.rng.Float64() * -100),
			Speed: r.rng.Float64()*0.5 + 0.5,
			Class: r.rng.Float64(),
		}
	}
}

func (r *SymbolRain) SetDark(dark bool) { r.dark = dark }

func (r *SymbolRain) Columns() []Column { return r.columns }

// Visible counts streams whose drop is inside the viewport.
func (r *SymbolRain) Visible() int {
	n := 0
	for _, c := range r.columns {
		if c.Drop > 0 && c.Drop*r.cfg.GlyphWidth <= r.height {
			n++
		}
	}
	return n
}

// Symbol draws a token for a column of the given class: 60% katakana or
// binary, 25% operators, 15% keywords.
func (r *SymbolRain) Symbol(class float64) string {
	switch {
	case class < 0.6:
		return string(pick(r.rng, rainGlyphs))
	case class < 0.85:
		return string(pick(r.rng, rainSymbols))
	default:
		return pick(r.rng, rainKeywords)
	}
}

func (r *SymbolRain) Frame(s Surface) {
	pal := PaletteFor(r.dark)
	s.Fill(pal.Trail.WithAlpha(r.cfg.TrailAlpha))

	size := r.cfg.GlyphWidth
	rows := r.height / size
	for i := range r.columns {
		c := &r.columns[i]
		sym := r.Symbol(c.Class)

		if c.Drop > 0 {
			style := TextStyle{Size: size}
			if c.Drop == math.Floor(c.Drop) {
				style.Color = pal.Highlight
				style.Bold = true
			} else {
				fade := 0.0
				if rows > 0 {
					fade = c.Drop / rows
				}
				style.Color = pal.Accent.WithAlpha(math.Max(minStreamFade, 1-fade*0.1))
			}
			s.Text(float64(i)*size, c.Drop*size, sym, style)
		}

		c.Drop += c.Speed

		if c.Drop*size > r.height && r.rng.Float64() > 1-resetChance {
			c.Drop = math.Floor(r.rng.Float64()*-20) - 10
			if r.rng.Float64() > 1-rerollChance {
				c.Speed = r.rng.Float64()*0.5 + 0.5
				c.Class = r.rng.Float64()
			}
		}
	}
}
