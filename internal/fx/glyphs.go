package fx

import "math"

const (
	DefaultGlyphCount = 40

	snippetChance  = 0.3
	retextChance   = 0.001
	opacityLow     = 0.3
	opacityHigh    = 0.8
	snippetGlow    = 5.0
	snippetSpeed   = 0.5
	symbolSpeed    = 1.2
	fullRevolution = 360.0
)

var (
	codeSymbols = []string{
		"{", "}", "[", "]", "(", ")", "<", ">", "=", "+", "-", "*", "/", "%",
		"&&", "||", "!", "==", "===", "!=", "!==", ">=", "<=", "=>", "?", ":",
		"if", "else", "for", "while", "function", "return", "class", "import",
		"const", "let", "var", "async", "await", "try", "catch", "true", "false",
		"null", "undefined", "this", "new", "delete", "typeof", "instanceof",
	}
	codeSnippets = []string{
		"function()", "if()", "for()", "while()", "return", "const", "let", "var",
		"class", "import", "export", "async", "await", "try{}", "catch{}",
		"<div>", "</div>", "<App/>", "useState", "useEffect", "props", "state",
		"API", "JSON", "HTTP", "GET", "POST", "SQL", "NoSQL", "AI", "ML", "React", "Node",
	}
)

type GlyphConfig struct {
	Count int `yaml:"count"`
}

func DefaultGlyphConfig() GlyphConfig { return GlyphConfig{Count: DefaultGlyphCount} }

// Glyph is one drifting token.
type Glyph struct {
	X, Y          float64
	VX, VY        float64
	Text          string
	Size          float64
	Opacity       float64
	Rotation      float64 // degrees in [0, 360)
	RotationSpeed float64
	PulseDir      float64
	PulseSpeed    float64
	Snippet       bool
}

// FloatingGlyphs drifts rotating code tokens that wrap at the edges.
type FloatingGlyphs struct {
	cfg    GlyphConfig
	rng    Rand
	width  float64
	height float64
	glyphs []Glyph
	dark   bool
}

func NewFloatingGlyphs(cfg GlyphConfig, rng Rand) *FloatingGlyphs {
	if cfg.Count <= 0 {
		cfg.Count = DefaultGlyphCount
	}
	return &FloatingGlyphs{cfg: cfg, rng: rng, dark: true}
}

func (g *FloatingGlyphs) Name() string { return "glyphs" }

func (g *FloatingGlyphs) Config() GlyphConfig { return g.cfg }

func (g *FloatingGlyphs) Resize(w, h int) {
	g.width, g.height = float64(w), float64(h)
	g.glyphs = make([]Glyph, g.cfg.Count)
	for i := range g.glyphs {
		snippet := g.rng.Float64() < snippetChance
		speed, size := symbolSpeed, g.rng.Float64()*10+10
		if snippet {
			speed, size = snippetSpeed, g.rng.Float64()*8+12
		}
		dir := 1.0
		if g.rng.Float64() >= 0.5 {
			dir = -1
		}
		g.glyphs[i] = Glyph{
			X:             g.rng.Float64() * g.width,
			Y:             g.rng.Float64() * g.height,
			VX:            (g.rng.Float64()*0.3 - 0.15) * speed,
			VY:            (g.rng.Float64()*0.3 - 0.15) * speed,
			Text:          g.token(snippet),
			Size:          size,
			Opacity:       g.rng.Float64()*0.5 + 0.3,
			Rotation:      g.rng.Float64() * fullRevolution,
			RotationSpeed: g.rng.Float64()*0.2 - 0.1,
			PulseDir:      dir,
			PulseSpeed:    g.rng.Float64()*0.01 + 0.005,
			Snippet:       snippet,
		}
	}
}

func (g *FloatingGlyphs) SetDark(dark bool) { g.dark = dark }

func (g *FloatingGlyphs) Glyphs() []Glyph { return g.glyphs }

func (g *FloatingGlyphs) token(snippet bool) string {
	if snippet {
		return pick(g.rng, codeSnippets)
	}
	return pick(g.rng, codeSymbols)
}

// RandomToken picks a symbol 70% of the time and a snippet otherwise.
func RandomToken(rng Rand) string {
	if rng.Float64() < 1-snippetChance {
		return pick(rng, codeSymbols)
	}
	return pick(rng, codeSnippets)
}

func (g *FloatingGlyphs) Frame(s Surface) {
	s.Clear()
	pal := PaletteFor(g.dark)
	for i := range g.glyphs {
		p := &g.glyphs[i]
		g.step(p)

		style := TextStyle{
			Size:     p.Size,
			Rotation: p.Rotation,
			Centered: true,
			Color:    pal.Accent.WithAlpha(p.Opacity),
		}
		if p.Snippet {
			style.Bold = true
			style.Color = pal.Secondary.WithAlpha(p.Opacity)
			style.Glow = snippetGlow
			style.GlowTint = pal.Secondary.WithAlpha(0.8)
		}
		s.Text(p.X, p.Y, p.Text, style)
	}
}

func (g *FloatingGlyphs) step(p *Glyph) {
	p.X += p.VX
	p.Y += p.VY
	p.Rotation = math.Mod(p.Rotation+p.RotationSpeed, fullRevolution)
	if p.Rotation < 0 {
		p.Rotation += fullRevolution
	}

	p.Opacity += p.PulseSpeed * p.PulseDir
	if p.Opacity > opacityHigh || p.Opacity < opacityLow {
		p.PulseDir = -p.PulseDir
		p.Opacity = clamp(p.Opacity, opacityLow, opacityHigh)
	}

	switch {
	case p.X < 0:
		p.X = g.width
	case p.X > g.width:
		p.X = 0
	}
	switch {
	case p.Y < 0:
		p.Y = g.height
	case p.Y > g.height:
		p.Y = 0
	}

	if g.rng.Float64() < retextChance {
		p.Text = g.token(p.Snippet)
	}
}
