package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/backdrop/internal/fx"
)

// layer is an fx.Surface drawing into its own render texture. Draw calls
// are only valid between begin and end.
type layer struct {
	name   string
	tex    rl.RenderTexture2D
	font   rl.Font
	width  int32
	height int32
}

func newLayer(name string, w, h int32, font rl.Font) *layer {
	l := &layer{name: name, font: font}
	l.resize(w, h)
	return l
}

func (l *layer) resize(w, h int32) {
	if l.tex.ID != 0 {
		rl.UnloadRenderTexture(l.tex)
	}
	l.width, l.height = w, h
	l.tex = rl.LoadRenderTexture(w, h)
	rl.BeginTextureMode(l.tex)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

func (l *layer) unload() {
	if l.tex.ID != 0 {
		rl.UnloadRenderTexture(l.tex)
		l.tex = rl.RenderTexture2D{}
	}
}

func (l *layer) begin() { rl.BeginTextureMode(l.tex) }

func (l *layer) end() { rl.EndTextureMode() }

// composite draws the texture to the screen. Render textures are stored
// upside down, hence the negative source height.
func (l *layer) composite() {
	src := rl.NewRectangle(0, 0, float32(l.width), -float32(l.height))
	rl.DrawTextureRec(l.tex.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func toColor(c fx.Color) rl.Color {
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return rl.NewColor(c.R, c.G, c.B, uint8(a*255+0.5))
}

func (l *layer) Clear() { rl.ClearBackground(rl.Blank) }

func (l *layer) Fill(c fx.Color) {
	rl.DrawRectangle(0, 0, l.width, l.height, toColor(c))
}

func (l *layer) Circle(x, y, r float64, c fx.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(c))
}

func (l *layer) Halo(x, y, r float64, c fx.Color) {
	inner := toColor(c.WithAlpha(c.A * haloPeak))
	outer := toColor(c.WithAlpha(0))
	rl.DrawCircleGradient(int32(x), int32(y), float32(r), inner, outer)
}

func (l *layer) Line(x0, y0, x1, y1, width float64, c fx.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), toColor(c))
}

func (l *layer) Text(x, y float64, s string, st fx.TextStyle) {
	size := float32(st.Size)
	if size <= 0 {
		size = fontSize
	}
	origin := rl.NewVector2(0, size)
	if st.Centered {
		m := rl.MeasureTextEx(l.font, s, size, 1)
		origin = rl.NewVector2(m.X/2, m.Y/2)
	}
	pos := rl.NewVector2(float32(x), float32(y))
	rot := float32(st.Rotation)

	if st.Glow > 0 {
		tint := toColor(st.GlowTint.WithAlpha(st.GlowTint.A * glowAlpha))
		spread := float32(st.Glow) / 4
		for _, o := range textOffsets(spread) {
			rl.DrawTextPro(l.font, s, rl.NewVector2(pos.X+o.X, pos.Y+o.Y), origin, rot, size, 1, tint)
		}
	}
	col := toColor(st.Color)
	rl.DrawTextPro(l.font, s, pos, origin, rot, size, 1, col)
	if st.Bold {
		rl.DrawTextPro(l.font, s, rl.NewVector2(pos.X+1, pos.Y), origin, rot, size, 1, col)
	}
}

// textOffsets spreads glow copies around a glyph.
func textOffsets(spread float32) []rl.Vector2 {
	if spread < 1 {
		spread = 1
	}
	return []rl.Vector2{{X: -spread}, {X: spread}, {Y: -spread}, {Y: spread}}
}
