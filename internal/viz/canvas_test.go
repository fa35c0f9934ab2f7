package viz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/backdrop/internal/fx"
)

func rows(c *Canvas) []string {
	return strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	got := rows(c)
	if len(got) != 2 || got[0] != strings.Repeat(string(rune(brailleBlank)), 4) {
		t.Fatalf("unexpected blank canvas %q", got)
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if r := []rune(rows(c)[0])[0]; r != brailleBlank+0x1+0x80 {
		t.Errorf("expected dots 1 and 8, got %U", r)
	}

	c.Unset(0, 0)
	if r := []rune(rows(c)[0])[0]; r != brailleBlank+0x80 {
		t.Errorf("expected dot 8 only, got %U", r)
	}

	c.Set(-1, 100)
	c.Unset(100, -1)
}

func TestCanvasFillDecays(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Circle(2, 2, 1, fx.Color{R: 255, A: 1})
	if []rune(rows(c)[0])[0] == brailleBlank {
		t.Fatal("circle not drawn")
	}

	c.Fill(fx.Color{A: 0.5})
	if []rune(rows(c)[0])[0] == brailleBlank {
		t.Error("dot vanished after one fade")
	}

	for i := 0; i < 5; i++ {
		c.Fill(fx.Color{A: 0.5})
	}
	if []rune(rows(c)[0])[0] != brailleBlank {
		t.Error("dot survived repeated fades")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Line(0, 0, 31, 0, 1, fx.Color{A: 1})
	for i, r := range []rune(rows(c)[0]) {
		if r != brailleBlank+0x1+0x8 {
			t.Errorf("cell %d: expected top row lit, got %U", i, r)
		}
	}

	c.Clear()
	c.Line(0, 0, 31, 0, 1, fx.Color{A: 0.1})
	if rows(c)[0] != strings.Repeat(string(rune(brailleBlank)), 4) {
		t.Error("faint line should not show")
	}
}

func TestCanvasText(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		text  string
		style fx.TextStyle
		want  string
	}{
		{"plain", 8, "ab", fx.TextStyle{Color: fx.Color{A: 1}}, "⠀ab⠀⠀⠀"},
		{"centered", 24, "abc", fx.TextStyle{Color: fx.Color{A: 1}, Centered: true}, "⠀⠀abc⠀"},
		{"wide", 0, "ア", fx.TextStyle{Color: fx.Color{A: 1}}, "ア⠀⠀⠀⠀"},
		{"faint", 0, "x", fx.TextStyle{Color: fx.Color{A: 0.05}}, "⠀⠀⠀⠀⠀⠀"},
		{"clipped", 40, "abcd", fx.TextStyle{Color: fx.Color{A: 1}}, "⠀⠀⠀⠀⠀a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(6, 1)
			c.Text(tt.x, 4, tt.text, tt.style)
			if got := rows(c)[0]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasViewport(t *testing.T) {
	c := NewCanvas(80, 24)
	w, h := c.Viewport()
	if w != 640 || h != 384 {
		t.Errorf("expected 640x384, got %dx%d", w, h)
	}
	c.Resize(0, 0)
	if c.Width != 1 || c.Height != 1 {
		t.Errorf("expected 1x1 minimum, got %dx%d", c.Width, c.Height)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Text(0, 0, "hi", fx.TextStyle{Color: fx.Color{R: 255, A: 1}})
	out := c.Render()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "h") || !strings.Contains(out, "i") {
		t.Errorf("text missing from %q", out)
	}
}

func TestCanvasTextOverWideRune(t *testing.T) {
	type write struct {
		x float64
		s string
	}
	tests := []struct {
		name   string
		writes []write
	}{
		{"narrow over right half", []write{{0, "ア"}, {8, "0"}}},
		{"narrow over left half", []write{{8, "ア"}, {8, "0"}}},
		{"wide shifted right", []write{{0, "ア"}, {8, "イ"}}},
		{"wide shifted left", []write{{8, "ア"}, {0, "イ"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 1)
			for _, w := range tt.writes {
				c.Text(w.x, 0, w.s, fx.TextStyle{Color: fx.Color{A: 1}})
			}
			line := rows(c)[0]
			if got := runewidth.StringWidth(line); got != c.Width {
				t.Errorf("row %q is %d columns wide, want %d", line, got, c.Width)
			}
		})
	}
}

func TestCanvasRainKeepsRowWidth(t *testing.T) {
	c := NewCanvas(80, 24)
	w, h := c.Viewport()
	rain := fx.NewSymbolRain(fx.DefaultRainConfig(), rand.New(rand.NewSource(3)))
	rain.Resize(w, h)
	for i := 0; i < 400; i++ {
		rain.Frame(c)
	}
	for i, line := range rows(c) {
		if got := runewidth.StringWidth(line); got != c.Width {
			t.Errorf("row %d is %d columns wide, want %d", i, got, c.Width)
		}
	}
}
