package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/backdrop/internal/fx"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBlank = 0x2800

	// CellWidth and CellHeight are the viewport pixels one terminal cell
	// stands for.
	CellWidth  = 8.0
	CellHeight = 16.0

	// visible is the intensity below which a dot or glyph is not drawn.
	visible = 0.15
)

type cell struct {
	r     rune
	alpha float64
	color fx.Color
	bold  bool
	// wide marks the right half of a double-width rune.
	wide bool
}

// Canvas is an fx.Surface rendered with braille dots. Each cell holds 2x4
// dots with their own intensity, plus an optional text glyph drawn on top.
type Canvas struct {
	Width, Height int

	dots  [][]float64
	tint  [][]fx.Color
	cells [][]cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas for w×h cells.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.dots = make([][]float64, h*4)
	for i := range c.dots {
		c.dots[i] = make([]float64, w*2)
	}
	c.tint = make([][]fx.Color, h)
	c.cells = make([][]cell, h)
	for i := range c.cells {
		c.tint[i] = make([]fx.Color, w)
		c.cells[i] = make([]cell, w)
	}
}

// Viewport is the pixel size animators should be resized to.
func (c *Canvas) Viewport() (int, int) {
	return int(float64(c.Width) * CellWidth), int(float64(c.Height) * CellHeight)
}

// Set lights a dot at full intensity. x and y are in dot coordinates; the
// canvas is (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) { c.plot(x, y, 1, fx.Color{R: 255, G: 255, B: 255, A: 1}) }

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.dots[y][x] = 0
}

func (c *Canvas) plot(x, y int, a float64, col fx.Color) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	if a > c.dots[y][x] {
		c.dots[y][x] = math.Min(a, 1)
	}
	c.tint[y/4][x/2] = col
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for _, row := range c.dots {
		clear(row)
	}
	for i := range c.cells {
		clear(c.cells[i])
	}
}

// Fill fades everything by the fill's alpha. Braille cells have no
// background of their own, so a translucent overlay becomes decay.
func (c *Canvas) Fill(col fx.Color) {
	keep := 1 - col.A
	for _, row := range c.dots {
		for i := range row {
			row[i] *= keep
		}
	}
	for _, row := range c.cells {
		for i := range row {
			row[i].alpha *= keep
		}
	}
}

func dotX(x float64) int { return int(math.Floor(x / (CellWidth / 2))) }
func dotY(y float64) int { return int(math.Floor(y / (CellHeight / 4))) }

func (c *Canvas) Circle(x, y, r float64, col fx.Color) {
	cx, cy := dotX(x), dotY(y)
	rx := int(r / (CellWidth / 2))
	ry := int(r / (CellHeight / 4))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			c.plot(cx+dx, cy+dy, col.A, col)
		}
	}
}

// Halo is dropped: a dot cannot show partial coverage.
func (c *Canvas) Halo(x, y, r float64, col fx.Color) {}

// Line draws a line using Bresenham's algorithm
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col fx.Color) {
	c.DrawLine(dotX(x0), dotY(y0), dotX(x1), dotY(y1), col)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col fx.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col.A, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Text writes s into whole cells. Rotation and glow are ignored; wide runes
// take two cells.
func (c *Canvas) Text(x, y float64, s string, st fx.TextStyle) {
	row := int(math.Floor(y / CellHeight))
	col := int(math.Floor(x / CellWidth))
	if st.Centered {
		col -= runewidth.StringWidth(s) / 2
	}
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.Width {
			c.put(row, col, cell{r: r, alpha: st.Color.A, color: st.Color, bold: st.Bold})
			if w == 2 {
				c.put(row, col+1, cell{wide: true, alpha: st.Color.A})
			}
		}
		col += w
	}
}

// put writes t into one cell. A double-width rune it overlaps is blanked in
// full so every row stays Width columns wide.
func (c *Canvas) put(row, col int, t cell) {
	cells := c.cells[row]
	if cells[col].wide && col > 0 {
		cells[col-1] = cell{}
	}
	if col+1 < c.Width && cells[col+1].wide {
		cells[col+1] = cell{}
	}
	cells[col] = t
}

func (c *Canvas) glyph(row, col int) (rune, fx.Color, bool) {
	if t := c.cells[row][col]; t.alpha >= visible {
		if t.wide {
			return 0, t.color, false
		}
		return t.r, t.color, t.bold
	}
	var bits rune
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			if c.dots[row*4+sy][col*2+sx] >= visible {
				bits |= rune(pixelMap[sy][sx])
			}
		}
	}
	return brailleBlank + bits, c.tint[row][col], false
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if r, _, _ := c.glyph(row, col); r != 0 {
				b.WriteRune(r)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render is String with each glyph colored by the last color painted into
// its cell.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, tint, bold := c.glyph(row, col)
			switch {
			case r == 0:
			case r == brailleBlank:
				b.WriteRune(r)
			default:
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(tint.Hex())).Bold(bold)
				b.WriteString(style.Render(string(r)))
			}
		}
		if row < c.Height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
