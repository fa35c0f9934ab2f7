package nav

// Bounds is the measured geometry of one labeled section.
type Bounds struct {
	ID     string  `yaml:"id" json:"id"`
	Top    float64 `yaml:"top" json:"top"`
	Height float64 `yaml:"height" json:"height"`
}

// Page is the document the tracker measures.
type Page interface {
	ScrollY() float64
	Sections() []Bounds
}

// VirtualPage is a scrollable stack of sections.
type VirtualPage struct {
	sections []Bounds
	viewport float64
	y        float64
}

// Stack lays sections out top to bottom in the given order.
func Stack(ids []string, heights []float64) []Bounds {
	out := make([]Bounds, len(ids))
	top := 0.0
	for i, id := range ids {
		h := 0.0
		if i < len(heights) {
			h = heights[i]
		}
		out[i] = Bounds{ID: id, Top: top, Height: h}
		top += h
	}
	return out
}

func NewVirtualPage(sections []Bounds, viewport float64) *VirtualPage {
	return &VirtualPage{sections: sections, viewport: viewport}
}

func (p *VirtualPage) ScrollY() float64   { return p.y }
func (p *VirtualPage) Sections() []Bounds { return p.sections }

// MaxScroll is the largest offset that keeps the viewport inside the page.
func (p *VirtualPage) MaxScroll() float64 {
	bottom := 0.0
	for _, s := range p.sections {
		if b := s.Top + s.Height; b > bottom {
			bottom = b
		}
	}
	if bottom <= p.viewport {
		return 0
	}
	return bottom - p.viewport
}

// SetScrollY moves to y, clamped to the page.
func (p *VirtualPage) SetScrollY(y float64) {
	switch {
	case y < 0:
		y = 0
	case y > p.MaxScroll():
		y = p.MaxScroll()
	}
	p.y = y
}

func (p *VirtualPage) ScrollBy(dy float64) { p.SetScrollY(p.y + dy) }

func (p *VirtualPage) SetViewport(h float64) {
	p.viewport = h
	p.SetScrollY(p.y)
}
