package nav

const (
	DefaultThreshold        = 50.0
	DefaultActivationOffset = 100.0
	DefaultScrollMargin     = 80.0
)

// DefaultSections is the document order of the portfolio sections.
var DefaultSections = []string{"home", "about", "experience", "projects", "skills", "contact"}

// DefaultHeights are virtual page heights for DefaultSections.
var DefaultHeights = []float64{800, 600, 900, 1200, 700, 600}

type Config struct {
	// Threshold is the scroll offset at which the page counts as scrolled.
	Threshold float64 `yaml:"threshold"`
	// Offset shifts every section top up when deciding what is active.
	Offset float64 `yaml:"offset"`
	// Margin is left above a section when scrolling to it.
	Margin float64 `yaml:"margin"`
}

func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Offset:    DefaultActivationOffset,
		Margin:    DefaultScrollMargin,
	}
}

// State is what the navigation bar renders from.
type State struct {
	Active   string `json:"active"`
	Scrolled bool   `json:"scrolled"`
}

// Resolve derives the state for scrollY. Sections are evaluated in order and
// the last one containing the adjusted offset wins; fallback is used when
// none does.
func Resolve(scrollY float64, sections []Bounds, cfg Config, fallback string) State {
	st := State{Active: fallback, Scrolled: scrollY >= cfg.Threshold}
	for _, s := range sections {
		top := s.Top - cfg.Offset
		if scrollY >= top && scrollY < top+s.Height {
			st.Active = s.ID
		}
	}
	return st
}

// Tracker holds the navigation state for one page.
type Tracker struct {
	cfg      Config
	order    []string
	state    State
	menuOpen bool
	scroller *Scroller
}

// NewTracker tracks the sections named in order. An empty order evaluates
// sections in the order the page reports them.
func NewTracker(cfg Config, order []string, fps int) *Tracker {
	t := &Tracker{cfg: cfg, order: order, scroller: NewScroller(fps)}
	if len(order) > 0 {
		t.state.Active = order[0]
	}
	return t
}

func (t *Tracker) Config() Config { return t.cfg }

func (t *Tracker) State() State { return t.state }

// Update recomputes the state from the current scroll offset and layout.
func (t *Tracker) Update(scrollY float64, layout []Bounds) State {
	sections := t.ordered(layout)
	fallback := ""
	switch {
	case len(t.order) > 0:
		fallback = t.order[0]
	case len(sections) > 0:
		fallback = sections[0].ID
	}
	t.state = Resolve(scrollY, sections, t.cfg, fallback)
	return t.state
}

// OnScroll is Update against a Page.
func (t *Tracker) OnScroll(p Page) State { return t.Update(p.ScrollY(), p.Sections()) }

func (t *Tracker) ordered(layout []Bounds) []Bounds {
	if len(t.order) == 0 {
		return layout
	}
	byID := make(map[string]Bounds, len(layout))
	for _, b := range layout {
		byID[b.ID] = b
	}
	out := make([]Bounds, 0, len(t.order))
	for _, id := range t.order {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// ScrollTo starts a smooth scroll that leaves the section's top Margin below
// the viewport top, and closes the mobile menu. It reports false if the page
// has no such section; the menu is closed either way.
func (t *Tracker) ScrollTo(p Page, id string) bool {
	t.menuOpen = false
	for _, b := range p.Sections() {
		if b.ID != id {
			continue
		}
		target := b.Top - t.cfg.Margin
		if target < 0 {
			target = 0
		}
		t.scroller.Start(p.ScrollY(), target)
		return true
	}
	return false
}

// Scrolling reports whether a smooth scroll is in progress.
func (t *Tracker) Scrolling() bool { return t.scroller.Active() }

// Tick advances a smooth scroll by one frame. It returns the offset to apply
// and false once no scroll is in progress.
func (t *Tracker) Tick() (float64, bool) {
	if !t.scroller.Active() {
		return 0, false
	}
	y, _ := t.scroller.Step()
	return y, true
}

// CancelScroll stops a smooth scroll, as a manual scroll would.
func (t *Tracker) CancelScroll() { t.scroller.Cancel() }

func (t *Tracker) MenuOpen() bool { return t.menuOpen }

func (t *Tracker) ToggleMenu() { t.menuOpen = !t.menuOpen }
