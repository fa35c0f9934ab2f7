package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/nav"
)

const (
	historyCapacity = 120
	panelWidth      = 36
	navRows         = 2
	hintRows        = 1
	scrollStep      = 120.0
)

// effectKeys binds number keys to effects.
var effectKeys = map[string]string{"1": "particles", "2": "rain", "3": "glyphs"}

type TickMsg time.Time

// Options configures a live view.
type Options struct {
	Effect string
	Dark   bool
	FPS    int
	Seed   int64
	FX     fx.Options
	Nav    nav.Config
	Layout []nav.Bounds
}

// Model drives one effect on a braille canvas under a navigation bar that
// tracks a virtual page.
type Model struct {
	opts     Options
	registry *fx.Registry
	rng      *rand.Rand
	stage    *fx.Stage
	canvas   *Canvas
	effect   string
	page     *nav.VirtualPage
	tracker  *nav.Tracker
	metrics  []metrics.Metric
	history  map[string][]float64
	styles   Styles
	width    int
	height   int
	frame    int
	cursor   int
	showHelp bool
	err      error
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Effect == "" {
		opts.Effect = "particles"
	}
	if opts.Nav == (nav.Config{}) {
		opts.Nav = nav.DefaultConfig()
	}
	if len(opts.Layout) == 0 {
		opts.Layout = nav.Stack(nav.DefaultSections, nav.DefaultHeights)
	}
	order := make([]string, len(opts.Layout))
	for i, b := range opts.Layout {
		order[i] = b.ID
	}

	m := Model{
		opts:     opts,
		registry: fx.NewRegistry(),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		stage:    fx.NewStage(),
		canvas:   NewCanvas(80, 24),
		page:     nav.NewVirtualPage(opts.Layout, 24*CellHeight),
		tracker:  nav.NewTracker(opts.Nav, order, opts.FPS),
		history:  make(map[string][]float64),
		styles:   NewStyles(ThemeFor(opts.Dark)),
		width:    80 + panelWidth,
		height:   24 + navRows + hintRows,
	}
	m.stage.SetDark(opts.Dark)
	m.tracker.OnScroll(m.page)
	m.err = m.switchEffect(opts.Effect)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Err reports a failure to start the requested effect.
func (m Model) Err() error { return m.err }

func (m Model) Effect() string { return m.effect }

func (m Model) Dark() bool { return m.stage.Dark() }

func (m Model) Tracker() *nav.Tracker { return m.tracker }

func (m Model) Page() *nav.VirtualPage { return m.page }

func (m Model) Canvas() *Canvas { return m.canvas }

// Close releases the animators' timers.
func (m Model) Close() { m.stage.Close() }

// switchEffect replaces the running animator, keeping size and theme.
func (m *Model) switchEffect(name string) error {
	a, err := m.registry.Get(name, m.opts.FX, m.rng)
	if err != nil {
		return err
	}
	dark := m.stage.Dark()
	m.stage.Close()
	m.stage = fx.NewStage()
	m.stage.SetDark(dark)
	w, h := m.canvas.Viewport()
	if err := m.stage.Resize(w, h); err != nil {
		return err
	}
	m.canvas.Clear()
	m.stage.Mount(a, m.canvas)
	m.effect = name
	m.metrics = metrics.ForEffect(name)
	clear(m.history)
	return nil
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.tracker.MenuOpen() {
		switch key {
		case "up", "k":
			m.cursor = max(0, m.cursor-1)
			return m, nil
		case "down", "j":
			m.cursor = min(len(m.page.Sections())-1, m.cursor+1)
			return m, nil
		case "enter":
			m.tracker.ScrollTo(m.page, m.page.Sections()[m.cursor].ID)
			return m, nil
		case "esc", "m":
			m.tracker.ToggleMenu()
			return m, nil
		}
	}

	switch key {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "1", "2", "3":
		if name := effectKeys[key]; name != m.effect {
			m.err = m.switchEffect(name)
		}
	case "t":
		m.stage.SetDark(!m.stage.Dark())
		m.styles = NewStyles(ThemeFor(m.stage.Dark()))
	case "j", "down":
		m.scroll(scrollStep)
	case "k", "up":
		m.scroll(-scrollStep)
	case "g":
		m.tracker.ScrollTo(m.page, m.nextSection())
	case "m":
		m.tracker.ToggleMenu()
		m.cursor = m.activeIndex()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.scroll(scrollStep)
		return
	case tea.MouseButtonWheelUp:
		m.scroll(-scrollStep)
		return
	}
	if msg.Action != tea.MouseActionMotion {
		return
	}
	row := msg.Y - navRows
	if row < 0 || row >= m.canvas.Height || msg.X >= m.canvas.Width {
		return
	}
	m.stage.PointerMove((float64(msg.X)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
}

// scroll is a manual scroll: it cancels any smooth scroll in flight.
func (m *Model) scroll(dy float64) {
	m.tracker.CancelScroll()
	m.page.ScrollBy(dy)
	m.tracker.OnScroll(m.page)
}

func (m *Model) activeIndex() int {
	active := m.tracker.State().Active
	for i, b := range m.page.Sections() {
		if b.ID == active {
			return i
		}
	}
	return 0
}

func (m *Model) nextSection() string {
	sections := m.page.Sections()
	return sections[(m.activeIndex()+1)%len(sections)].ID
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(1, w-panelWidth)
	ch := max(1, h-navRows-hintRows)
	m.canvas.Resize(cw, ch)
	vw, vh := m.canvas.Viewport()
	if err := m.stage.Resize(vw, vh); err != nil {
		m.err = err
	}
	m.page.SetViewport(float64(vh))
	m.tracker.OnScroll(m.page)
}

// step runs one frame: smooth scroll, animation, then metrics.
func (m *Model) step() {
	if y, ok := m.tracker.Tick(); ok {
		m.page.SetScrollY(y)
		m.tracker.OnScroll(m.page)
	}
	m.stage.Frame()
	m.frame++

	animators := m.stage.Animators()
	if len(animators) == 0 {
		return
	}
	for _, mt := range m.metrics {
		mt.Observe(animators[0])
		h := append(m.history[mt.Name()], mt.Value())
		if len(h) > historyCapacity {
			h = h[1:]
		}
		m.history[mt.Name()] = h
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := ThemeFor(m.stage.Dark())
	var b strings.Builder
	b.WriteString(m.viewNav(theme) + "\n")

	canvasView := m.canvas.Render()
	if m.tracker.MenuOpen() {
		canvasView = lipgloss.Place(m.canvas.Width, m.canvas.Height, lipgloss.Right, lipgloss.Top, m.viewMenu())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.viewPanel()))
	b.WriteString("\n" + m.styles.KeyHint.Render("1/2/3 effect  t theme  j/k scroll  g next  m menu  ? help  q quit"))
	if m.showHelp {
		return helpText + "\n" + b.String()
	}
	return b.String()
}

func (m Model) viewNav(theme Theme) string {
	state := m.tracker.State()
	items := make([]string, 0, len(m.page.Sections()))
	for _, s := range m.page.Sections() {
		if s.ID == state.Active {
			items = append(items, m.styles.NavActive.Render(s.ID))
		} else {
			items = append(items, m.styles.NavItem.Render(s.ID))
		}
	}
	logo := GradientText("backdrop", theme.Primary, theme.Accent)
	line := lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", strings.Join(items, ""))
	if state.Scrolled {
		return m.styles.NavSolid.Render(line)
	}
	return m.styles.NavBar.Render(line) + "\n"
}

func (m Model) viewMenu() string {
	var b strings.Builder
	for i, s := range m.page.Sections() {
		marker := "  "
		if i == m.cursor {
			marker = "▸ "
		}
		b.WriteString(marker + s.ID + "\n")
	}
	return m.styles.Menu.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) viewPanel() string {
	var s strings.Builder
	state := m.tracker.State()
	row := func(label, value string) {
		s.WriteString(m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n")
	}
	row("Effect", m.effect)
	row("Theme", ThemeFor(m.stage.Dark()).Name)
	row("Frame", fmt.Sprintf("%d", m.frame))
	row("Section", state.Active)
	row("Scroll", fmt.Sprintf("%.0f / %.0f", m.page.ScrollY(), m.page.MaxScroll()))
	row("Scrolled", fmt.Sprintf("%t", state.Scrolled))
	if m.err != nil {
		row("Error", m.err.Error())
	}
	s.WriteString("\n" + m.styles.Separator(panelWidth-6) + "\n\n")

	for _, mt := range m.metrics {
		hist := m.history[mt.Name()]
		row(mt.Name(), fmt.Sprintf("%.2f", mt.Value()))
		s.WriteString(m.styles.SparklineChart(hist, panelWidth-6) + "\n")
		if len(hist) > 1 && m.canvas.Height > 20 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(panelWidth-14))
			s.WriteString(m.styles.Subtle.Render(chart) + "\n")
		}
		s.WriteString("\n")
	}
	return m.styles.Panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1/2/3    - Particles, rain, glyphs  ║
║  T        - Toggle dark/light        ║
║  J/K      - Scroll the page          ║
║  G        - Smooth scroll to next    ║
║  M        - Section menu             ║
║  Mouse    - Attract particles        ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts a full-screen live view.
func Run(opts Options) error {
	m := NewModel(opts)
	if m.err != nil {
		return m.err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	return err
}
