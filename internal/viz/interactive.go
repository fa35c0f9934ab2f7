package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var effectInfo = map[string]string{
	"particles": "linked nodes drawn to the pointer",
	"rain":      "falling code columns",
	"glyphs":    "drifting code tokens",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// param is one tunable number on the config screen.
type param struct {
	name string
	step float64
	get  func(*Options) float64
	set  func(*Options, float64)
}

var effectParams = map[string][]param{
	"particles": {
		{"count", 10, func(o *Options) float64 { return float64(o.FX.Particles.Count) }, func(o *Options, v float64) { o.FX.Particles.Count = int(v) }},
		{"distance", 10, func(o *Options) float64 { return o.FX.Particles.Distance }, func(o *Options, v float64) { o.FX.Particles.Distance = v }},
		{"attract", 10, func(o *Options) float64 { return o.FX.Particles.AttractRadius }, func(o *Options, v float64) { o.FX.Particles.AttractRadius = v }},
	},
	"rain": {
		{"width", 1, func(o *Options) float64 { return o.FX.Rain.GlyphWidth }, func(o *Options, v float64) { o.FX.Rain.GlyphWidth = v }},
		{"trail", 0.01, func(o *Options) float64 { return o.FX.Rain.TrailAlpha }, func(o *Options, v float64) { o.FX.Rain.TrailAlpha = v }},
	},
	"glyphs": {
		{"count", 5, func(o *Options) float64 { return float64(o.FX.Glyphs.Count) }, func(o *Options, v float64) { o.FX.Glyphs.Count = int(v) }},
	},
}

// launcher picks an effect, tunes it, then hands over to a live Model.
type launcher struct {
	state         int
	cursor        int
	effects       []string
	paramCursor   int
	opts          Options
	width, height int
	live          Model
}

func NewLauncher(opts Options) *launcher {
	return &launcher{
		state:   stateMenu,
		effects: []string{"particles", "rain", "glyphs"},
		opts:    opts,
		width:   80,
		height:  24,
	}
}

func (m launcher) Init() tea.Cmd { return nil }

func (m launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateLive {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateLive {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m launcher) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m launcher) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateLive:
		return m.forward(msg)
	}
	return m, nil
}

func (m launcher) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.effects)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.opts.Effect = m.effects[m.cursor]
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m launcher) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	params := effectParams[m.opts.Effect]
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.adjust(params, -1)
	case "right", "l":
		m.adjust(params, 1)
	case "t":
		m.opts.Dark = !m.opts.Dark
	case "s", "enter":
		return m.start()
	}
	return m, nil
}

// adjust nudges the selected parameter, never below one step.
func (m *launcher) adjust(params []param, dir float64) {
	if len(params) == 0 {
		return
	}
	p := params[m.paramCursor]
	p.set(&m.opts, max(p.step, p.get(&m.opts)+dir*p.step))
}

func (m launcher) start() (tea.Model, tea.Cmd) {
	m.live = NewModel(m.opts)
	m.state = stateLive
	m.live.resize(m.width, m.height)
	return m, m.live.Init()
}

func (m launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return ""
}

var (
	launchTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")).Bold(true)
	launchSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	launchPick   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b5cf6")).Bold(true)
	launchName   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	launchDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ec4899"))
	launchDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	launchDimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	launchKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8")).Bold(true)
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(launchKey.Render(pairs[i]) + launchDim.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m launcher) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + launchTitle.Render("BACKDROP") + "\n    " + launchSub.Render("portfolio background effects") + "\n    " + launchSub.Render("─────────────────────────────") + "\n\n")
	for i, name := range m.effects {
		desc := effectInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", launchPick.Render("▸"), launchName.Render(fmt.Sprintf("%-10s", name)), launchDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", launchDim.Render(fmt.Sprintf("  %-10s", name)), launchDimmer.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m launcher) viewConfig() string {
	var b strings.Builder
	theme := ThemeFor(m.opts.Dark).Name
	b.WriteString("\n\n    " + launchTitle.Render(strings.ToUpper(m.opts.Effect)) + "\n    " + launchSub.Render(effectInfo[m.opts.Effect]+" · "+theme) + "\n    " + launchSub.Render("─────────────────────────────") + "\n\n")
	for i, p := range effectParams[m.opts.Effect] {
		val := fmt.Sprintf("%8.2f", p.get(&m.opts))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", launchPick.Render("▸"), launchName.Render(fmt.Sprintf("%-10s", p.name)), launchDesc.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", launchDim.Render(fmt.Sprintf("  %-10s", p.name)), launchDimmer.Render(val)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "t", "theme", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the effect picker.
func RunInteractive(opts Options) error {
	final, err := tea.NewProgram(NewLauncher(opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if l, ok := final.(launcher); ok && l.state == stateLive {
		l.live.Close()
	}
	return err
}
