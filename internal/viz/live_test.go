package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/fx"
)

func key(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T, effect string) Model {
	t.Helper()
	m := NewModel(Options{Effect: effect, Dark: true, FPS: 60, Seed: 1, FX: fx.DefaultOptions()})
	t.Cleanup(func() { m.Close() })
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func ticks(n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = TickMsg(time.Time{})
	}
	return out
}

func TestModelResize(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "particles")

	g.Expect(m.Err()).NotTo(HaveOccurred())
	g.Expect(m.Canvas().Width).To(Equal(120 - panelWidth))
	g.Expect(m.Canvas().Height).To(Equal(40 - navRows - hintRows))

	f, _, ok := m.stage.Lookup("particles")
	g.Expect(ok).To(BeTrue())
	w, h := m.Canvas().Viewport()
	for _, p := range f.(*fx.ParticleField).Particles() {
		g.Expect(p.X).To(BeNumerically("<=", w))
		g.Expect(p.Y).To(BeNumerically("<=", h))
	}
}

func TestModelSwitchEffect(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "particles")

	m = send(m, key("2"))
	g.Expect(m.Effect()).To(Equal("rain"))
	g.Expect(m.stage.Animators()).To(HaveLen(1))

	m = send(m, ticks(5)...)
	g.Expect(m.history).To(HaveKey("streams"))
	g.Expect(m.history["streams"]).To(HaveLen(5))

	m = send(m, key("3"))
	g.Expect(m.Effect()).To(Equal("glyphs"))
	g.Expect(m.history).To(BeEmpty())
}

func TestModelUnknownEffect(t *testing.T) {
	m := NewModel(Options{Effect: "fireworks"})
	defer m.Close()
	if !errors.Is(m.Err(), fx.ErrUnknownEffect) {
		t.Errorf("expected ErrUnknownEffect, got %v", m.Err())
	}
}

func TestModelThemeToggle(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "rain")
	g.Expect(m.Dark()).To(BeTrue())

	m = send(m, key("t"))
	g.Expect(m.Dark()).To(BeFalse())

	m = send(m, key("1"))
	g.Expect(m.Dark()).To(BeFalse(), "theme survives an effect switch")
}

func TestModelScrollTracksSection(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "glyphs")
	g.Expect(m.Tracker().State().Active).To(Equal("home"))
	g.Expect(m.Tracker().State().Scrolled).To(BeFalse())

	m = send(m, key("j"))
	g.Expect(m.Page().ScrollY()).To(Equal(scrollStep))
	g.Expect(m.Tracker().State().Scrolled).To(BeTrue())

	m = send(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	g.Expect(m.Page().ScrollY()).To(BeZero())
	g.Expect(m.Tracker().State().Scrolled).To(BeFalse())
}

func TestModelSmoothScrollToNext(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "glyphs")

	m = send(m, key("g"))
	g.Expect(m.Tracker().Scrolling()).To(BeTrue())

	m = send(m, ticks(300)...)
	g.Expect(m.Tracker().Scrolling()).To(BeFalse())
	g.Expect(m.Page().ScrollY()).To(BeNumerically("~", 720, 1))
	g.Expect(m.Tracker().State().Active).To(Equal("about"))
}

func TestModelMenu(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t, "glyphs")

	m = send(m, key("m"))
	g.Expect(m.Tracker().MenuOpen()).To(BeTrue())
	g.Expect(m.View()).To(ContainSubstring("▸ home"))

	m = send(m, key("j"), key("j"), tea.KeyMsg{Type: tea.KeyEnter})
	g.Expect(m.Tracker().MenuOpen()).To(BeFalse())
	g.Expect(m.Tracker().Scrolling()).To(BeTrue())

	m = send(m, ticks(300)...)
	g.Expect(m.Tracker().State().Active).To(Equal("experience"))
}

func TestModelPointer(t *testing.T) {
	m := newTestModel(t, "particles")
	m = send(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	a, _, _ := m.stage.Lookup("particles")
	if !a.(*fx.ParticleField).PointerActive() {
		t.Error("pointer motion over the canvas should activate attraction")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, "particles")
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, "particles")
	m = send(m, ticks(3)...)
	view := m.View()
	for _, want := range []string{"home", "contact", "particles", "links", "Section"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLauncherFlow(t *testing.T) {
	g := NewWithT(t)
	var model tea.Model = *NewLauncher(Options{FX: fx.DefaultOptions(), Dark: true})

	step := func(msg tea.Msg) {
		model, _ = model.Update(msg)
	}
	step(tea.WindowSizeMsg{Width: 100, Height: 30})
	step(key("j"))
	step(tea.KeyMsg{Type: tea.KeyEnter})

	l := model.(launcher)
	g.Expect(l.state).To(Equal(stateConfig))
	g.Expect(l.opts.Effect).To(Equal("rain"))
	g.Expect(l.View()).To(ContainSubstring("RAIN"))

	step(key("l"))
	l = model.(launcher)
	g.Expect(l.opts.FX.Rain.GlyphWidth).To(Equal(15.0))

	step(key("s"))
	l = model.(launcher)
	defer l.live.Close()
	g.Expect(l.state).To(Equal(stateLive))
	g.Expect(l.live.Effect()).To(Equal("rain"))
	g.Expect(l.live.Canvas().Width).To(Equal(100 - panelWidth))
}
