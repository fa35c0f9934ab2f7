package fx

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
)

func TestStageMountWithoutSurface(t *testing.T) {
	g := NewWithT(t)
	st := NewStage()

	ok := st.Mount(NewSymbolRain(DefaultRainConfig(), constRand(0.5)), nil)

	g.Expect(ok).To(BeFalse())
	g.Expect(st.Animators()).To(BeEmpty())
	g.Expect(func() { st.Frame() }).NotTo(Panic())
}

func TestStageFansOut(t *testing.T) {
	g := NewWithT(t)
	clock := &fakeClock{}
	rng := rand.New(rand.NewSource(2))

	st := NewStage()
	g.Expect(st.Resize(320, 200)).To(Succeed())

	field := NewParticleFieldWith(ParticleConfig{Count: 12}, rng, clock.after)
	rain := NewSymbolRain(DefaultRainConfig(), rng)
	rec := &recorder{}
	g.Expect(st.Mount(field, Discard)).To(BeTrue())
	g.Expect(st.Mount(rain, rec)).To(BeTrue())

	g.Expect(field.Particles()).To(HaveLen(12))
	g.Expect(rain.Columns()).To(HaveLen(22))

	st.Frame()
	g.Expect(rec.fills).To(HaveLen(1))

	st.PointerMove(10, 10)
	g.Expect(field.PointerActive()).To(BeTrue())

	st.SetDark(false)
	g.Expect(st.Dark()).To(BeFalse())

	a, s, ok := st.Lookup("rain")
	g.Expect(ok).To(BeTrue())
	g.Expect(a).To(BeIdenticalTo(rain))
	g.Expect(s).To(BeIdenticalTo(rec))

	st.Close()
	g.Expect(clock.timers[len(clock.timers)-1].stopped).To(BeTrue())
	g.Expect(st.Animators()).To(BeEmpty())
}

func TestStageResizeRejectsEmptyViewport(t *testing.T) {
	st := NewStage()
	if err := st.Resize(0, 100); !errors.Is(err, ErrBadViewport) {
		t.Errorf("expected ErrBadViewport, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	if len(names) != 3 || names[0] != "glyphs" || names[1] != "particles" || names[2] != "rain" {
		t.Errorf("unexpected effect names %v", names)
	}

	for _, name := range names {
		a, err := r.Get(name, DefaultOptions(), constRand(0.5))
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if a.Name() != name {
			t.Errorf("expected animator %s, got %s", name, a.Name())
		}
		if c, ok := a.(Closer); ok {
			c.Close()
		}
	}

	if _, err := r.Get("fireworks", DefaultOptions(), constRand(0.5)); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("expected ErrUnknownEffect, got %v", err)
	}
}
