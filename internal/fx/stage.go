package fx

type mount struct {
	anim    Animator
	surface Surface
}

// Stage owns a set of animators, each bound to its own surface.
type Stage struct {
	mounts []mount
	width  int
	height int
	dark   bool
}

func NewStage() *Stage { return &Stage{dark: true} }

// Mount binds a to s. When s is nil the container is absent: nothing is
// mounted and Mount reports false.
func (st *Stage) Mount(a Animator, s Surface) bool {
	if a == nil || s == nil {
		return false
	}
	a.SetDark(st.dark)
	if st.width > 0 && st.height > 0 {
		a.Resize(st.width, st.height)
	}
	st.mounts = append(st.mounts, mount{anim: a, surface: s})
	return true
}

// Animators returns the mounted animators in mount order.
func (st *Stage) Animators() []Animator {
	out := make([]Animator, len(st.mounts))
	for i, m := range st.mounts {
		out[i] = m.anim
	}
	return out
}

// Lookup returns the mounted animator with the given name.
func (st *Stage) Lookup(name string) (Animator, Surface, bool) {
	for _, m := range st.mounts {
		if m.anim.Name() == name {
			return m.anim, m.surface, true
		}
	}
	return nil, nil, false
}

func (st *Stage) Size() (int, int) { return st.width, st.height }

func (st *Stage) Dark() bool { return st.dark }

// Resize re-seeds every animator. Non-positive sizes are rejected with
// ErrBadViewport.
func (st *Stage) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrBadViewport
	}
	st.width, st.height = w, h
	for _, m := range st.mounts {
		m.anim.Resize(w, h)
	}
	return nil
}

func (st *Stage) SetDark(dark bool) {
	st.dark = dark
	for _, m := range st.mounts {
		m.anim.SetDark(dark)
	}
}

func (st *Stage) PointerMove(x, y float64) {
	for _, m := range st.mounts {
		if p, ok := m.anim.(PointerAware); ok {
			p.PointerMove(x, y)
		}
	}
}

// Frame advances every animator by one frame onto its own surface.
func (st *Stage) Frame() {
	for _, m := range st.mounts {
		m.anim.Frame(m.surface)
	}
}

// Close releases timers held by mounted animators.
func (st *Stage) Close() {
	for _, m := range st.mounts {
		if c, ok := m.anim.(Closer); ok {
			c.Close()
		}
	}
	st.mounts = nil
}
