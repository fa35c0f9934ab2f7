package metrics

import "github.com/san-kum/backdrop/internal/fx"

// Metric samples an animator once per frame.
type Metric interface {
	Name() string
	Observe(a fx.Animator)
	Value() float64
	Reset()
}

// ForEffect returns the metrics that apply to the named effect. Unknown
// effects get none.
func ForEffect(name string) []Metric {
	switch name {
	case "particles":
		return []Metric{NewLinks(), NewSpeed()}
	case "rain":
		return []Metric{NewStreams()}
	case "glyphs":
		return []Metric{NewOpacity()}
	}
	return nil
}

// Names lists the metric names in order.
func Names(ms []Metric) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name()
	}
	return out
}
