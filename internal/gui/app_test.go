package gui

import (
	"testing"

	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/nav"
)

func TestToColor(t *testing.T) {
	tests := []struct {
		in   fx.Color
		want uint8
	}{
		{fx.Color{R: 99, G: 102, B: 241, A: 1}, 255},
		{fx.Color{A: 0.5}, 128},
		{fx.Color{A: -1}, 0},
		{fx.Color{A: 3}, 255},
	}
	for _, tt := range tests {
		got := toColor(tt.in)
		if got.A != tt.want || got.R != tt.in.R || got.B != tt.in.B {
			t.Errorf("toColor(%+v) = %+v, want alpha %d", tt.in, got, tt.want)
		}
	}
}

func TestNextSection(t *testing.T) {
	layout := nav.Stack([]string{"home", "about", "contact"}, []float64{100, 100, 100})
	tests := []struct {
		active string
		want   string
	}{
		{"home", "about"},
		{"contact", "home"},
		{"missing", "home"},
	}
	for _, tt := range tests {
		if got := nextSection(layout, tt.active); got != tt.want {
			t.Errorf("nextSection(%q) = %q, want %q", tt.active, got, tt.want)
		}
	}
	if nextSection(nil, "home") != "" {
		t.Error("expected empty id for an empty page")
	}
}

func TestLayerOrder(t *testing.T) {
	reg := fx.NewRegistry()
	for _, name := range layerOrder {
		if _, err := reg.Get(name, fx.DefaultOptions(), nil); err != nil {
			t.Errorf("layer %s is not a registered effect: %v", name, err)
		}
	}
	if len(layerKeys) != len(layerOrder) {
		t.Errorf("expected a key per layer")
	}
}

func TestRunRejectsBadViewport(t *testing.T) {
	if err := Run(Options{Width: 0, Height: 600}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestTextOffsets(t *testing.T) {
	offs := textOffsets(0.2)
	if len(offs) != 4 {
		t.Fatalf("expected 4 offsets, got %d", len(offs))
	}
	for _, o := range offs {
		if o.X*o.X+o.Y*o.Y != 1 {
			t.Errorf("spread below one pixel should clamp to 1, got %+v", o)
		}
	}
}
