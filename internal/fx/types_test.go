package fx

import "testing"

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGB(0x63, 0x66, 0xf1), "#6366f1"},
		{Color{}, "#000000"},
		{RGB(255, 255, 255).WithAlpha(0.2), "#ffffff"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex() = %s, want %s", got, tt.want)
		}
	}
}

func TestWithAlphaClamps(t *testing.T) {
	c := RGB(1, 2, 3)
	if got := c.WithAlpha(1.5).A; got != 1 {
		t.Errorf("alpha above 1: got %v", got)
	}
	if got := c.WithAlpha(-0.5).A; got != 0 {
		t.Errorf("alpha below 0: got %v", got)
	}
	if c.WithAlpha(0.4).R != 1 {
		t.Error("WithAlpha changed the channels")
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(true).Accent.Hex() != "#6366f1" {
		t.Error("dark accent")
	}
	if PaletteFor(false).Accent.Hex() != "#4f46e5" {
		t.Error("light accent")
	}
	if PaletteFor(true).Background == PaletteFor(false).Background {
		t.Error("themes share a background")
	}
}
