package fx

// Palette holds the colors one theme paints with.
type Palette struct {
	Accent    Color // particles, rain body, symbol glyphs
	Link      Color // particle links, alpha is replaced per pair
	Highlight Color // rain stream heads
	Secondary Color // snippet glyphs and their glow
	Trail     Color // rain fade overlay

	// Background is what hosts paint behind the effect layers.
	Background Color
}

var (
	DarkPalette = Palette{
		Accent:    RGB(0x63, 0x66, 0xf1),
		Link:      RGB(99, 102, 241).WithAlpha(0.25),
		Highlight: RGB(0xff, 0xff, 0xff),
		Secondary: RGB(129, 140, 248),
		Trail:     Color{A: 0.05},

		Background: RGB(0x11, 0x18, 0x27),
	}

	LightPalette = Palette{
		Accent:    RGB(0x4f, 0x46, 0xe5),
		Link:      RGB(79, 70, 229).WithAlpha(0.25),
		Highlight: RGB(0xff, 0xff, 0xff),
		Secondary: RGB(129, 140, 248),
		Trail:     Color{A: 0.05},

		Background: RGB(0xf9, 0xfa, 0xfb),
	}
)

// PaletteFor returns the palette for the given theme flag.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
