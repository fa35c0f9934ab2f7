package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects frames and encodes them as a looping animation.
type GIFRecorder struct {
	frames  []*image.Paletted
	delay   int
	palette color.Palette
}

// NewGIFRecorder spaces frames for playback at fps. GIF delays are in
// hundredths of a second, so rates above 100 play at 100.
func NewGIFRecorder(fps int) *GIFRecorder {
	delay := 2
	if fps > 0 {
		delay = 100 / fps
	}
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{delay: delay, palette: palette.Plan9}
}

// Add dithers img onto the palette and appends it.
func (g *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), g.palette)
	draw.FloydSteinberg.Draw(frame, frame.Rect, img, b.Min)
	g.frames = append(g.frames, frame)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Delay() int { return g.delay }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
