package export

import (
	"bytes"
	"image/gif"
	"math/rand"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/fx"
)

var black = fx.Color{A: 1}

func TestRasterClearAndFill(t *testing.T) {
	g := NewWithT(t)
	r := NewRaster(4, 4, black)
	g.Expect(r.Image().RGBAAt(1, 1).R).To(BeZero())

	r.Fill(fx.Color{R: 200, G: 100, B: 0, A: 0.5})
	px := r.Image().RGBAAt(2, 2)
	g.Expect(px.R).To(BeNumerically("~", 100, 2))
	g.Expect(px.G).To(BeNumerically("~", 50, 2))
	g.Expect(px.A).To(Equal(uint8(0xff)))

	r.Clear()
	g.Expect(r.Image().RGBAAt(2, 2).R).To(BeZero())
}

func TestRasterCircle(t *testing.T) {
	g := NewWithT(t)
	r := NewRaster(20, 20, black)
	r.Circle(10, 10, 3, fx.Color{R: 255, A: 1})

	g.Expect(r.Image().RGBAAt(10, 10).R).To(BeNumerically(">", 250))
	g.Expect(r.Image().RGBAAt(0, 0).R).To(BeZero())
	g.Expect(r.Image().RGBAAt(15, 10).R).To(BeZero())
}

func TestRasterHaloFades(t *testing.T) {
	g := NewWithT(t)
	r := NewRaster(40, 40, black)
	r.Halo(20, 20, 10, fx.Color{G: 255, A: 1})

	center := r.Image().RGBAAt(20, 20).G
	edge := r.Image().RGBAAt(27, 20).G
	g.Expect(center).To(BeNumerically(">", edge))
	g.Expect(r.Image().RGBAAt(35, 20).G).To(BeZero())
}

func TestRasterLine(t *testing.T) {
	g := NewWithT(t)
	r := NewRaster(20, 20, black)
	r.Line(0, 10.5, 20, 10.5, 1, fx.Color{B: 255, A: 1})

	for x := 2; x < 18; x++ {
		g.Expect(r.Image().RGBAAt(x, 10).B).To(BeNumerically(">", 200), "x=%d", x)
	}
	g.Expect(r.Image().RGBAAt(5, 5).B).To(BeZero())
}

func TestRasterText(t *testing.T) {
	tests := []struct {
		name  string
		style fx.TextStyle
	}{
		{"plain", fx.TextStyle{Size: 13}},
		{"centered rotated", fx.TextStyle{Size: 20, Centered: true, Rotation: 45}},
		{"glow", fx.TextStyle{Size: 16, Centered: true, Bold: true, Glow: 5, GlowTint: fx.Color{R: 129, G: 140, B: 248, A: 0.8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRaster(80, 80, black)
			tt.style.Color = fx.Color{R: 255, G: 255, B: 255, A: 1}
			r.Text(40, 40, "if()", tt.style)

			lit := 0
			for i := 0; i < len(r.Image().Pix); i += 4 {
				if r.Image().Pix[i] > 0 {
					lit++
				}
			}
			if lit == 0 {
				t.Error("text left no pixels")
			}
		})
	}
}

func TestRasterResizeKeepsBackground(t *testing.T) {
	g := NewWithT(t)
	bg := fx.RGB(0x11, 0x18, 0x27)
	r := NewRaster(8, 8, bg)
	r.Resize(30, 20)

	g.Expect(r.Image().Bounds().Dx()).To(Equal(30))
	g.Expect(r.Image().Bounds().Dy()).To(Equal(20))
	px := r.Image().RGBAAt(29, 19)
	g.Expect([]uint8{px.R, px.G, px.B, px.A}).To(Equal([]uint8{0x11, 0x18, 0x27, 0xff}))
}

func TestRasterRunsEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	reg := fx.NewRegistry()
	for _, name := range reg.Names() {
		a, err := reg.Get(name, fx.DefaultOptions(), rng)
		if err != nil {
			t.Fatal(err)
		}
		r := NewRaster(160, 120, black)
		a.Resize(160, 120)
		for i := 0; i < 5; i++ {
			a.Frame(r)
		}
		if c, ok := a.(fx.Closer); ok {
			c.Close()
		}
	}
}

func TestGIFRecorder(t *testing.T) {
	g := NewWithT(t)
	rec := NewGIFRecorder(50)
	g.Expect(rec.Delay()).To(Equal(2))

	var buf bytes.Buffer
	g.Expect(rec.Encode(&buf)).To(MatchError(ErrNoFrames))

	r := NewRaster(16, 16, black)
	for i := 0; i < 3; i++ {
		r.Circle(float64(4+i*4), 8, 2, fx.Color{R: 99, G: 102, B: 241, A: 1})
		rec.Add(r.Image())
	}
	g.Expect(rec.Len()).To(Equal(3))
	g.Expect(rec.Encode(&buf)).To(Succeed())

	anim, err := gif.DecodeAll(&buf)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(anim.Image).To(HaveLen(3))
	g.Expect(anim.Delay).To(ConsistOf(2, 2, 2))

	path := filepath.Join(t.TempDir(), "out.gif")
	g.Expect(rec.Save(path)).To(Succeed())
}

func TestGIFRecorderDelayClamp(t *testing.T) {
	if d := NewGIFRecorder(240).Delay(); d != 1 {
		t.Errorf("expected delay 1, got %d", d)
	}
	if d := NewGIFRecorder(0).Delay(); d != 2 {
		t.Errorf("expected default delay 2, got %d", d)
	}
}
