package softraster

import (
	"testing"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
)

func TestRenderFillsEveryPixel(t *testing.T) {
	dst := fx.NewPixmap(17, 9) // odd sizes exercise band remainder handling
	eval := func(u, v float64, _ *effects.Uniforms, _ effects.Sampler) (float64, float64, float64, float64) {
		return 1, 0.5, 0, 1
	}
	Render(dst, eval, &effects.Uniforms{}, nil)

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			c := dst.GetPixel(x, y)
			if c.A != 1 || c.R != 1 {
				t.Fatalf("pixel (%d,%d) = %+v, want filled", x, y, c)
			}
		}
	}
}

func TestRenderCoordinates(t *testing.T) {
	// The evaluator writes u into red and v into green; corners must see
	// pixel-center coordinates, never exactly 0 or 1.
	dst := fx.NewPixmap(4, 4)
	eval := func(u, v float64, _ *effects.Uniforms, _ effects.Sampler) (float64, float64, float64, float64) {
		return u, v, 0, 1
	}
	Render(dst, eval, &effects.Uniforms{}, nil)

	tl := dst.GetPixel(0, 0)
	br := dst.GetPixel(3, 3)
	if tl.R >= br.R || tl.G >= br.G {
		t.Errorf("coordinate gradient not increasing: tl=%+v br=%+v", tl, br)
	}
	if tl.R == 0 || br.R == 1 {
		t.Error("corner samples hit texel edges instead of centers")
	}
}

func TestRenderClampsOutput(t *testing.T) {
	dst := fx.NewPixmap(2, 2)
	eval := func(u, v float64, _ *effects.Uniforms, _ effects.Sampler) (float64, float64, float64, float64) {
		return 3.0, -2.0, 0.5, 1.5
	}
	Render(dst, eval, &effects.Uniforms{}, nil)

	c := dst.GetPixel(1, 1)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("pixel = %+v, want clamped components", c)
	}
}

func TestPixmapSamplerClamps(t *testing.T) {
	pix := fx.NewPixmap(2, 2)
	pix.SetPixel(0, 0, fx.RGBA{R: 1, A: 1})
	pix.SetPixel(1, 1, fx.RGBA{B: 1, A: 1})
	s := PixmapSampler{Pix: pix}

	if r, _, _, _ := s.Sample(-0.5, -0.5); r != 1 {
		t.Errorf("out-of-range sample r = %v, want clamp to (0,0)", r)
	}
	if _, _, b, _ := s.Sample(1.5, 1.5); b != 1 {
		t.Errorf("out-of-range sample b = %v, want clamp to (1,1)", b)
	}
}
