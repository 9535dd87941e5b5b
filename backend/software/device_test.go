package software

import (
	"testing"

	"github.com/gogpu/fx/backend"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/program"
)

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Fatal("software backend not registered")
	}
	d, err := backend.New(backend.BackendSoftware)
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	if d.Name() != backend.BackendSoftware {
		t.Errorf("Name() = %q, want software", d.Name())
	}
	d.Close()
}

func TestOverlayRender(t *testing.T) {
	dev := New()
	defer dev.Close()

	p, err := program.Compile(dev, "goalFlash")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Release()

	p.SetUniforms(&effects.Uniforms{
		Progress:     0.1,
		Intensity:    1,
		PrimaryColor: [4]float64{1, 0, 0, 1},
	})
	if err := p.RenderFrame(32, 16); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	frame := dev.Frame()
	if frame == nil || frame.Width() != 32 || frame.Height() != 16 {
		t.Fatal("frame missing or wrong size")
	}
	c := frame.GetPixel(16, 8)
	if c.R == 0 || c.A == 0 {
		t.Errorf("flash pixel = %+v, want red coverage", c)
	}
	if c.G > c.R {
		t.Errorf("flash pixel = %+v, want red-dominant", c)
	}
}

func TestDistortionUsesContent(t *testing.T) {
	dev := New()
	defer dev.Close()

	p, err := program.Compile(dev, "ripple")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Release()

	// Solid green content: every distorted sample still lands on green.
	content := make([]uint8, 8*8*4)
	for i := 0; i < len(content); i += 4 {
		content[i+1] = 255
		content[i+3] = 255
	}
	if err := p.UploadContent(content, 8, 8); err != nil {
		t.Fatalf("UploadContent: %v", err)
	}

	p.SetUniforms(&effects.Uniforms{
		Time: 0.3, Progress: 0.4, Intensity: 1,
		Center:     [2]float64{0.5, 0.5},
		Resolution: [2]float64{8, 8},
	})
	if err := p.RenderFrame(8, 8); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	c := dev.Frame().GetPixel(2, 6)
	if c.G != 1 || c.A != 1 {
		t.Errorf("distorted pixel = %+v, want solid green content", c)
	}
}

func TestDistortionWithoutContentIsTransparent(t *testing.T) {
	dev := New()
	defer dev.Close()

	p, err := program.Compile(dev, "glitch")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Release()

	// The 1x1 placeholder texture is transparent until content arrives,
	// so the rendered frame must be fully transparent too.
	p.SetUniforms(&effects.Uniforms{Time: 1, Intensity: 1})
	if err := p.RenderFrame(8, 8); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := dev.Frame().GetPixel(x, y); c.A != 0 {
				t.Fatalf("pixel (%d,%d) = %+v, want transparent", x, y, c)
			}
		}
	}
}

func TestGenerativeRenderOpaque(t *testing.T) {
	dev := New()
	defer dev.Close()

	p, err := program.Compile(dev, "liquidDistortion")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Release()

	p.SetUniforms(&effects.Uniforms{
		Intensity:  1,
		Resolution: [2]float64{16, 16},
		Phase:      1.2,
		Pattern: effects.Pattern{
			NoiseScale: 2, Octaves: 3,
			Saturation: 0.8, Brightness: 0.9,
			CellSize: 1, CellEdge: 2, LoopDuration: 4,
		},
	})
	if err := p.RenderFrame(16, 16); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	c := dev.Frame().GetPixel(8, 8)
	if c.A != 1 {
		t.Errorf("generative alpha = %v, want 1 at full intensity", c.A)
	}
}

func TestClosedDeviceRejectsWork(t *testing.T) {
	dev := New()
	dev.Close()

	if _, err := program.Compile(dev, "goalFlash"); err == nil {
		t.Error("Compile on closed device succeeded, want error")
	}
}
