// Command fxdemo renders the fx generative pattern.
//
// By default it writes one seamless loop of the liquid pattern as PNG
// frames; with -live it opens a window and plays the pattern instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/fx/backend/software"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/preset"
	"github.com/gogpu/fx/surface"
)

func main() {
	var (
		width   = flag.Int("width", 640, "render width")
		height  = flag.Int("height", 360, "render height")
		frames  = flag.Int("frames", 60, "frames per loop to export")
		outDir  = flag.String("out", "fxdemo-frames", "output directory")
		live    = flag.Bool("live", false, "open a window instead of exporting frames")
		noise   = flag.String("noise", "simplex", "noise type: simplex, perlin, value, voronoi, worley, white")
		speed   = flag.Float64("speed", 1.0, "pattern playback speed")
		octaves = flag.Int("octaves", 4, "fbm octave count")
	)
	flag.Parse()

	params := preset.Params{
		NoiseType: noise,
		Speed:     speed,
		Octaves:   octaves,
	}
	pattern := params.Resolve()

	if *live {
		if err := runLive(*width, *height, pattern); err != nil {
			log.Fatalf("fxdemo: %v", err)
		}
		return
	}
	if err := exportLoop(*width, *height, *frames, *outDir, pattern); err != nil {
		log.Fatalf("fxdemo: %v", err)
	}
}

// exportLoop renders one full loop as evenly spaced frames. Frame i is
// rendered at pattern time i/frames * loopDuration/speed, so the last
// frame wraps seamlessly back to the first.
func exportLoop(width, height, frames int, outDir string, pattern effects.Pattern) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	dev := software.New()
	defer dev.Close()

	g, err := surface.NewGenerative(dev, width, height, pattern)
	if err != nil {
		return err
	}
	defer g.Release()

	if pattern.Speed == 0 {
		// Static pattern: one frame is the whole loop.
		frames = 1
	}
	loopSeconds := 0.0
	if pattern.Speed != 0 {
		loopSeconds = pattern.LoopDuration / pattern.Speed
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames) * loopSeconds
		if err := g.RenderAt(t); err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = g.Frame().EncodePNG(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	log.Printf("wrote %d frames to %s (%dx%d, %.1fs loop)",
		frames, outDir, width, height, loopSeconds)
	return nil
}

// game plays the pattern in an ebiten window, stepping the surface at
// its target rate independent of the display refresh.
type game struct {
	gen *surface.Generative
	dev *software.Device

	frame   *ebiten.Image
	pending float64
}

func (g *game) Update() error {
	g.pending += 1.0 / float64(ebiten.TPS())
	step := 1.0 / g.gen.TargetFPS()
	for g.pending >= step {
		g.pending -= step
		if err := g.gen.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pix := g.dev.Frame()
	if pix == nil {
		return
	}
	if g.frame == nil || g.frame.Bounds().Dx() != pix.Width() || g.frame.Bounds().Dy() != pix.Height() {
		g.frame = ebiten.NewImage(pix.Width(), pix.Height())
	}
	g.frame.WritePixels(pix.Data())

	var op ebiten.DrawImageOptions
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(pix.Width()), float64(sh)/float64(pix.Height()))
	screen.DrawImage(g.frame, &op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func runLive(width, height int, pattern effects.Pattern) error {
	dev := software.New()
	defer dev.Close()

	gen, err := surface.NewGenerative(dev, width, height, pattern, surface.WithPreview())
	if err != nil {
		return err
	}
	defer gen.Release()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("fx liquid pattern")
	return ebiten.RunGame(&game{gen: gen, dev: dev})
}
