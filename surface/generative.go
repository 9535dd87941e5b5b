// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"sync/atomic"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
	"github.com/gogpu/fx/program"
)

// Generative defaults.
const (
	// DefaultTargetFPS bounds the generative surface's render rate below
	// display refresh to limit GPU cost.
	DefaultTargetFPS = 30.0

	// PreviewTargetFPS is the editor preview render rate.
	PreviewTargetFPS = 20.0

	// PreviewScale is the fractional render resolution used in preview
	// mode; the compositor upscales the result.
	PreviewScale = 0.5

	// DefaultLoopDurationSeconds applies when a pattern carries no loop
	// duration.
	DefaultLoopDurationSeconds = 4.0
)

// GenerativeOption configures a generative surface.
type GenerativeOption func(*Generative)

// WithPreview switches the surface to editor-preview fidelity:
// fractional render resolution, capped FBM octaves and a lower target
// frame rate.
func WithPreview() GenerativeOption {
	return func(g *Generative) {
		g.preview = true
		g.scale = PreviewScale
		g.targetFPS = PreviewTargetFPS
		g.octaveLimit = noise.PreviewMaxOctaves
	}
}

// WithTargetFPS overrides the target render rate. Values <= 0 keep the
// default.
func WithTargetFPS(fps float64) GenerativeOption {
	return func(g *Generative) {
		if fps > 0 {
			g.targetFPS = fps
		}
	}
}

// WithIntensity sets the pattern intensity (default 1).
func WithIntensity(v float64) GenerativeOption {
	return func(g *Generative) { g.intensity = v }
}

// WithMask clips the pattern's visible area to the mask's alpha channel.
// The mask is rescaled to the surface size once, not per frame.
func WithMask(mask *fx.Pixmap) GenerativeOption {
	return func(g *Generative) { g.mask = mask }
}

// Generative renders a continuous self-contained procedural pattern,
// independent of underlying content. There is no capture step and no
// scheduler progress; the surface owns its own phase clock.
//
// The phase clock advances by a fixed step per Step call, scaled to the
// target frame rate — visual speed depends only on how many steps have
// run, not on when they ran, so dropped frames change smoothness but
// never the perceived animation speed.
type Generative struct {
	device program.Device
	prog   *program.Program

	width  int
	height int

	pattern     effects.Pattern
	intensity   float64
	targetFPS   float64
	preview     bool
	scale       float64
	octaveLimit int

	mask       *fx.Pixmap
	scaledMask *fx.Pixmap

	// patternTime is the accumulated phase-clock time in seconds.
	patternTime float64

	visible bool
	// staticDone marks that the single frame of a speed==0 pattern has
	// been rendered; further steps are free until the pattern changes.
	staticDone bool

	released atomic.Bool
}

// NewGenerative creates a generative surface rendering pattern into a
// width×height region. The pattern program is compiled immediately.
func NewGenerative(device program.Device, width, height int, pattern effects.Pattern, opts ...GenerativeOption) (*Generative, error) {
	if device == nil {
		return nil, program.ErrContextUnavailable
	}
	g := &Generative{
		device:    device,
		width:     width,
		height:    height,
		pattern:   pattern,
		intensity: 1,
		targetFPS: DefaultTargetFPS,
		scale:     1,
		visible:   true,
	}
	for _, opt := range opts {
		opt(g)
	}

	p, err := program.Compile(device, "liquidDistortion")
	if err != nil {
		return nil, err
	}
	g.prog = p
	return g, nil
}

// Preview reports whether the surface runs at preview fidelity.
func (g *Generative) Preview() bool { return g.preview }

// TargetFPS returns the configured render rate; callers pace their Step
// calls against it.
func (g *Generative) TargetFPS() float64 { return g.targetFPS }

// SetPattern replaces the pattern parameters. The phase clock keeps its
// position so parameter tweaks don't restart the loop.
func (g *Generative) SetPattern(p effects.Pattern) {
	g.pattern = p
	g.staticDone = false
}

// SetIntensity updates the pattern intensity for subsequent frames.
func (g *Generative) SetIntensity(v float64) {
	g.intensity = v
	g.staticDone = false
}

// SetVisible feeds the external visibility signal. A hidden surface
// stops consuming frame budget; Step becomes a no-op until it is visible
// again.
func (g *Generative) SetVisible(v bool) {
	g.visible = v
}

// Resize changes the render viewport and invalidates the scaled mask.
func (g *Generative) Resize(width, height int) {
	g.width = width
	g.height = height
	g.scaledMask = nil
	g.staticDone = false
}

// PatternTime returns the phase clock's current position in seconds.
func (g *Generative) PatternTime() float64 { return g.patternTime }

// Phase returns the loop phase in [0, 2π) at the phase clock's current
// position.
func (g *Generative) Phase() float64 {
	return LoopPhase(g.patternTime, g.pattern.Speed, g.pattern.LoopDuration)
}

// LoopPhase maps pattern time to the loop phase in [0, 2π):
//
//	phase = ((t*speed) mod loopDuration) / loopDuration * 2π
//
// so the noise-space trajectory returns to its start every loopDuration
// seconds at the given playback speed, which is what makes exported
// loops seamless. A non-positive loopDuration falls back to the default.
func LoopPhase(t, speed, loopDuration float64) float64 {
	if loopDuration <= 0 {
		loopDuration = DefaultLoopDurationSeconds
	}
	phase := math.Mod(t*speed, loopDuration)
	if phase < 0 {
		phase += loopDuration
	}
	return phase / loopDuration * 2 * math.Pi
}

// Step advances the phase clock by one fixed frame interval and renders
// the frame. Hidden surfaces and already-rendered static patterns
// (speed == 0) skip both the advance and the draw.
func (g *Generative) Step() error {
	if g.released.Load() {
		return ErrReleased
	}
	if g.prog == nil || !g.visible {
		return nil
	}
	if g.pattern.Speed == 0 {
		if g.staticDone {
			return nil
		}
	} else {
		g.patternTime += 1 / g.targetFPS
	}
	return g.renderAt(g.patternTime)
}

// RenderAt renders the pattern at an explicit phase-clock time without
// advancing the clock. Export paths use it to render exact loop frames.
func (g *Generative) RenderAt(t float64) error {
	if g.released.Load() {
		return ErrReleased
	}
	if g.prog == nil {
		return nil
	}
	return g.renderAt(t)
}

func (g *Generative) renderAt(t float64) error {
	rw, rh := g.renderSize()
	un := effects.Uniforms{
		Time:        t,
		Progress:    0,
		Intensity:   g.intensity,
		Resolution:  [2]float64{float64(rw), float64(rh)},
		Phase:       LoopPhase(t, g.pattern.Speed, g.pattern.LoopDuration),
		Pattern:     g.pattern,
		OctaveLimit: g.octaveLimit,
	}
	g.prog.SetUniforms(&un)
	if err := g.prog.RenderFrame(rw, rh); err != nil {
		fx.Logger().Warn("generative render failed", "error", err)
		return err
	}
	if g.pattern.Speed == 0 {
		g.staticDone = true
	}
	g.applyMask()
	return nil
}

// renderSize applies the preview resolution fraction, keeping at least
// one pixel each way.
func (g *Generative) renderSize() (int, int) {
	w := int(math.Round(float64(g.width) * g.scale))
	h := int(math.Round(float64(g.height) * g.scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// applyMask multiplies the rendered frame's alpha by the mask's alpha,
// clipping the pattern to the mask silhouette. No-op when the device
// does not expose its frame or no mask is set.
func (g *Generative) applyMask() {
	if g.mask == nil {
		return
	}
	frame := deviceFrame(g.device)
	if frame == nil {
		return
	}
	if g.scaledMask == nil || g.scaledMask.Width() != frame.Width() || g.scaledMask.Height() != frame.Height() {
		g.scaledMask = ScaleMask(g.mask, frame.Width(), frame.Height())
	}
	dst := frame.Data()
	src := g.scaledMask.Data()
	for i := 3; i < len(dst) && i < len(src); i += 4 {
		dst[i] = uint8(uint16(dst[i]) * uint16(src[i]) / 255)
	}
}

// Frame returns the device's last rendered frame (mask already applied)
// when the device exposes one, else nil.
func (g *Generative) Frame() *fx.Pixmap { return deviceFrame(g.device) }

// Release tears down the pattern program. Idempotent.
func (g *Generative) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	if g.prog != nil {
		g.prog.Release()
		g.prog = nil
	}
}
