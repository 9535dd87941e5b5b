// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
	"github.com/gogpu/fx/program"
)

// stubDevice is a minimal program.Device that records lifecycle and draw
// activity.
type stubDevice struct {
	mu        sync.Mutex
	programs  int
	draws     int
	lastFrame program.Frame
	closed    bool
}

type stubResource struct{}

func (stubResource) Destroy()                       {}
func (stubResource) Upload([]uint8, int, int) error { return nil }

func (d *stubDevice) Name() string { return "stub" }

func (d *stubDevice) CreateProgram(effectName, vertexSrc, fragmentSrc string) (program.DeviceProgram, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.programs++
	return stubResource{}, nil
}

func (d *stubDevice) CreateBuffer([]float32) (program.DeviceBuffer, error) {
	return stubResource{}, nil
}

func (d *stubDevice) CreateTexture(int, int) (program.DeviceTexture, error) {
	return stubResource{}, nil
}

func (d *stubDevice) Draw(_ program.DeviceProgram, _ program.DeviceBuffer, _ program.DeviceTexture, frame *program.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draws++
	d.lastFrame = *frame
	return nil
}

func (d *stubDevice) Close() { d.closed = true }

func (d *stubDevice) drawCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draws
}

// stubCapturer resolves captures from a fixed pixmap or error, optionally
// blocking until released.
type stubCapturer struct {
	pix   *fx.Pixmap
	err   error
	block chan struct{}

	mu    sync.Mutex
	calls int
}

func (c *stubCapturer) Capture(ctx context.Context, targetID string, width, height int) (*fx.Pixmap, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.pix != nil {
		return c.pix, nil
	}
	pix := fx.NewPixmap(width, height)
	pix.Clear(fx.RGBA{R: 0, G: 1, B: 0, A: 1})
	return pix, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func activeEffect(name string) *fx.ActiveEffect {
	return &fx.ActiveEffect{
		TargetID:     "t1",
		EffectName:   name,
		Progress:     0.1,
		Started:      time.Now(),
		Intensity:    1,
		PrimaryColor: fx.RGBA{R: 1, G: 0, B: 0, A: 1},
		Center:       [2]float64{0.5, 0.5},
	}
}

func TestOverlayRender(t *testing.T) {
	dev := &stubDevice{}
	o, err := NewOverlay(dev, 32, 16)
	if err != nil {
		t.Fatalf("NewOverlay: %v", err)
	}
	t.Cleanup(o.Release)

	if err := o.SetEffect("goalFlash"); err != nil {
		t.Fatalf("SetEffect: %v", err)
	}
	if err := o.Render(activeEffect("goalFlash"), time.Now()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dev.drawCount() != 1 {
		t.Errorf("draws = %d, want 1", dev.drawCount())
	}
	if got := dev.lastFrame.Width; got != 32 {
		t.Errorf("frame width = %d, want 32", got)
	}
	if got := dev.lastFrame.Uniforms.Progress; got != 0.1 {
		t.Errorf("progress uniform = %v, want 0.1", got)
	}
}

func TestOverlaySetEffectSameIsNoop(t *testing.T) {
	dev := &stubDevice{}
	o, _ := NewOverlay(dev, 8, 8)
	t.Cleanup(o.Release)

	if err := o.SetEffect("pulseGlow"); err != nil {
		t.Fatalf("SetEffect: %v", err)
	}
	if err := o.SetEffect("pulseGlow"); err != nil {
		t.Fatalf("SetEffect again: %v", err)
	}
	if dev.programs != 1 {
		t.Errorf("programs compiled = %d, want 1", dev.programs)
	}

	if err := o.SetEffect("shimmer"); err != nil {
		t.Fatalf("SetEffect switch: %v", err)
	}
	if dev.programs != 2 {
		t.Errorf("programs compiled after switch = %d, want 2", dev.programs)
	}
}

func TestOverlayRenderWithoutEffectIsNoop(t *testing.T) {
	dev := &stubDevice{}
	o, _ := NewOverlay(dev, 8, 8)
	t.Cleanup(o.Release)

	if err := o.Render(activeEffect("goalFlash"), time.Now()); err != nil {
		t.Fatalf("Render without effect: %v", err)
	}
	if dev.drawCount() != 0 {
		t.Errorf("draws = %d, want 0", dev.drawCount())
	}
}

func TestOverlayReleasedRejects(t *testing.T) {
	o, _ := NewOverlay(&stubDevice{}, 8, 8)
	o.Release()
	o.Release() // idempotent

	if err := o.SetEffect("goalFlash"); !errors.Is(err, ErrReleased) {
		t.Errorf("SetEffect after release = %v, want ErrReleased", err)
	}
	if err := o.Render(activeEffect("goalFlash"), time.Now()); !errors.Is(err, ErrReleased) {
		t.Errorf("Render after release = %v, want ErrReleased", err)
	}
}

func TestDistortionCaptureSuccess(t *testing.T) {
	dev := &stubDevice{}
	capt := &stubCapturer{}
	d, err := NewDistortion(dev, capt, "score-panel", 16, 16)
	if err != nil {
		t.Fatalf("NewDistortion: %v", err)
	}
	t.Cleanup(d.Release)

	if err := d.Activate(context.Background(), "ripple"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	waitFor(t, d.Ready)

	if err := d.Render(activeEffect("ripple"), time.Now()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dev.drawCount() != 1 {
		t.Errorf("draws = %d, want 1", dev.drawCount())
	}
}

func TestDistortionCaptureFailureStaysIdle(t *testing.T) {
	dev := &stubDevice{}
	capt := &stubCapturer{err: fmt.Errorf("raster unavailable")}
	d, _ := NewDistortion(dev, capt, "score-panel", 16, 16)
	t.Cleanup(d.Release)

	if err := d.Activate(context.Background(), "heatHaze"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	waitFor(t, func() bool { return !d.Capturing() })

	if d.Ready() {
		t.Error("Ready = true after failed capture, want false")
	}
	// Render is a no-op while not ready: original content stays visible.
	if err := d.Render(activeEffect("heatHaze"), time.Now()); err != nil {
		t.Fatalf("Render while not ready: %v", err)
	}
	if dev.drawCount() != 0 {
		t.Errorf("draws = %d, want 0", dev.drawCount())
	}
}

func TestDistortionSingleInFlightCapture(t *testing.T) {
	block := make(chan struct{})
	capt := &stubCapturer{block: block}
	d, _ := NewDistortion(&stubDevice{}, capt, "score-panel", 16, 16)
	t.Cleanup(d.Release)

	if err := d.Activate(context.Background(), "ripple"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := d.Activate(context.Background(), "glitch"); !errors.Is(err, ErrCaptureInFlight) {
		t.Fatalf("second Activate = %v, want ErrCaptureInFlight", err)
	}

	close(block)
	waitFor(t, d.Ready)
	if got := d.Effect(); got != "ripple" {
		t.Errorf("effect = %q, want the first activation to win", got)
	}
}

func TestDistortionReleaseDiscardsInFlightCapture(t *testing.T) {
	block := make(chan struct{})
	capt := &stubCapturer{block: block}
	d, _ := NewDistortion(&stubDevice{}, capt, "score-panel", 16, 16)

	if err := d.Activate(context.Background(), "ripple"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	d.Release()
	close(block)

	// The resolve must be dropped, not applied to the released program.
	time.Sleep(20 * time.Millisecond)
	if d.Ready() {
		t.Error("Ready = true after release, want capture discarded")
	}
}

func TestDistortionDeactivate(t *testing.T) {
	d, _ := NewDistortion(&stubDevice{}, &stubCapturer{}, "score-panel", 16, 16)
	t.Cleanup(d.Release)

	if err := d.Activate(context.Background(), "glitch"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	waitFor(t, d.Ready)

	d.Deactivate()
	if d.Ready() {
		t.Error("Ready = true after Deactivate")
	}
	if got := d.Effect(); got != "" {
		t.Errorf("effect = %q after Deactivate, want empty", got)
	}
}

func TestLoopPhaseSeamless(t *testing.T) {
	const loopDuration, speed = 4.0, 1.5
	for _, start := range []float64{0, 0.37, 2, 9.99} {
		p1 := LoopPhase(start, speed, loopDuration)
		p2 := LoopPhase(start+loopDuration/speed, speed, loopDuration)
		if diff := p1 - p2; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("phase at t=%v is %v, at t+L/S is %v", start, p1, p2)
		}
	}
}

func TestLoopPhaseDefaultDuration(t *testing.T) {
	got := LoopPhase(DefaultLoopDurationSeconds/2, 1, 0)
	want := LoopPhase(DefaultLoopDurationSeconds/2, 1, DefaultLoopDurationSeconds)
	if got != want {
		t.Errorf("phase with zero loopDuration = %v, want default-duration phase %v", got, want)
	}
}

func TestGenerativeFixedStepClock(t *testing.T) {
	g, err := NewGenerative(&stubDevice{}, 32, 32,
		effects.Pattern{Speed: 1, LoopDuration: 4, NoiseScale: 3, Octaves: 4, Saturation: 0.7, Brightness: 0.6},
		WithTargetFPS(50))
	if err != nil {
		t.Fatalf("NewGenerative: %v", err)
	}
	t.Cleanup(g.Release)

	for i := 0; i < 25; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	// 25 steps at 50fps is exactly half a second of pattern time,
	// regardless of how fast the steps actually ran.
	if got := g.PatternTime(); got < 0.499 || got > 0.501 {
		t.Errorf("pattern time = %v, want 0.5", got)
	}
}

func TestGenerativeStaticPatternRendersOnce(t *testing.T) {
	dev := &stubDevice{}
	g, err := NewGenerative(dev, 16, 16, effects.Pattern{Speed: 0, LoopDuration: 4})
	if err != nil {
		t.Fatalf("NewGenerative: %v", err)
	}
	t.Cleanup(g.Release)

	for i := 0; i < 5; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if dev.drawCount() != 1 {
		t.Errorf("draws = %d, want 1 static frame", dev.drawCount())
	}

	// A parameter change invalidates the static frame.
	g.SetPattern(effects.Pattern{Speed: 0, LoopDuration: 4, ColorShift: 90})
	if err := g.Step(); err != nil {
		t.Fatalf("Step after SetPattern: %v", err)
	}
	if dev.drawCount() != 2 {
		t.Errorf("draws = %d, want 2 after pattern change", dev.drawCount())
	}
}

func TestGenerativeHiddenPauses(t *testing.T) {
	dev := &stubDevice{}
	g, err := NewGenerative(dev, 16, 16, effects.Pattern{Speed: 1, LoopDuration: 4})
	if err != nil {
		t.Fatalf("NewGenerative: %v", err)
	}
	t.Cleanup(g.Release)

	g.SetVisible(false)
	for i := 0; i < 5; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if dev.drawCount() != 0 {
		t.Errorf("draws while hidden = %d, want 0", dev.drawCount())
	}
	if got := g.PatternTime(); got != 0 {
		t.Errorf("pattern time advanced to %v while hidden", got)
	}

	g.SetVisible(true)
	if err := g.Step(); err != nil {
		t.Fatalf("Step after show: %v", err)
	}
	if dev.drawCount() != 1 {
		t.Errorf("draws after show = %d, want 1", dev.drawCount())
	}
}

func TestGenerativePreviewFidelity(t *testing.T) {
	dev := &stubDevice{}
	g, err := NewGenerative(dev, 64, 48, effects.Pattern{Speed: 1, LoopDuration: 4}, WithPreview())
	if err != nil {
		t.Fatalf("NewGenerative: %v", err)
	}
	t.Cleanup(g.Release)

	if err := g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := dev.lastFrame.Width; got != 32 {
		t.Errorf("preview render width = %d, want 32", got)
	}
	if got := dev.lastFrame.Height; got != 24 {
		t.Errorf("preview render height = %d, want 24", got)
	}
	if got := dev.lastFrame.Uniforms.OctaveLimit; got != noise.PreviewMaxOctaves {
		t.Errorf("preview octave limit = %d, want %d", got, noise.PreviewMaxOctaves)
	}
	if g.TargetFPS() != PreviewTargetFPS {
		t.Errorf("preview target fps = %v, want %v", g.TargetFPS(), PreviewTargetFPS)
	}
}

func TestGenerativeRenderAtDoesNotAdvanceClock(t *testing.T) {
	g, err := NewGenerative(&stubDevice{}, 16, 16, effects.Pattern{Speed: 2, LoopDuration: 4})
	if err != nil {
		t.Fatalf("NewGenerative: %v", err)
	}
	t.Cleanup(g.Release)

	if err := g.RenderAt(1.25); err != nil {
		t.Fatalf("RenderAt: %v", err)
	}
	if got := g.PatternTime(); got != 0 {
		t.Errorf("pattern time = %v after RenderAt, want 0", got)
	}
}

func TestScaleMaskIdentity(t *testing.T) {
	mask := fx.NewPixmap(8, 8)
	if got := ScaleMask(mask, 8, 8); got != mask {
		t.Error("same-size scale should return the mask unchanged")
	}
	scaled := ScaleMask(mask, 16, 4)
	if scaled.Width() != 16 || scaled.Height() != 4 {
		t.Errorf("scaled size = %dx%d, want 16x4", scaled.Width(), scaled.Height())
	}
}
