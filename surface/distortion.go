// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/program"
)

// Distortion re-samples captured content through a per-effect coordinate
// warp. Activation compiles the program and captures the target subtree;
// the surface only starts rendering once the captured raster has been
// uploaded, so the viewer sees either the original content or the
// distorted texture, never both and never neither.
//
// Capture is the one asynchronous operation in the engine. The surface
// allows a single in-flight capture at a time, and a capture that
// resolves after Release or after a newer Activate is discarded rather
// than applied to a torn-down or replaced program.
type Distortion struct {
	device   program.Device
	capturer Capturer
	targetID string

	mu        sync.Mutex
	prog      *program.Program
	effect    string
	width     int
	height    int
	capturing bool
	ready     bool
	released  bool

	// gen identifies the activation a capture belongs to. A resolve
	// whose generation is stale is dropped.
	gen uint64
}

// NewDistortion creates a distortion surface for the target subtree
// identified by targetID, rendering into a width×height region.
func NewDistortion(device program.Device, capturer Capturer, targetID string, width, height int) (*Distortion, error) {
	if device == nil {
		return nil, program.ErrContextUnavailable
	}
	if capturer == nil {
		return nil, fmt.Errorf("surface: distortion needs a capturer")
	}
	return &Distortion{
		device:   device,
		capturer: capturer,
		targetID: targetID,
		width:    width,
		height:   height,
	}, nil
}

// Ready reports whether the captured content has been uploaded and the
// surface is producing distorted frames. While false, the original
// content stays visible.
func (d *Distortion) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Capturing reports whether a capture is in flight.
func (d *Distortion) Capturing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capturing
}

// Effect returns the active effect name, or "" when idle.
func (d *Distortion) Effect() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.effect
}

// Activate compiles the program for the named effect and starts the
// capture. It returns once the program is compiled; the ready flip
// happens when the capture resolves. While a prior capture is in flight
// the call is rejected with ErrCaptureInFlight.
//
// A capture failure is logged, the activation is abandoned, and the
// surface stays idle with the original content visible. No failure on
// this path panics or escapes the returned error.
func (d *Distortion) Activate(ctx context.Context, effectName string) error {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return ErrReleased
	}
	if d.capturing {
		d.mu.Unlock()
		return ErrCaptureInFlight
	}

	if d.prog != nil {
		d.prog.Release()
		d.prog = nil
	}
	d.ready = false
	d.effect = ""
	d.gen++
	gen := d.gen
	width, height := d.width, d.height

	p, err := program.Compile(d.device, effectName)
	if err != nil {
		d.mu.Unlock()
		fx.Logger().Warn("distortion effect compile failed",
			"effect", effectName, "error", err)
		return err
	}
	d.prog = p
	d.effect = effectName
	d.capturing = true
	d.mu.Unlock()

	go d.capture(ctx, gen, p, width, height)
	return nil
}

// capture resolves the raster for one activation generation and, if the
// surface is still on that generation, uploads it and flips ready.
func (d *Distortion) capture(ctx context.Context, gen uint64, p *program.Program, width, height int) {
	pix, err := d.capturer.Capture(ctx, d.targetID, width, height)
	if err == nil && (pix == nil || pix.Width() <= 0 || pix.Height() <= 0) {
		err = fmt.Errorf("%w: empty raster", ErrCaptureFailed)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen || d.released {
		// Released or re-activated while in flight; the raster belongs
		// to a program that no longer exists.
		if d.gen == gen {
			d.capturing = false
		}
		return
	}
	d.capturing = false

	if err != nil {
		fx.Logger().Warn("distortion capture failed",
			"target", d.targetID, "effect", d.effect, "error", err)
		return
	}

	if err := p.UploadContent(pix.Data(), pix.Width(), pix.Height()); err != nil {
		fx.Logger().Warn("distortion content upload failed",
			"target", d.targetID, "effect", d.effect, "error", err)
		return
	}
	d.ready = true
}

// Deactivate tears down the active program and returns the surface to
// idle with the original content visible. An in-flight capture is
// orphaned and will be discarded when it resolves.
func (d *Distortion) Deactivate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.gen++
	d.capturing = false
	d.ready = false
	d.effect = ""
	if d.prog != nil {
		d.prog.Release()
		d.prog = nil
	}
}

// Resize changes the render viewport. The next Activate captures at the
// new size; an already-ready surface keeps its captured texture.
func (d *Distortion) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width = width
	d.height = height
}

// Render produces one distorted frame for the effect instance state at
// now. Until the capture resolves the call is a no-op.
func (d *Distortion) Render(a *fx.ActiveEffect, now time.Time) error {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return ErrReleased
	}
	if !d.ready || d.prog == nil || a == nil {
		d.mu.Unlock()
		return nil
	}
	p := d.prog
	width, height := d.width, d.height
	d.mu.Unlock()

	un := a.Uniforms(now, width, height)
	p.SetUniforms(&un)
	if err := p.RenderFrame(width, height); err != nil {
		fx.Logger().Warn("distortion render failed",
			"effect", a.EffectName, "error", err)
		return err
	}
	return nil
}

// Frame returns the device's last rendered frame when the device exposes
// one, else nil.
func (d *Distortion) Frame() *fx.Pixmap { return deviceFrame(d.device) }

// Release tears down the surface. Safe to call while a capture is in
// flight; the resolve is discarded. Idempotent.
func (d *Distortion) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true
	d.gen++
	d.ready = false
	if d.prog != nil {
		d.prog.Release()
		d.prog = nil
	}
}
