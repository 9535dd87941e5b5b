// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"sync/atomic"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/program"
)

// Overlay renders an effect shader additively on top of already-visible
// content. No capture step: every overlay fragment shader computes
// near-zero output for "no effect" pixels, so the backdrop stays visible
// through the whole animation.
type Overlay struct {
	device program.Device
	prog   *program.Program

	effect string
	width  int
	height int

	released atomic.Bool
}

// NewOverlay creates an overlay surface on device for a width×height
// region. The surface owns the device's programs but not the device.
func NewOverlay(device program.Device, width, height int) (*Overlay, error) {
	if device == nil {
		return nil, program.ErrContextUnavailable
	}
	return &Overlay{device: device, width: width, height: height}, nil
}

// Effect returns the currently mounted effect name, or "" before the
// first SetEffect.
func (o *Overlay) Effect() string { return o.effect }

// SetEffect switches the mounted effect, tearing down the previous
// program and compiling the new one. Switching to the current effect is
// a no-op. On compile failure the previous program is already gone; the
// surface renders nothing until the next successful SetEffect.
func (o *Overlay) SetEffect(name string) error {
	if o.released.Load() {
		return ErrReleased
	}
	if name == o.effect && o.prog != nil {
		return nil
	}
	if o.prog != nil {
		o.prog.Release()
		o.prog = nil
	}
	p, err := program.Compile(o.device, name)
	if err != nil {
		fx.Logger().Warn("overlay effect compile failed",
			"effect", name, "error", err)
		o.effect = ""
		return err
	}
	o.prog = p
	o.effect = name
	return nil
}

// Resize changes the render viewport.
func (o *Overlay) Resize(width, height int) {
	o.width = width
	o.height = height
}

// Render produces one frame for the given effect instance state at now.
// Without a mounted program the call is a no-op: the underlying content
// stays visible and no error is raised from the frame path.
func (o *Overlay) Render(a *fx.ActiveEffect, now time.Time) error {
	if o.released.Load() {
		return ErrReleased
	}
	if o.prog == nil || a == nil {
		return nil
	}
	un := a.Uniforms(now, o.width, o.height)
	o.prog.SetUniforms(&un)
	if err := o.prog.RenderFrame(o.width, o.height); err != nil {
		fx.Logger().Warn("overlay render failed",
			"effect", o.effect, "error", err)
		return err
	}
	return nil
}

// Frame returns the device's last rendered frame when the device exposes
// one (software backend), else nil.
func (o *Overlay) Frame() *fx.Pixmap { return deviceFrame(o.device) }

// Release tears down the surface's program. Idempotent.
func (o *Overlay) Release() {
	if !o.released.CompareAndSwap(false, true) {
		return
	}
	if o.prog != nil {
		o.prog.Release()
		o.prog = nil
	}
}
