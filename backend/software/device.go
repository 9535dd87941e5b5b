// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements the pure-Go device. It runs each effect's
// CPU evaluator per pixel instead of compiling WGSL, which makes it the
// universal fallback and the reference for the GPU output.
//
// Import for side effects to register it:
//
//	import _ "github.com/gogpu/fx/backend/software"
package software

import (
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/backend"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/internal/softraster"
	"github.com/gogpu/fx/program"
)

func init() {
	backend.Register(backend.BackendSoftware, func() (program.Device, error) {
		return New(), nil
	})
}

// Device is the software rasterizer. Draw renders into an internal
// pixmap, reallocated on viewport changes; Frame exposes it for
// compositing.
//
// Like every device, it belongs to a single render surface and is not
// safe for concurrent use.
type Device struct {
	frame  *fx.Pixmap
	closed bool
}

// New creates a software device. It never fails: the CPU is always
// available.
func New() *Device {
	return &Device{}
}

// Name returns "software".
func (d *Device) Name() string { return backend.BackendSoftware }

// Frame returns the pixmap the last Draw rendered into, or nil before
// the first draw.
func (d *Device) Frame() *fx.Pixmap { return d.frame }

// CreateProgram binds the effect's CPU evaluator. The shader sources
// are ignored; the evaluator is the same algorithm.
func (d *Device) CreateProgram(effectName, vertexSrc, fragmentSrc string) (program.DeviceProgram, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}
	return &softProgram{
		eval:     effects.EvaluatorFor(effectName),
		distorts: effects.IsDistortion(effectName) || effectName == effects.None,
	}, nil
}

// CreateBuffer accepts the quad vertices. The pixel loop iterates the
// viewport directly, so the buffer only participates in the resource
// lifecycle.
func (d *Device) CreateBuffer(vertices []float32) (program.DeviceBuffer, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}
	return &softBuffer{}, nil
}

// CreateTexture allocates the content pixmap.
func (d *Device) CreateTexture(width, height int) (program.DeviceTexture, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid texture size %dx%d", width, height)
	}
	return &softTexture{pix: fx.NewPixmap(width, height)}, nil
}

// Draw evaluates the program for every pixel of the viewport.
func (d *Device) Draw(prog program.DeviceProgram, buf program.DeviceBuffer, content program.DeviceTexture, frame *program.Frame) error {
	if d.closed {
		return program.ErrContextUnavailable
	}
	sp, ok := prog.(*softProgram)
	if !ok || sp.destroyed {
		return fmt.Errorf("software: draw with foreign or destroyed program")
	}

	if d.frame == nil || d.frame.Width() != frame.Width || d.frame.Height() != frame.Height {
		d.frame = fx.NewPixmap(frame.Width, frame.Height)
	}

	var sampler effects.Sampler
	if st, ok := content.(*softTexture); ok && st.pix != nil && sp.distorts {
		sampler = softraster.PixmapSampler{Pix: st.pix}
	}

	softraster.Render(d.frame, sp.eval, &frame.Uniforms, sampler)
	return nil
}

// Close releases the device.
func (d *Device) Close() {
	d.closed = true
	d.frame = nil
}

type softProgram struct {
	eval      effects.Evaluator
	distorts  bool
	destroyed bool
}

func (p *softProgram) Destroy() { p.destroyed = true }

type softBuffer struct{}

func (b *softBuffer) Destroy() {}

type softTexture struct {
	pix *fx.Pixmap
}

func (t *softTexture) Upload(pixels []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software: invalid upload size %dx%d", width, height)
	}
	if t.pix == nil || t.pix.Width() != width || t.pix.Height() != height {
		t.pix = fx.NewPixmap(width, height)
	}
	copy(t.pix.Data(), pixels[:width*height*4])
	return nil
}

func (t *softTexture) Destroy() { t.pix = nil }
