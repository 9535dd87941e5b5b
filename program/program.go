// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package program manages compiled GPU effect programs.
//
// A Program bundles the linked shader pair for one effect with its
// full-screen-quad vertex buffer, its content texture, and the uniform
// presence set parsed from the fragment source at compile time. Uniform
// writes for names the shader does not declare are silent no-ops, so the
// same uniform surface drives every effect.
//
// Compilation is all-or-nothing: on any failure every resource created so
// far is destroyed before the error is returned.
package program

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/fx/effects"
)

// quadVertices is the full-screen quad in clip space, drawn as a
// triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// Program is a compiled effect program bound to one device.
//
// A Program is not safe for concurrent use; like the device it came
// from, it belongs to a single render surface.
type Program struct {
	device Device
	effect string

	prog    DeviceProgram
	quad    DeviceBuffer
	content DeviceTexture

	present     map[string]struct{}
	wantContent bool

	staged   effects.Uniforms
	hasFrame bool

	released atomic.Bool
}

// Compile builds the program for the named effect on device. Unknown
// names and "none" compile the passthrough program, so a valid handle
// always comes back from a healthy device.
//
// A nil device returns ErrContextUnavailable.
func Compile(device Device, effectName string) (*Program, error) {
	if device == nil {
		return nil, ErrContextUnavailable
	}

	frag := effects.FragmentSource(effectName)

	prog, err := device.CreateProgram(effectName, effects.VertexSource(), frag)
	if err != nil {
		return nil, fmt.Errorf("program: compile %q: %w", effectName, err)
	}

	quad, err := device.CreateBuffer(quadVertices)
	if err != nil {
		prog.Destroy()
		return nil, fmt.Errorf("program: quad buffer for %q: %w", effectName, err)
	}

	// The content texture starts as a 1x1 placeholder; UploadContent
	// reallocates it at the captured size.
	content, err := device.CreateTexture(1, 1)
	if err != nil {
		quad.Destroy()
		prog.Destroy()
		return nil, fmt.Errorf("program: content texture for %q: %w", effectName, err)
	}

	return &Program{
		device:      device,
		effect:      effectName,
		prog:        prog,
		quad:        quad,
		content:     content,
		present:     parseUniformNames(frag),
		wantContent: samplesContent(frag),
	}, nil
}

// Effect returns the catalog name this program was compiled for.
func (p *Program) Effect() string { return p.effect }

// HasUniform reports whether the compiled program declares name. The
// presence set is parsed once at compile time.
func (p *Program) HasUniform(name string) bool {
	_, ok := p.present[name]
	return ok
}

// SamplesContent reports whether the program reads the content texture.
func (p *Program) SamplesContent() bool { return p.wantContent }

// SetUniforms stages the uniform values for the next RenderFrame. Values
// whose names the shader does not declare are dropped at upload; staging
// them here is a no-op by construction.
func (p *Program) SetUniforms(un *effects.Uniforms) {
	if p.released.Load() || un == nil {
		return
	}
	p.staged = *un
	p.hasFrame = true
}

// UploadContent replaces the content texture's pixels with width×height
// RGBA data. Required at least once before rendering a distortion
// effect; harmless for overlay and generative programs.
func (p *Program) UploadContent(pixels []uint8, width, height int) error {
	if p.released.Load() {
		return ErrReleased
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("program: content %dx%d needs %d bytes, have %d",
			width, height, width*height*4, len(pixels))
	}
	return p.content.Upload(pixels, width, height)
}

// RenderFrame issues one draw call of the full-screen quad into a
// width×height viewport, using the most recently staged uniforms. The
// caller owns frame pacing and must have called SetUniforms for the
// frame being produced.
func (p *Program) RenderFrame(width, height int) error {
	if p.released.Load() {
		return ErrReleased
	}
	if !p.hasFrame {
		return fmt.Errorf("program: render %q before SetUniforms", p.effect)
	}
	frame := Frame{
		Uniforms: p.staged,
		Present:  p.present,
		Width:    width,
		Height:   height,
	}
	return p.device.Draw(p.prog, p.quad, p.content, &frame)
}

// Release destroys the texture, buffer and program. Idempotent: teardown
// paths race with effect switching, so a double release is a no-op.
func (p *Program) Release() {
	if !p.released.CompareAndSwap(false, true) {
		return
	}
	p.content.Destroy()
	p.quad.Destroy()
	p.prog.Destroy()
}
