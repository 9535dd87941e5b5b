// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package program

import "github.com/gogpu/fx/effects"

// Device abstracts one GPU context (or its software stand-in). A device
// and its resources are owned exclusively by one render surface — never
// shared across surfaces.
//
// Implementations live in the backend packages and are obtained through
// the backend registry.
type Device interface {
	// Name returns the backend identifier (e.g. "software", "wgpu").
	Name() string

	// CreateProgram compiles and links the vertex/fragment source pair.
	// effectName is the catalog key, so backends that do not consume
	// shader source (the software rasterizer) can bind the effect's CPU
	// evaluator instead. Failures carry a *CompileError or *LinkError.
	CreateProgram(effectName, vertexSrc, fragmentSrc string) (DeviceProgram, error)

	// CreateBuffer uploads a vertex buffer.
	CreateBuffer(vertices []float32) (DeviceBuffer, error)

	// CreateTexture allocates a width×height RGBA texture.
	CreateTexture(width, height int) (DeviceTexture, error)

	// Draw issues one draw call of the quad in buf through prog, with
	// content bound as the sampled texture, into a width×height viewport.
	Draw(prog DeviceProgram, buf DeviceBuffer, content DeviceTexture, frame *Frame) error

	// Close releases the device. Resources created from it must already
	// be destroyed.
	Close()
}

// DeviceProgram is a compiled, linked program resource.
type DeviceProgram interface {
	Destroy()
}

// DeviceBuffer is an uploaded vertex buffer resource.
type DeviceBuffer interface {
	Destroy()
}

// DeviceTexture is an RGBA texture resource.
type DeviceTexture interface {
	// Upload replaces the texture's pixel data with width×height RGBA
	// bytes, reallocating if the size changed.
	Upload(pixels []uint8, width, height int) error

	Destroy()
}

// Frame carries everything a backend needs for one draw call: the staged
// uniform values, the presence set of uniform names the program actually
// declares (backends upload only those), and the viewport size.
type Frame struct {
	Uniforms effects.Uniforms
	Present  map[string]struct{}
	Width    int
	Height   int
}

// Has reports whether the program declares the named uniform.
func (f *Frame) Has(name string) bool {
	_, ok := f.Present[name]
	return ok
}
