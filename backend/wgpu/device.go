// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package wgpu implements the GPU device on gogpu/wgpu/hal.
//
// Effect WGSL is compiled to SPIR-V through naga and loaded as HAL
// shader modules; uniforms, the quad buffer and the content texture are
// real GPU resources. Render pass encoding still pends HAL render-pass
// extensions, so frame output falls back to CPU evaluation (the same
// algorithm the shaders implement) while the command stream is encoded
// and submitted for timing parity.
//
// Import for side effects to register it:
//
//	import _ "github.com/gogpu/fx/backend/wgpu"
package wgpu

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/backend"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/internal/softraster"
	"github.com/gogpu/fx/program"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

func init() {
	backend.Register(backend.BackendWgpu, func() (program.Device, error) {
		provider := SharedProvider()
		if provider == nil {
			return nil, program.ErrContextUnavailable
		}
		if h, ok := provider.(DeviceHandle); ok {
			return NewFromHandle(h)
		}
		return New(provider)
	})
}

// sharedProvider holds the host device provider. Accessed atomically so
// SetSharedProvider can race with a registry open on another goroutine.
var sharedProvider atomic.Pointer[any]

// SetSharedProvider installs a host device provider for the registry
// factory to use: either a DeviceHandle (gpucontext.DeviceProvider) or
// any value exposing HalDevice() any and HalQueue() any.
//
// SetSharedProvider is safe for concurrent use.
func SetSharedProvider(provider any) { sharedProvider.Store(&provider) }

// SharedProvider returns the installed host provider, or nil.
func SharedProvider() any {
	if p := sharedProvider.Load(); p != nil {
		return *p
	}
	return nil
}

// Device is the wgpu-backed device. The device and queue are received
// from the host — the engine never creates its own GPU instance.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// frame is the CPU-evaluated output, stand-in for render target
	// readback until HAL render passes land.
	frame  *fx.Pixmap
	closed bool
}

// New creates a device from a host provider. The provider must expose
// HAL types; gogpu's context provider does.
func New(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types: %w", program.ErrContextUnavailable)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device: %w", program.ErrContextUnavailable)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue: %w", program.ErrContextUnavailable)
	}
	return &Device{device: device, queue: queue}, nil
}

// Name returns "wgpu".
func (d *Device) Name() string { return backend.BackendWgpu }

// Frame returns the pixmap the last Draw produced, or nil before the
// first draw.
func (d *Device) Frame() *fx.Pixmap { return d.frame }

// CreateProgram compiles both WGSL stages to SPIR-V and creates the
// shader modules plus the bind group and pipeline layouts. On any
// failure every resource created so far is destroyed first.
func (d *Device) CreateProgram(effectName, vertexSrc, fragmentSrc string) (program.DeviceProgram, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}

	vertexModule, err := d.createModule(effectName+"_vs", vertexSrc)
	if err != nil {
		return nil, &program.CompileError{Effect: effectName, Log: err.Error()}
	}
	fragmentModule, err := d.createModule(effectName+"_fs", fragmentSrc)
	if err != nil {
		d.device.DestroyShaderModule(vertexModule)
		return nil, &program.CompileError{Effect: effectName, Log: err.Error()}
	}

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: effectName + "_bind_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageFragment,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageFragment,
				Texture: &types.TextureBindingLayout{
					SampleType:    types.TextureSampleTypeFloat,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageFragment,
				Sampler: &types.SamplerBindingLayout{
					Type: types.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		d.device.DestroyShaderModule(fragmentModule)
		d.device.DestroyShaderModule(vertexModule)
		return nil, &program.LinkError{Effect: effectName, Log: err.Error()}
	}

	pipelineLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            effectName + "_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(bindLayout)
		d.device.DestroyShaderModule(fragmentModule)
		d.device.DestroyShaderModule(vertexModule)
		return nil, &program.LinkError{Effect: effectName, Log: err.Error()}
	}

	return &gpuProgram{
		device:         d,
		effect:         effectName,
		eval:           effects.EvaluatorFor(effectName),
		distorts:       effects.IsDistortion(effectName) || effectName == effects.None,
		vertexModule:   vertexModule,
		fragmentModule: fragmentModule,
		bindLayout:     bindLayout,
		pipelineLayout: pipelineLayout,
	}, nil
}

// createModule compiles WGSL to SPIR-V via naga and loads it.
func (d *Device) createModule(label, wgsl string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("naga: %w", err)
	}
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: code},
	})
}

// CreateBuffer uploads the quad vertices.
func (d *Device) CreateBuffer(vertices []float32) (program.DeviceBuffer, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}
	data := make([]byte, len(vertices)*4)
	for i, v := range vertices {
		putFloat32(data[i*4:], v)
	}
	buffer, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_quad",
		Size:  uint64(len(data)),
		Usage: types.BufferUsageVertex | types.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create quad buffer: %w", err)
	}
	d.queue.WriteBuffer(buffer, 0, data)
	return &gpuBuffer{device: d, buffer: buffer}, nil
}

// CreateTexture allocates an RGBA8 content texture.
func (d *Device) CreateTexture(width, height int) (program.DeviceTexture, error) {
	if d.closed {
		return nil, program.ErrContextUnavailable
	}
	texture, err := d.createTexture(width, height)
	if err != nil {
		return nil, err
	}
	return &gpuTexture{
		device:  d,
		texture: texture,
		width:   width,
		height:  height,
		pix:     fx.NewPixmap(width, height),
	}, nil
}

func (d *Device) createTexture(width, height int) (hal.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid texture size %dx%d", width, height)
	}
	texture, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "fx_content",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	return texture, nil
}

// Draw uploads the frame's uniforms, encodes and submits the command
// stream, and produces the frame pixels. Pixel production runs the
// effect's CPU evaluator until HAL render-pass encoding is available.
func (d *Device) Draw(prog program.DeviceProgram, buf program.DeviceBuffer, content program.DeviceTexture, frame *program.Frame) error {
	if d.closed {
		return program.ErrContextUnavailable
	}
	gp, ok := prog.(*gpuProgram)
	if !ok || gp.destroyed {
		return fmt.Errorf("wgpu: draw with foreign or destroyed program")
	}

	if err := gp.writeUniforms(frame); err != nil {
		return err
	}
	if err := d.submitEncoded(gp.effect); err != nil {
		return err
	}

	if d.frame == nil || d.frame.Width() != frame.Width || d.frame.Height() != frame.Height {
		d.frame = fx.NewPixmap(frame.Width, frame.Height)
	}
	var sampler effects.Sampler
	if gt, ok := content.(*gpuTexture); ok && gt.pix != nil && gp.distorts {
		sampler = softraster.PixmapSampler{Pix: gt.pix}
	}
	softraster.Render(d.frame, gp.eval, &frame.Uniforms, sampler)
	return nil
}

// submitEncoded records and submits one command buffer.
func (d *Device) submitEncoded(label string) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	cmdBuffer, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuffer}); err != nil {
		cmdBuffer.Destroy()
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	cmdBuffer.Destroy()
	return nil
}

// Close releases the device reference. The host owns the underlying
// hal.Device.
func (d *Device) Close() {
	d.closed = true
	d.frame = nil
}

func putFloat32(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
