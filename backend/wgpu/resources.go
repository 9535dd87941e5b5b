//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/program"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// uniformBufferSize covers the largest effect uniform block (the
// generative pattern) with headroom, padded to a 256-byte binding.
const uniformBufferSize = 256

type gpuProgram struct {
	device   *Device
	effect   string
	eval     effects.Evaluator
	distorts bool

	vertexModule   hal.ShaderModule
	fragmentModule hal.ShaderModule
	bindLayout     hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	uniformBuffer  hal.Buffer

	destroyed bool
}

// writeUniforms packs the frame's uniform values in the shader's field
// order and uploads them. The buffer is created on first use.
func (p *gpuProgram) writeUniforms(frame *program.Frame) error {
	if p.uniformBuffer == nil {
		buffer, err := p.device.device.CreateBuffer(&hal.BufferDescriptor{
			Label: p.effect + "_uniforms",
			Size:  uniformBufferSize,
			Usage: types.BufferUsageUniform | types.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: create uniform buffer: %w", err)
		}
		p.uniformBuffer = buffer
	}
	p.device.queue.WriteBuffer(p.uniformBuffer, 0, packUniforms(frame))
	return nil
}

func (p *gpuProgram) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	dev := p.device.device
	if p.uniformBuffer != nil {
		dev.DestroyBuffer(p.uniformBuffer)
	}
	dev.DestroyPipelineLayout(p.pipelineLayout)
	dev.DestroyBindGroupLayout(p.bindLayout)
	dev.DestroyShaderModule(p.fragmentModule)
	dev.DestroyShaderModule(p.vertexModule)
}

type gpuBuffer struct {
	device    *Device
	buffer    hal.Buffer
	destroyed bool
}

func (b *gpuBuffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.device.device.DestroyBuffer(b.buffer)
}

type gpuTexture struct {
	device  *Device
	texture hal.Texture
	width   int
	height  int

	// pix mirrors the texture contents for the CPU fallback sampler.
	pix *fx.Pixmap

	destroyed bool
}

func (t *gpuTexture) Upload(pixels []uint8, width, height int) error {
	if t.destroyed {
		return fmt.Errorf("wgpu: upload to destroyed texture")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid upload size %dx%d", width, height)
	}

	if width != t.width || height != t.height {
		t.device.device.DestroyTexture(t.texture)
		texture, err := t.device.createTexture(width, height)
		if err != nil {
			return err
		}
		t.texture = texture
		t.width = width
		t.height = height
		t.pix = fx.NewPixmap(width, height)
	}

	data := pixels[:width*height*4]
	copy(t.pix.Data(), data)

	t.device.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

func (t *gpuTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.device.device.DestroyTexture(t.texture)
	t.pix = nil
}
