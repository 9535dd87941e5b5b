//go:build !nogpu

package wgpu

import (
	"math"

	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
	"github.com/gogpu/fx/program"
)

// uniformKind is the WGSL type of a uniform field, which fixes its size
// and alignment in the packed block.
type uniformKind uint8

const (
	kindF32 uniformKind = iota
	kindVec2
	kindVec4
	kindU32
)

// uniformLayout is the canonical field order of the effect uniform
// structs. Every shader declares a subset of these names in this order,
// so packing the present subset with WGSL alignment rules reproduces
// the compiled struct layout.
var uniformLayout = []struct {
	name string
	kind uniformKind
}{
	{effects.UniformTime, kindF32},
	{effects.UniformProgress, kindF32},
	{effects.UniformIntensity, kindF32},
	{effects.UniformPrimaryColor, kindVec4},
	{effects.UniformSecondaryColor, kindVec4},
	{effects.UniformCenter, kindVec2},
	{effects.UniformResolution, kindVec2},
	{effects.UniformPhase, kindF32},
	{effects.UniformSeed, kindF32},
	{effects.UniformColorShift, kindF32},
	{effects.UniformColorSpeed, kindF32},
	{effects.UniformNoiseScale, kindF32},
	{effects.UniformDistortion, kindF32},
	{effects.UniformSaturation, kindF32},
	{effects.UniformBrightness, kindF32},
	{effects.UniformVignette, kindF32},
	{effects.UniformGrain, kindF32},
	{effects.UniformCellSize, kindF32},
	{effects.UniformCellEdge, kindF32},
	{effects.UniformOctaves, kindU32},
	{effects.UniformNoiseKind, kindU32},
}

// packUniforms serializes the uniforms the program declares into a
// std140-style byte block: f32/u32 align 4, vec2 align 8, vec4 align
// 16.
func packUniforms(frame *program.Frame) []byte {
	buf := make([]byte, 0, uniformBufferSize)

	for _, field := range uniformLayout {
		if !frame.Has(field.name) {
			continue
		}
		switch field.kind {
		case kindVec4:
			buf = alignTo(buf, 16)
			for _, v := range uniformVec4(frame, field.name) {
				buf = appendF32(buf, v)
			}
		case kindVec2:
			buf = alignTo(buf, 8)
			for _, v := range uniformVec2(frame, field.name) {
				buf = appendF32(buf, v)
			}
		case kindU32:
			buf = alignTo(buf, 4)
			buf = appendU32(buf, uniformU32(frame, field.name))
		default:
			buf = alignTo(buf, 4)
			buf = appendF32(buf, uniformF32(frame, field.name))
		}
	}

	// Pad to the full binding size so partial writes never leave stale
	// tail bytes.
	for len(buf) < uniformBufferSize {
		buf = append(buf, 0)
	}
	return buf
}

func uniformF32(frame *program.Frame, name string) float64 {
	un := &frame.Uniforms
	p := &un.Pattern
	switch name {
	case effects.UniformTime:
		return un.Time
	case effects.UniformProgress:
		return un.Progress
	case effects.UniformIntensity:
		return un.Intensity
	case effects.UniformPhase:
		return un.Phase
	case effects.UniformSeed:
		return p.Seed
	case effects.UniformColorShift:
		return p.ColorShift
	case effects.UniformColorSpeed:
		return p.ColorSpeed
	case effects.UniformNoiseScale:
		return p.NoiseScale
	case effects.UniformDistortion:
		return p.DistortionAmount
	case effects.UniformSaturation:
		return p.Saturation
	case effects.UniformBrightness:
		return p.Brightness
	case effects.UniformVignette:
		return p.Vignette
	case effects.UniformGrain:
		return p.Grain
	case effects.UniformCellSize:
		return p.CellSize
	case effects.UniformCellEdge:
		return p.CellEdge
	default:
		return 0
	}
}

func uniformVec2(frame *program.Frame, name string) [2]float64 {
	switch name {
	case effects.UniformCenter:
		return frame.Uniforms.Center
	case effects.UniformResolution:
		return frame.Uniforms.Resolution
	default:
		return [2]float64{}
	}
}

func uniformVec4(frame *program.Frame, name string) [4]float64 {
	switch name {
	case effects.UniformPrimaryColor:
		return frame.Uniforms.PrimaryColor
	case effects.UniformSecondaryColor:
		return frame.Uniforms.SecondaryColor
	default:
		return [4]float64{}
	}
}

func uniformU32(frame *program.Frame, name string) uint32 {
	un := &frame.Uniforms
	switch name {
	case effects.UniformOctaves:
		oct := un.Pattern.Octaves
		limit := un.OctaveLimit
		if limit <= 0 {
			limit = noise.MaxOctaves
		}
		if oct < 1 {
			oct = 1
		}
		if oct > limit {
			oct = limit
		}
		return uint32(oct)
	case effects.UniformNoiseKind:
		return uint32(un.Pattern.Noise)
	default:
		return 0
	}
}

func alignTo(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func appendF32(buf []byte, v float64) []byte {
	bits := math.Float32bits(float32(v))
	return append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
