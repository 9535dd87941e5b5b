//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
	"github.com/gogpu/fx/program"
)

func present(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func f32At(t *testing.T, buf []byte, offset int) float64 {
	t.Helper()
	bits := binary.LittleEndian.Uint32(buf[offset:])
	return float64(math.Float32frombits(bits))
}

func TestPackUniformsScalarLayout(t *testing.T) {
	frame := &program.Frame{
		Uniforms: effects.Uniforms{Time: 1.5, Progress: 0.25, Intensity: 0.75},
		Present:  present(effects.UniformTime, effects.UniformProgress, effects.UniformIntensity),
	}
	buf := packUniforms(frame)

	if len(buf) != uniformBufferSize {
		t.Fatalf("len = %d, want %d", len(buf), uniformBufferSize)
	}
	if got := f32At(t, buf, 0); got != 1.5 {
		t.Errorf("time = %v, want 1.5", got)
	}
	if got := f32At(t, buf, 4); got != 0.25 {
		t.Errorf("progress = %v, want 0.25", got)
	}
	if got := f32At(t, buf, 8); got != 0.75 {
		t.Errorf("intensity = %v, want 0.75", got)
	}
}

func TestPackUniformsVec4Alignment(t *testing.T) {
	// Three scalars (12 bytes) force 4 bytes of padding before the
	// 16-aligned color.
	frame := &program.Frame{
		Uniforms: effects.Uniforms{
			Time: 1, Progress: 0.5, Intensity: 1,
			PrimaryColor: [4]float64{0.1, 0.2, 0.3, 1},
		},
		Present: present(
			effects.UniformTime, effects.UniformProgress,
			effects.UniformIntensity, effects.UniformPrimaryColor),
	}
	buf := packUniforms(frame)

	if got := f32At(t, buf, 16); math.Abs(got-0.1) > 1e-6 {
		t.Errorf("primaryColor.r at offset 16 = %v, want 0.1", got)
	}
	if got := f32At(t, buf, 28); got != 1 {
		t.Errorf("primaryColor.a at offset 28 = %v, want 1", got)
	}
}

func TestPackUniformsSkipsAbsent(t *testing.T) {
	frame := &program.Frame{
		Uniforms: effects.Uniforms{Time: 9, Intensity: 0.5},
		Present:  present(effects.UniformIntensity),
	}
	buf := packUniforms(frame)

	// With time absent, intensity lands at offset 0.
	if got := f32At(t, buf, 0); got != 0.5 {
		t.Errorf("intensity at offset 0 = %v, want 0.5", got)
	}
}

func TestPackUniformsColorSpeed(t *testing.T) {
	frame := &program.Frame{
		Uniforms: effects.Uniforms{
			Pattern: effects.Pattern{ColorShift: 120, ColorSpeed: 2},
		},
		Present: present(effects.UniformColorShift, effects.UniformColorSpeed),
	}
	buf := packUniforms(frame)

	if got := f32At(t, buf, 0); got != 120 {
		t.Errorf("colorShift = %v, want 120", got)
	}
	if got := f32At(t, buf, 4); got != 2 {
		t.Errorf("colorSpeed = %v, want 2", got)
	}
}

func TestPackUniformsOctavesClamped(t *testing.T) {
	frame := &program.Frame{
		Uniforms: effects.Uniforms{
			Pattern:     effects.Pattern{Octaves: 12, Noise: effects.NoiseVoronoi},
			OctaveLimit: 5,
		},
		Present: present(effects.UniformOctaves, effects.UniformNoiseKind),
	}
	buf := packUniforms(frame)

	if got := binary.LittleEndian.Uint32(buf[0:]); got != 5 {
		t.Errorf("octaves = %d, want clamp to 5", got)
	}
	if got := binary.LittleEndian.Uint32(buf[4:]); got != uint32(effects.NoiseVoronoi) {
		t.Errorf("noiseKind = %d, want %d", got, effects.NoiseVoronoi)
	}
}

func TestPackUniformsOctavesDefaultBudget(t *testing.T) {
	// Without an explicit limit the clamp uses the full octave budget.
	frame := &program.Frame{
		Uniforms: effects.Uniforms{Pattern: effects.Pattern{Octaves: 50}},
		Present:  present(effects.UniformOctaves),
	}
	buf := packUniforms(frame)

	if got := binary.LittleEndian.Uint32(buf[0:]); got != uint32(noise.MaxOctaves) {
		t.Errorf("octaves = %d, want %d", got, noise.MaxOctaves)
	}
}
