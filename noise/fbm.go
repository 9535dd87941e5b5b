// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package noise

// Octave budgets. The clamp is a correctness contract, not a tuning knob:
// an unclamped octave loop in a fragment shader can exceed the GPU
// driver's watchdog budget and reset the context.
const (
	// MaxOctaves is the octave cap for full-quality rendering.
	MaxOctaves = 8

	// PreviewMaxOctaves is the octave cap for low-cost editor preview.
	PreviewMaxOctaves = 5
)

// Func is a 3D noise source with output in [-1, 1].
type Func func(Vec3) float64

// ClampOctaves pins an octave count to [1, limit]. A limit outside
// [1, MaxOctaves] is itself pinned to MaxOctaves.
func ClampOctaves(octaves, limit int) int {
	if limit < 1 || limit > MaxOctaves {
		limit = MaxOctaves
	}
	if octaves < 1 {
		return 1
	}
	if octaves > limit {
		return limit
	}
	return octaves
}

// FBM sums octaves of fn with amplitude halving and frequency doubling
// per octave. The magnitude is bounded by the geometric amplitude series:
//
//	|FBM(p, n)| <= 0.5 + 0.25 + ... + 0.5^n = 1 - 0.5^n
//
// octaves is clamped to [1, MaxOctaves] before use.
func FBM(p Vec3, fn Func, octaves int) float64 {
	octaves = ClampOctaves(octaves, MaxOctaves)

	sum := 0.0
	amplitude := 0.5
	freq := 1.0
	for i := 0; i < octaves; i++ {
		sum += fn(p.Scale(freq)) * amplitude
		amplitude *= 0.5
		freq *= 2
	}
	return sum
}
