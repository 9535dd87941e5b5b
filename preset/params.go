// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preset stores named generative-pattern parameter bundles.
//
// The persisted form is JSON with every field optional; Resolve applies
// the documented defaults and clamps, producing the fully-populated
// effects.Pattern the generative surface consumes. Bundles persist in a
// sqlite database and can additionally be hot-reloaded from a directory
// of JSON files for the editor preview path.
package preset

import (
	"math"

	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
)

// Parameter defaults applied by Resolve for absent fields.
const (
	DefaultColorSpeed   = 0.0 // static hue
	DefaultCellSize     = 1.0
	DefaultCellEdge     = 2.0
	DefaultLoopDuration = 4.0 // seconds

	DefaultSpeed      = 1.0
	DefaultNoiseScale = 3.0
	DefaultOctaves    = 4
	DefaultSaturation = 0.7
	DefaultBrightness = 0.6
)

// Params is the persisted generative-pattern parameter set. Any subset
// of fields may be present; nil means "use the default". Numeric ranges
// are enforced by the editor UI, not here — Resolve tolerates any finite
// float and replaces non-finite values with the default.
type Params struct {
	Seed             *float64 `json:"seed,omitempty"`
	ColorShift       *float64 `json:"colorShift,omitempty"`
	ColorSpeed       *float64 `json:"colorSpeed,omitempty"`
	DistortionAmount *float64 `json:"distortionAmount,omitempty"`
	NoiseScale       *float64 `json:"noiseScale,omitempty"`
	Speed            *float64 `json:"speed,omitempty"`
	Octaves          *int     `json:"octaves,omitempty"`
	Saturation       *float64 `json:"saturation,omitempty"`
	Brightness       *float64 `json:"brightness,omitempty"`
	Vignette         *float64 `json:"vignette,omitempty"`
	Grain            *float64 `json:"grain,omitempty"`
	NoiseType        *string  `json:"noiseType,omitempty"`
	CellSize         *float64 `json:"cellSize,omitempty"`
	CellEdge         *float64 `json:"cellEdge,omitempty"`
	LoopDuration     *float64 `json:"loopDurationSeconds,omitempty"`
}

// Resolve fills absent fields with their defaults and returns the
// numeric pattern. Octaves are clamped to the full-quality budget; the
// preview budget is applied later by the render context, not here.
// LoopDuration must end up > 0, so non-positive values also fall back.
func (p *Params) Resolve() effects.Pattern {
	out := effects.Pattern{
		Seed:             f64(p.Seed, 0),
		ColorShift:       f64(p.ColorShift, 0),
		ColorSpeed:       f64(p.ColorSpeed, DefaultColorSpeed),
		DistortionAmount: f64(p.DistortionAmount, 0),
		NoiseScale:       f64(p.NoiseScale, DefaultNoiseScale),
		Speed:            f64(p.Speed, DefaultSpeed),
		Saturation:       f64(p.Saturation, DefaultSaturation),
		Brightness:       f64(p.Brightness, DefaultBrightness),
		Vignette:         f64(p.Vignette, 0),
		Grain:            f64(p.Grain, 0),
		CellSize:         f64(p.CellSize, DefaultCellSize),
		CellEdge:         f64(p.CellEdge, DefaultCellEdge),
		LoopDuration:     f64(p.LoopDuration, DefaultLoopDuration),
	}
	if out.LoopDuration <= 0 {
		out.LoopDuration = DefaultLoopDuration
	}

	octaves := DefaultOctaves
	if p.Octaves != nil {
		octaves = *p.Octaves
	}
	out.Octaves = noise.ClampOctaves(octaves, noise.MaxOctaves)

	if p.NoiseType != nil {
		out.Noise = effects.ParseNoiseKind(*p.NoiseType)
	}
	return out
}

// f64 dereferences an optional float, substituting def for nil and
// non-finite values.
func f64(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return def
	}
	return *p
}
