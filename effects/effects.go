// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package effects is the closed catalog of scoreboard effects.
//
// Each entry pairs a static Definition (label, category, render kind,
// defaults) with a WGSL fragment source and a CPU evaluator. The two are
// ports of the same algorithm: the GPU context renders the WGSL, the
// software backend runs the evaluator, and both draw on the same noise
// formulation (see the noise package and the WGSL preamble in shaders.go).
//
// The catalog is static data. Lookups never panic; an unknown name simply
// reports absence and callers fall back to "no effect".
package effects

// None is the distinguished no-effect name. Triggering it is a no-op and
// compiling it yields the passthrough program.
const None = "none"

// Category groups effects for the editor's picker UI.
type Category string

// Effect categories.
const (
	CategoryScore       Category = "score"
	CategoryTransition  Category = "transition"
	CategoryCelebration Category = "celebration"
	CategoryAmbient     Category = "ambient"
	CategoryDistortion  Category = "distortion"
)

// RenderKind selects which render surface adapter drives an effect.
type RenderKind uint8

const (
	// RenderOverlay draws the effect additively over visible content.
	RenderOverlay RenderKind = iota

	// RenderDistortion re-samples captured content through a coordinate
	// warp.
	RenderDistortion

	// RenderGenerative renders a self-contained procedural pattern,
	// independent of underlying content.
	RenderGenerative
)

// String returns the render kind name.
func (k RenderKind) String() string {
	switch k {
	case RenderOverlay:
		return "overlay"
	case RenderDistortion:
		return "distortion"
	case RenderGenerative:
		return "generative"
	default:
		return "unknown"
	}
}

// Definition describes one effect in the catalog. Definitions are
// immutable; the registry is their single source of truth, including the
// default duration and intensity applied when a trigger omits them.
type Definition struct {
	// Name is the unique key across the catalog.
	Name string

	// Label is the human-readable effect name.
	Label string

	// Description explains the visual for the editor UI.
	Description string

	// Category groups the effect in the picker.
	Category Category

	// Kind selects the render surface adapter.
	Kind RenderKind

	// DefaultDuration is the play time used when a trigger does not
	// override it. Zero means the effect is continuous.
	DefaultDurationSeconds float64

	// DefaultIntensity scales the effect when a trigger does not
	// override it.
	DefaultIntensity float64

	// SupportsColor reports whether the effect consumes a primary color.
	SupportsColor bool

	// SupportsSecondaryColor reports whether the effect consumes a
	// secondary color.
	SupportsSecondaryColor bool

	// Continuous marks effects that run until explicitly stopped.
	Continuous bool
}

// entry couples a definition with its two render-context implementations.
type entry struct {
	def      Definition
	fragment string
	eval     Evaluator
}

// catalog is the closed, ordered effect set. Order is the presentation
// order inside each category.
var catalog = []entry{
	{
		def: Definition{
			Name: None, Label: "None",
			Description:            "No effect.",
			Category:               CategoryAmbient,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 0, DefaultIntensity: 0,
		},
		fragment: passthroughFragmentWGSL,
		eval:     evalPassthrough,
	},
	{
		def: Definition{
			Name: "scoreBurst", Label: "Score Burst",
			Description:            "Expanding ring with sparks, fired when a score changes.",
			Category:               CategoryScore,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 1.2, DefaultIntensity: 1.0,
			SupportsColor: true, SupportsSecondaryColor: true,
		},
		fragment: scoreBurstFragmentWGSL,
		eval:     evalScoreBurst,
	},
	{
		def: Definition{
			Name: "goalFlash", Label: "Goal Flash",
			Description:            "Full-surface flash that decays quickly.",
			Category:               CategoryScore,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 0.8, DefaultIntensity: 0.9,
			SupportsColor: true,
		},
		fragment: goalFlashFragmentWGSL,
		eval:     evalGoalFlash,
	},
	{
		def: Definition{
			Name: "slideWipe", Label: "Slide Wipe",
			Description:            "Bright band sweeping across the region.",
			Category:               CategoryTransition,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 0.7, DefaultIntensity: 0.8,
			SupportsColor: true,
		},
		fragment: slideWipeFragmentWGSL,
		eval:     evalSlideWipe,
	},
	{
		def: Definition{
			Name: "dissolve", Label: "Dissolve",
			Description:            "Noise-threshold sparkle sweeping the region away.",
			Category:               CategoryTransition,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 1.0, DefaultIntensity: 0.8,
			SupportsColor: true,
		},
		fragment: dissolveFragmentWGSL,
		eval:     evalDissolve,
	},
	{
		def: Definition{
			Name: "confettiBurst", Label: "Confetti Burst",
			Description:            "Falling confetti particles in two alternating colors.",
			Category:               CategoryCelebration,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 2.5, DefaultIntensity: 1.0,
			SupportsColor: true, SupportsSecondaryColor: true,
		},
		fragment: confettiFragmentWGSL,
		eval:     evalConfetti,
	},
	{
		def: Definition{
			Name: "fireworks", Label: "Fireworks",
			Description:            "Staggered radial spark bursts.",
			Category:               CategoryCelebration,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 3.0, DefaultIntensity: 1.0,
			SupportsColor: true, SupportsSecondaryColor: true,
		},
		fragment: fireworksFragmentWGSL,
		eval:     evalFireworks,
	},
	{
		def: Definition{
			Name: "shockwave", Label: "Shockwave",
			Description:            "Thin expanding ring with a chromatic fringe.",
			Category:               CategoryCelebration,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 0.9, DefaultIntensity: 1.0,
			SupportsColor: true,
		},
		fragment: shockwaveFragmentWGSL,
		eval:     evalShockwave,
	},
	{
		def: Definition{
			Name: "pulseGlow", Label: "Pulse Glow",
			Description:            "Soft breathing glow around the center.",
			Category:               CategoryAmbient,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 2.0, DefaultIntensity: 0.7,
			SupportsColor: true,
		},
		fragment: pulseGlowFragmentWGSL,
		eval:     evalPulseGlow,
	},
	{
		def: Definition{
			Name: "shimmer", Label: "Shimmer",
			Description:            "Diagonal highlight band with sparkle.",
			Category:               CategoryAmbient,
			Kind:                   RenderOverlay,
			DefaultDurationSeconds: 1.5, DefaultIntensity: 0.6,
			SupportsColor: true, SupportsSecondaryColor: true,
		},
		fragment: shimmerFragmentWGSL,
		eval:     evalShimmer,
	},
	{
		def: Definition{
			Name: "ripple", Label: "Ripple",
			Description:            "Radial wave displacing the captured content.",
			Category:               CategoryDistortion,
			Kind:                   RenderDistortion,
			DefaultDurationSeconds: 1.8, DefaultIntensity: 0.8,
		},
		fragment: rippleFragmentWGSL,
		eval:     evalRipple,
	},
	{
		def: Definition{
			Name: "heatHaze", Label: "Heat Haze",
			Description:            "Rising fractal-noise wobble over the content.",
			Category:               CategoryDistortion,
			Kind:                   RenderDistortion,
			DefaultDurationSeconds: 2.0, DefaultIntensity: 0.6,
		},
		fragment: heatHazeFragmentWGSL,
		eval:     evalHeatHaze,
	},
	{
		def: Definition{
			Name: "glitch", Label: "Glitch",
			Description:            "Sliced horizontal offsets with channel splitting.",
			Category:               CategoryDistortion,
			Kind:                   RenderDistortion,
			DefaultDurationSeconds: 0.6, DefaultIntensity: 0.9,
		},
		fragment: glitchFragmentWGSL,
		eval:     evalGlitch,
	},
	{
		def: Definition{
			Name: "liquidDistortion", Label: "Liquid",
			Description:            "Continuous domain-warped noise pattern with hue cycling.",
			Category:               CategoryAmbient,
			Kind:                   RenderGenerative,
			DefaultDurationSeconds: 0, DefaultIntensity: 1.0,
			SupportsColor: true, SupportsSecondaryColor: true,
			Continuous: true,
		},
		fragment: liquidFragmentWGSL,
		eval:     evalLiquid,
	},
}

// byName indexes the catalog for lookup.
var byName = func() map[string]*entry {
	m := make(map[string]*entry, len(catalog))
	for i := range catalog {
		m[catalog[i].def.Name] = &catalog[i]
	}
	return m
}()

// Get returns the definition for name. ok is false for unknown names;
// callers must treat that as "no such effect" and fail soft.
func Get(name string) (Definition, bool) {
	e, ok := byName[name]
	if !ok {
		return Definition{}, false
	}
	return e.def, true
}

// List returns every definition except "none", in catalog order.
func List() []Definition {
	out := make([]Definition, 0, len(catalog)-1)
	for _, e := range catalog {
		if e.def.Name == None {
			continue
		}
		out = append(out, e.def)
	}
	return out
}

// ListByCategory returns the definitions in a category, in catalog order,
// excluding "none".
func ListByCategory(c Category) []Definition {
	var out []Definition
	for _, e := range catalog {
		if e.def.Name == None || e.def.Category != c {
			continue
		}
		out = append(out, e.def)
	}
	return out
}

// IsDistortion reports whether name is a distortion-kind effect.
// Unknown names report false.
func IsDistortion(name string) bool {
	e, ok := byName[name]
	return ok && e.def.Kind == RenderDistortion
}

// IsGenerative reports whether name is a generative-kind effect.
// Unknown names report false.
func IsGenerative(name string) bool {
	e, ok := byName[name]
	return ok && e.def.Kind == RenderGenerative
}

// FragmentSource returns the WGSL fragment source for name. Unknown names
// and "none" yield the passthrough source, so compilation always has a
// valid program to fall back to.
func FragmentSource(name string) string {
	e, ok := byName[name]
	if !ok {
		return passthroughFragmentWGSL
	}
	return e.fragment
}

// EvaluatorFor returns the CPU evaluator for name. Unknown names yield
// the passthrough evaluator.
func EvaluatorFor(name string) Evaluator {
	e, ok := byName[name]
	if !ok {
		return evalPassthrough
	}
	return e.eval
}
