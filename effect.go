// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import (
	"time"

	"github.com/gogpu/fx/effects"
)

// TriggerCondition selects when a data-bound effect fires.
type TriggerCondition string

// Trigger conditions for data-bound effects.
const (
	TriggerIncrease TriggerCondition = "increase"
	TriggerDecrease TriggerCondition = "decrease"
	TriggerChange   TriggerCondition = "change"
	TriggerEquals   TriggerCondition = "equals"
)

// DataTrigger binds an effect to a watched data field. Evaluating the
// condition against live data is the editor's job; the engine only
// receives the resulting trigger events.
type DataTrigger struct {
	DataPath    string           `json:"dataPath"`
	Condition   TriggerCondition `json:"condition"`
	EqualsValue string           `json:"equalsValue,omitempty"`
}

// EffectParams are the optional per-trigger overrides persisted with a
// layout. Nil fields fall back to the catalog defaults.
type EffectParams struct {
	DurationSeconds *float64         `json:"durationSeconds,omitempty"`
	Intensity       *float64         `json:"intensity,omitempty"`
	PrimaryColor    *RGBA            `json:"primaryColor,omitempty"`
	SecondaryColor  *RGBA            `json:"secondaryColor,omitempty"`
	DelaySeconds    *float64         `json:"delaySeconds,omitempty"`
	Pattern         *effects.Pattern `json:"pattern,omitempty"`
}

// EffectConfig attaches an effect to a UI component and is persisted
// with the layout. A zero EffectName means "no effect".
type EffectConfig struct {
	EffectName string       `json:"effectName"`
	Trigger    *DataTrigger `json:"trigger,omitempty"`
	Params     EffectParams `json:"params"`
}

// Timing is an active effect's lifetime. Continuous effects run until
// explicitly stopped; finite effects complete when their duration
// elapses.
type Timing struct {
	Continuous bool
	Duration   time.Duration
}

// ActiveEffect is one running effect instance, keyed by target. The
// scheduler owns these; callers see value snapshots.
type ActiveEffect struct {
	TargetID   string
	EffectName string

	// Progress advances 0→1 over the effect's duration. Continuous
	// effects stay below 1 forever.
	Progress float64

	Started time.Time
	Timing  Timing

	Intensity      float64
	PrimaryColor   RGBA
	SecondaryColor RGBA
	Center         [2]float64
	Pattern        *effects.Pattern

	onComplete func()
}

// Uniforms builds the shader uniform values for this instance at its
// current progress, for a width×height viewport.
func (a *ActiveEffect) Uniforms(now time.Time, width, height int) effects.Uniforms {
	un := effects.Uniforms{
		Time:           now.Sub(a.Started).Seconds(),
		Progress:       a.Progress,
		Intensity:      a.Intensity,
		PrimaryColor:   [4]float64{a.PrimaryColor.R, a.PrimaryColor.G, a.PrimaryColor.B, a.PrimaryColor.A},
		SecondaryColor: [4]float64{a.SecondaryColor.R, a.SecondaryColor.G, a.SecondaryColor.B, a.SecondaryColor.A},
		Center:         a.Center,
		Resolution:     [2]float64{float64(width), float64(height)},
	}
	if a.Pattern != nil {
		un.Pattern = *a.Pattern
	}
	return un
}
