// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import (
	"sync"
	"time"

	"github.com/gogpu/fx/effects"
)

// Scheduler is the animation clock. It owns the set of active effect
// instances, keyed by target — at most one per target. Triggering a new
// effect on an animating target replaces the prior instance and
// discards its completion callback.
//
// The scheduler is an explicit object passed by reference; there is no
// package-level instance. All methods are safe for concurrent use.
type Scheduler struct {
	mu     sync.Mutex
	active map[string]*ActiveEffect
	subs   map[int]func()
	nextID int

	now      func() time.Time
	interval time.Duration
	ticking  bool
	gen      int // bumped when the active set empties, retires stale tick loops
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the wall clock. Tests drive time through this plus
// Advance.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

// WithTickInterval sets the internal tick period. The default is
// ~60 ticks per second.
func WithTickInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewScheduler creates an empty scheduler. It consumes no resources
// until an effect is triggered; the tick loop self-terminates whenever
// the active set drains.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		active:   make(map[string]*ActiveEffect),
		subs:     make(map[int]func()),
		now:      time.Now,
		interval: time.Second / 60,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TriggerOption overrides catalog defaults for one trigger.
type TriggerOption func(*ActiveEffect)

// WithDuration overrides the effect's play time.
func WithDuration(d time.Duration) TriggerOption {
	return func(a *ActiveEffect) {
		if d > 0 {
			a.Timing = Timing{Duration: d}
		}
	}
}

// WithIntensity overrides the effect's strength.
func WithIntensity(v float64) TriggerOption {
	return func(a *ActiveEffect) { a.Intensity = v }
}

// WithPrimaryColor sets the effect's primary color.
func WithPrimaryColor(c RGBA) TriggerOption {
	return func(a *ActiveEffect) { a.PrimaryColor = c }
}

// WithSecondaryColor sets the effect's secondary color.
func WithSecondaryColor(c RGBA) TriggerOption {
	return func(a *ActiveEffect) { a.SecondaryColor = c }
}

// WithCenter sets the effect origin in normalized region coordinates.
func WithCenter(x, y float64) TriggerOption {
	return func(a *ActiveEffect) { a.Center = [2]float64{x, y} }
}

// WithDelay postpones the effect's start.
func WithDelay(d time.Duration) TriggerOption {
	return func(a *ActiveEffect) {
		if d > 0 {
			a.Started = a.Started.Add(d)
		}
	}
}

// WithPattern supplies generative-pattern parameters.
func WithPattern(p effects.Pattern) TriggerOption {
	return func(a *ActiveEffect) { a.Pattern = &p }
}

// WithOnComplete registers a callback invoked exactly once when the
// effect finishes naturally. Stopping or replacing the instance
// discards the callback without invoking it.
func WithOnComplete(fn func()) TriggerOption {
	return func(a *ActiveEffect) { a.onComplete = fn }
}

// Trigger starts effectName on targetID, replacing any running instance
// for that target. "none" and unknown names are no-ops; Trigger never
// fails.
func (s *Scheduler) Trigger(targetID, effectName string, opts ...TriggerOption) {
	if effectName == effects.None {
		return
	}
	def, ok := effects.Get(effectName)
	if !ok {
		Logger().Debug("fx: trigger for unknown effect", "effect", effectName, "target", targetID)
		return
	}

	now := s.now()
	a := &ActiveEffect{
		TargetID:   targetID,
		EffectName: effectName,
		Started:    now,
		Intensity:  def.DefaultIntensity,
		Center:     [2]float64{0.5, 0.5},
	}
	if def.Continuous {
		a.Timing = Timing{Continuous: true}
	} else {
		a.Timing = Timing{Duration: time.Duration(def.DefaultDurationSeconds * float64(time.Second))}
	}
	for _, opt := range opts {
		opt(a)
	}

	s.mu.Lock()
	s.active[targetID] = a
	s.ensureTickingLocked()
	s.mu.Unlock()

	s.notify()
}

// Stop cancels the instance on targetID, if any. The completion
// callback is not invoked: a stop is a cancellation, not a natural
// completion. No partial frame is produced for the instance after Stop
// returns.
func (s *Scheduler) Stop(targetID string) {
	s.mu.Lock()
	_, ok := s.active[targetID]
	if ok {
		delete(s.active, targetID)
		s.maybeRetireLocked()
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
}

// StopAll cancels every running instance without invoking completion
// callbacks.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	changed := len(s.active) > 0
	clear(s.active)
	s.maybeRetireLocked()
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// IsActive reports whether targetID has a running instance.
func (s *Scheduler) IsActive(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[targetID]
	return ok
}

// ActiveFor returns a snapshot of targetID's instance.
func (s *Scheduler) ActiveFor(targetID string) (ActiveEffect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[targetID]
	if !ok {
		return ActiveEffect{}, false
	}
	return *a, true
}

// Active returns a snapshot of every running instance.
func (s *Scheduler) Active() []ActiveEffect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ActiveEffect, 0, len(s.active))
	for _, a := range s.active {
		out = append(out, *a)
	}
	return out
}

// Subscribe registers fn to run after every change to the active set
// (trigger, stop, completion). The returned function unsubscribes.
func (s *Scheduler) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Advance runs one tick at the given timestamp. Every instance's
// progress is computed from this same snapshot, so simultaneously
// triggered effects never desync. Finished instances are removed and
// their completion callbacks invoked exactly once, after the set has
// been updated.
//
// The internal tick loop calls Advance with the configured clock; tests
// and external frame loops may call it directly.
func (s *Scheduler) Advance(now time.Time) {
	var completed []func()

	s.mu.Lock()
	for id, a := range s.active {
		if a.Timing.Continuous {
			continue
		}
		elapsed := now.Sub(a.Started)
		if elapsed < 0 {
			a.Progress = 0 // delayed start still pending
			continue
		}
		p := 1.0
		if a.Timing.Duration > 0 {
			p = float64(elapsed) / float64(a.Timing.Duration)
		}
		if p >= 1 {
			a.Progress = 1
			delete(s.active, id)
			if a.onComplete != nil {
				completed = append(completed, a.onComplete)
			}
			continue
		}
		a.Progress = p
	}
	s.maybeRetireLocked()
	s.mu.Unlock()

	for _, fn := range completed {
		fn()
	}
	if len(completed) > 0 {
		s.notify()
	}
}

// ensureTickingLocked starts the tick loop if it is not running.
func (s *Scheduler) ensureTickingLocked() {
	if s.ticking {
		return
	}
	s.ticking = true
	gen := s.gen
	go s.run(gen)
}

// maybeRetireLocked retires the tick loop once the active set drains.
func (s *Scheduler) maybeRetireLocked() {
	if len(s.active) == 0 && s.ticking {
		s.ticking = false
		s.gen++
	}
}

// run is the tick loop. It exits as soon as its generation is retired,
// so an idle scheduler polls nothing.
func (s *Scheduler) run(gen int) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		live := s.ticking && s.gen == gen
		s.mu.Unlock()
		if !live {
			return
		}
		s.Advance(s.now())
	}
}

// notify runs the subscriber callbacks outside the scheduler lock.
func (s *Scheduler) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
