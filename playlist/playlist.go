// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package playlist implements the Playlist Engine (spec §4.5): it runs a
// user-supplied sequence of effect steps with durations and per-step
// parameter overrides, driving mode 14 (Custom).
package playlist

import (
	"time"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// Engine tracks (index, stepStartTime) and lazily reparses customSeq
// whenever the source string differs from the last parse, per spec §4.5.
type Engine struct {
	lastSeq   string
	steps     []rgbconfig.Step
	index     int
	stepStart time.Time
	started   bool
}

// NewEngine returns an Engine with no parsed steps; the first Tick call
// parses the current customSeq.
func NewEngine() *Engine {
	return &Engine{}
}

// Tick advances the playlist's step machine against now and returns the
// scratch config to render this frame: base with the current step's
// overrides applied, and the step's mode. base is never mutated. An empty
// or unparseable customSeq yields active=false and base unchanged; callers
// render black in that case rather than rendering the returned config.
// The step clock starts at the first Tick after a (re)parse.
func (e *Engine) Tick(now time.Time, base rgbconfig.Config) (scratch rgbconfig.Config, active bool) {
	if base.CustomSeq != e.lastSeq {
		e.steps = rgbconfig.ParseCustomSeq(base.CustomSeq)
		e.lastSeq = base.CustomSeq
		e.index = 0
		e.started = false
	}
	if len(e.steps) == 0 {
		return base, false
	}
	if !e.started {
		e.stepStart = now
		e.started = true
	}

	elapsed := now.Sub(e.stepStart)
	step := e.steps[e.index]
	for elapsed >= time.Duration(step.DurationMS)*time.Millisecond {
		if e.index+1 < len(e.steps) {
			e.index++
			e.stepStart = e.stepStart.Add(time.Duration(step.DurationMS) * time.Millisecond)
		} else if base.CustomLoop {
			e.index = 0
			e.stepStart = e.stepStart.Add(time.Duration(step.DurationMS) * time.Millisecond)
		} else {
			// Hold the last step indefinitely.
			break
		}
		elapsed = now.Sub(e.stepStart)
		step = e.steps[e.index]
	}

	return step.Apply(base), true
}

// Reset rewinds the engine to step 0 as if freshly constructed. The
// Scheduler calls it on every frame rendered outside mode Custom, so
// re-entering mode Custom starts the sequence from its first step.
func (e *Engine) Reset() {
	e.lastSeq = ""
	e.steps = nil
	e.index = 0
	e.started = false
}
