// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package scheduler implements the Scheduler / Frame Loop (spec §4.6): it
// paces rendering from the live speed parameter, advances a smoothed delta
// time, runs the boot brightness fade, and drives the Effect Library or
// Playlist Engine down through the color pipeline to the Pixel Sink.
package scheduler

import (
	"time"

	"github.com/Darkone83/XBOX-RGB/colorpipeline"
	"github.com/Darkone83/XBOX-RGB/controlplane"
	"github.com/Darkone83/XBOX-RGB/effects"
	"github.com/Darkone83/XBOX-RGB/pixelsink"
	"github.com/Darkone83/XBOX-RGB/playlist"
	"github.com/Darkone83/XBOX-RGB/ring"
	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// BootFadeDuration is how long the transmitted brightness takes to ramp
// from 0 to the configured target on startup, per spec §4.6.
const BootFadeDuration = 3200 * time.Millisecond

// FrameMs computes the frame pacing interval from speed, per spec §4.6:
// weakly monotonic non-increasing in speed, range ~10..138ms.
func FrameMs(speed uint8) time.Duration {
	return time.Duration(10+(255-int(speed))/2) * time.Millisecond
}

// Scheduler owns the render pipeline state: the ring mapper, effect state,
// playlist engine, color pipeline, and brightness LUT. It is driven either
// by Run (real wall clock) or by repeated Tick calls (tests).
type Scheduler struct {
	Store *rgbconfig.Store
	Sink  pixelsink.Sink

	// Pending, if set, is drained once per Tick before rendering, per spec
	// §4.8/§9's processPending priority order. Nil is legal: a Scheduler
	// with no Control Plane attached simply never has anything queued.
	Pending *controlplane.Pending

	// Now defaults to time.Now; tests override it for deterministic ticks.
	Now func() time.Time

	mapper      ring.Mapper
	lastCount   [ring.NumChannels]uint16
	lastReverse [ring.NumChannels]bool
	built       bool

	lastColorTempK uint16

	state    *effects.State
	pl       *playlist.Engine
	pipeline *colorpipeline.Pipeline
	lut      pixelsink.LUT
	frame    pixelsink.Frame
	prev     []colorpipeline.Linear

	frameCount uint32
	dtSec      float64
	lastTick   time.Time
	bootStart  time.Time
	started    bool
}

// New returns a Scheduler reading config from store and transmitting
// through sink. The color pipeline starts at the default (neutral) white
// balance and a light temporal smoothing, matching spec §4.3's suggested
// defaults; Tick re-derives white balance from the config's colorTempK
// whenever it changes, and callers may reach into Pipeline() to tune
// saturation/smoothing further.
func New(store *rgbconfig.Store, sink pixelsink.Sink) *Scheduler {
	return &Scheduler{
		Store: store,
		Sink:  sink,
		Now:   time.Now,
		state: effects.NewState(1),
		pl:    playlist.NewEngine(),
		pipeline: &colorpipeline.Pipeline{
			WB:         colorpipeline.DefaultWhiteBalance,
			Saturation: 1,
			Smoothing:  0.2,
		},
	}
}

// Pipeline exposes the color pipeline for tuning (white balance, saturation,
// smoothing) before the Scheduler starts running.
func (s *Scheduler) Pipeline() *colorpipeline.Pipeline {
	return s.pipeline
}

// Run drives the frame loop against the real wall clock until stop is
// closed. It sleeps for the current speed's frame interval between ticks,
// matching the teacher's interrupt-channel based shutdown idiom rather than
// a context.Context, so cmd/rgbctrld can feed it directly from
// maruel/interrupt's global Channel.
func (s *Scheduler) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		cfg := s.Store.Snapshot()
		s.Tick(s.Now())
		select {
		case <-stop:
			return
		case <-time.After(FrameMs(cfg.Speed)):
		}
	}
}

// Tick performs exactly one render-and-transmit cycle as of now. It is the
// unit Run calls repeatedly, exposed directly so tests can drive the
// Scheduler on a synthetic clock.
func (s *Scheduler) Tick(now time.Time) {
	if s.Pending != nil {
		s.Pending.Process(s.Store, controlplane.DefaultPendingBudget)
	}
	if !s.started {
		s.lastTick = now
		s.bootStart = now
		s.started = true
	}
	inst := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if s.dtSec == 0 {
		s.dtSec = inst
	} else {
		s.dtSec = s.dtSec*0.8 + inst*0.2
	}
	s.frameCount++

	cfg := s.Store.Snapshot()
	if cfg.Count != s.lastCount || cfg.Reverse != s.lastReverse || !s.built {
		var counts [ring.NumChannels]int
		for i, v := range cfg.Count {
			counts[i] = int(v)
		}
		s.mapper.Build(counts, cfg.Reverse)
		s.lastCount = cfg.Count
		s.lastReverse = cfg.Reverse
		s.built = true
	}
	s.state.Resize(s.mapper.Len())

	if cfg.ColorTempK != s.lastColorTempK {
		s.pipeline.WB = colorpipeline.NewWhiteBalance(cfg.ColorTempK)
		s.lastColorTempK = cfg.ColorTempK
	}

	ctx := effects.Context{FrameCount: s.frameCount, DtSec: s.dtSec}

	var linear []colorpipeline.Linear
	if cfg.Mode == rgbconfig.ModeCustom {
		scratch, active := s.pl.Tick(now, cfg)
		if active {
			linear = effects.Render(scratch.Mode, effects.ParamsFromConfig(scratch), scratch.MasterOff, ctx, s.state, s.prev)
		} else {
			linear = make([]colorpipeline.Linear, s.mapper.Len())
		}
	} else {
		s.pl.Reset()
		linear = effects.Render(cfg.Mode, effects.ParamsFromConfig(cfg), cfg.MasterOff, ctx, s.state, s.prev)
	}
	s.prev = linear

	rendered := s.pipeline.Render(linear, s.frameCount)

	brightness := s.bootFadeBrightness(now, cfg.Brightness)
	s.lut.Set(brightness)
	pixelsink.Build(&s.mapper, rendered, &s.lut, &s.frame)

	if s.Sink != nil {
		s.Sink.Show(s.frame.Channels())
	}
}

// bootFadeBrightness linearly ramps from 0 to target over BootFadeDuration,
// staying at >=1 once target>0 so pixels appear immediately rather than
// being invisible during the first fraction of a millisecond, per spec
// §4.6.
func (s *Scheduler) bootFadeBrightness(now time.Time, target uint8) uint8 {
	elapsed := now.Sub(s.bootStart)
	if elapsed >= BootFadeDuration {
		return target
	}
	frac := float64(elapsed) / float64(BootFadeDuration)
	v := uint8(frac * float64(target))
	if target > 0 && v < 1 {
		v = 1
	}
	return v
}

// FrameCount reports the number of frames rendered so far.
func (s *Scheduler) FrameCount() uint32 {
	return s.frameCount
}
