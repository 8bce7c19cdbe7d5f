// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package effects implements the Effect Library (spec §4.4): 14 built-in
// effect programs, each a pure function from (config, tick/dt, previous
// pixels) to next pixels, plus the dispatcher that selects among them.
package effects

import (
	"math"
	"math/rand"

	"github.com/Darkone83/XBOX-RGB/colorpipeline"
	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// Params is the subset of the live Config an effect reads. It is a plain
// value, not a pointer into the Config Store, so effects can never race
// with a concurrent config mutation (spec §9: "no effect may hold a
// reference to a pixel [or config] across frames").
type Params struct {
	Len          int
	Speed        uint8
	Intensity    uint8
	Width        uint8
	Palette      colorpipeline.Palette
	ColorA       colorpipeline.Linear
	ColorB       colorpipeline.Linear
	ColorC       colorpipeline.Linear
	ColorD       colorpipeline.Linear
}

// ParamsFromConfig builds Params for the ring of length L from a live
// Config snapshot. If the config's PaletteCount is 1 (a solid color in
// colorA), the palette still carries 4 slots so MotionPalette can be
// substituted by effects that need motion color; ParamsFromConfig itself
// always uses the configured palette, motion-color derivation happens in
// the individual effects that want it.
func ParamsFromConfig(c rgbconfig.Config) Params {
	pal := colorpipeline.Palette{N: int(c.PaletteCount)}
	pal.Colors[0] = colorpipeline.FromSRGB24(c.ColorA)
	pal.Colors[1] = colorpipeline.FromSRGB24(c.ColorB)
	pal.Colors[2] = colorpipeline.FromSRGB24(c.ColorC)
	pal.Colors[3] = colorpipeline.FromSRGB24(c.ColorD)
	return Params{
		Len:       c.RingLen(),
		Speed:     c.Speed,
		Intensity: c.Intensity,
		Width:     c.Width,
		Palette:   pal,
		ColorA:    pal.Colors[0],
		ColorB:    pal.Colors[1],
		ColorC:    pal.Colors[2],
		ColorD:    pal.Colors[3],
	}
}

// Context carries per-tick timing. FrameCount increments every rendered
// frame; DtSec is the Scheduler's smoothed delta time.
type Context struct {
	FrameCount uint32
	DtSec      float64
}

// speedFreq maps speed (0..255) onto an effect-specific frequency range
// using a smoothstep-then-exponential curve, per spec §4.4's "common
// conventions": perceptually, the low end of the speed range should feel
// much slower than a linear map would give, so the curve compresses slow
// speeds and expands fast ones.
func speedFreq(speed uint8, minHz, maxHz float64) float64 {
	x := float64(speed) / 255
	smooth := x * x * (3 - 2*x) // smoothstep
	return minHz * math.Pow(maxHz/minHz, smooth)
}

// State holds everything that must persist between frames: per-pixel
// twinkle phases, the fire heat map, meteor slots, and head positions for
// the motion effects. All arrays are fixed-size (MaxRingLen) and owned
// exclusively by the Effect Library, per spec §9.
type State struct {
	len int

	twinklePhase [MaxRingLen]uint8
	heat         [MaxRingLen]float64

	meteors [maxMeteors]meteor

	headPos    float64
	larsonDir  float64
	clockAngle float64
	plasmaT    float64
	breathT    float64
	breathT2   float64

	rng *rand.Rand
}

// MaxRingLen is the largest ring length the Effect Library supports,
// matching spec §3's ringLen<=200 invariant.
const MaxRingLen = 200

const maxMeteors = 8

type meteor struct {
	pos    float64
	vel    float64
	length float64
	active bool
}

// NewState returns a fresh effect state with a private PRNG (never the
// global math/rand source, so tests are reproducible and concurrent
// renders of distinct rings never share RNG state).
func NewState(seed int64) *State {
	return &State{rng: rand.New(rand.NewSource(seed))}
}

// Resize clears persistent arrays when the ring length changes, since
// stale entries beyond the new length would otherwise leak into a larger
// ring on a later counts change.
func (s *State) Resize(length int) {
	if length == s.len {
		return
	}
	s.len = length
	for i := range s.twinklePhase {
		s.twinklePhase[i] = 0
	}
	for i := range s.heat {
		s.heat[i] = 0
	}
	for i := range s.meteors {
		s.meteors[i] = meteor{}
	}
	s.headPos = 0
	s.larsonDir = 1
	s.clockAngle = 0
	s.plasmaT = 0
	s.breathT = 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
