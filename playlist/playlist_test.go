// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

const s5Seq = `[{"mode":0,"duration":100,"colorA":16711680},{"mode":0,"duration":100,"colorA":255}]`

// Scenario S5: playlist loop. At t=50ms every pixel is red, at t=150ms
// every pixel is blue, at t=250ms every pixel is red again.
func TestScenarioS5PlaylistLoop(t *testing.T) {
	base := rgbconfig.Default()
	base.Mode = rgbconfig.ModeCustom
	base.CustomSeq = s5Seq
	base.CustomLoop = true

	e := NewEngine()
	t0 := time.Unix(0, 0)

	scratch, active := e.Tick(t0.Add(50*time.Millisecond), base)
	require.True(t, active)
	assert.Equal(t, uint32(0xFF0000), scratch.ColorA)

	scratch, active = e.Tick(t0.Add(150*time.Millisecond), base)
	require.True(t, active)
	assert.Equal(t, uint32(0x0000FF), scratch.ColorA)

	scratch, active = e.Tick(t0.Add(250*time.Millisecond), base)
	require.True(t, active)
	assert.Equal(t, uint32(0xFF0000), scratch.ColorA)
}

// Property 7: a playlist of N steps each of duration D, run for N*D+eps
// without loop ends holding step N-1; with loop=true it is back on step 0.
func TestPropertyPlaylistAdvanceHoldsLastStepWithoutLoop(t *testing.T) {
	base := rgbconfig.Default()
	base.Mode = rgbconfig.ModeCustom
	base.CustomSeq = s5Seq
	base.CustomLoop = false

	e := NewEngine()
	t0 := time.Unix(0, 0)
	e.Tick(t0, base) // the engine's clock starts at its first Tick

	scratch, _ := e.Tick(t0.Add(205*time.Millisecond), base)
	assert.Equal(t, uint32(0x0000FF), scratch.ColorA, "holds last step past N*D")

	scratch, _ = e.Tick(t0.Add(10*time.Second), base)
	assert.Equal(t, uint32(0x0000FF), scratch.ColorA, "still holding arbitrarily far past N*D")
}

func TestPropertyPlaylistAdvanceLoopsBackToStepZero(t *testing.T) {
	base := rgbconfig.Default()
	base.Mode = rgbconfig.ModeCustom
	base.CustomSeq = s5Seq
	base.CustomLoop = true

	e := NewEngine()
	t0 := time.Unix(0, 0)
	e.Tick(t0, base) // the engine's clock starts at its first Tick
	scratch, _ := e.Tick(t0.Add(205*time.Millisecond), base)
	assert.Equal(t, uint32(0xFF0000), scratch.ColorA, "looped back onto step 0")
}

func TestEmptyCustomSeqIsInactive(t *testing.T) {
	base := rgbconfig.Default()
	base.CustomSeq = "[]"
	e := NewEngine()
	_, active := e.Tick(time.Unix(0, 0), base)
	assert.False(t, active)
}

func TestUnparseableCustomSeqIsInactive(t *testing.T) {
	base := rgbconfig.Default()
	base.CustomSeq = "not json"
	e := NewEngine()
	_, active := e.Tick(time.Unix(0, 0), base)
	assert.False(t, active)
}

// Changing customSeq mid-flight reparses lazily and restarts at step 0.
func TestSeqChangeReparsesAndRestarts(t *testing.T) {
	base := rgbconfig.Default()
	base.Mode = rgbconfig.ModeCustom
	base.CustomSeq = s5Seq
	base.CustomLoop = false

	e := NewEngine()
	t0 := time.Unix(0, 0)
	e.Tick(t0, base) // the engine's clock starts at its first Tick
	scratch, _ := e.Tick(t0.Add(150*time.Millisecond), base)
	assert.Equal(t, uint32(0x0000FF), scratch.ColorA)

	base.CustomSeq = `[{"mode":0,"duration":1000,"colorA":65280}]`
	scratch, active := e.Tick(t0.Add(160*time.Millisecond), base)
	require.True(t, active)
	assert.Equal(t, uint32(0x00FF00), scratch.ColorA)
}

func TestResetRewindsToStepZero(t *testing.T) {
	base := rgbconfig.Default()
	base.Mode = rgbconfig.ModeCustom
	base.CustomSeq = s5Seq
	base.CustomLoop = false

	e := NewEngine()
	t0 := time.Unix(0, 0)
	e.Tick(t0.Add(150*time.Millisecond), base)

	e.Reset()
	scratch, _ := e.Tick(t0, base)
	assert.Equal(t, uint32(0xFF0000), scratch.ColorA)
}
