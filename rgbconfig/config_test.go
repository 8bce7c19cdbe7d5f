// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func configGen() *rapid.Generator[Config] {
	return rapid.Custom(func(t *rapid.T) Config {
		c := Default()
		for i := range c.Count {
			c.Count[i] = uint16(rapid.IntRange(0, 200).Draw(t, "count"))
		}
		c.Brightness = uint8(rapid.IntRange(0, 255).Draw(t, "brightness"))
		c.Mode = Mode(rapid.IntRange(0, 255).Draw(t, "mode"))
		c.Speed = uint8(rapid.IntRange(0, 255).Draw(t, "speed"))
		c.Intensity = uint8(rapid.IntRange(0, 255).Draw(t, "intensity"))
		c.Width = uint8(rapid.IntRange(0, 255).Draw(t, "width"))
		c.PaletteCount = uint8(rapid.IntRange(0, 255).Draw(t, "paletteCount"))
		c.ColorTempK = uint16(rapid.IntRange(0, 65535).Draw(t, "colorTempK"))
		c.Clamp()
		return c
	})
}

// Property 3: parse(serialize(C)) == C for every valid (already-clamped) C.
func TestConfigRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := configGen().Draw(t, "config")
		raw, err := c.ToJSON()
		require.NoError(t, err)

		var round Config
		round.CustomSeq = "" // ensure ApplyJSON overlay, not zero-value compare bias
		require.NoError(t, round.ApplyJSON(raw))

		assert.Equal(t, c.Count, round.Count)
		assert.Equal(t, c.Brightness, round.Brightness)
		assert.Equal(t, c.Mode, round.Mode)
		assert.Equal(t, c.Speed, round.Speed)
		assert.Equal(t, c.Intensity, round.Intensity)
		assert.Equal(t, c.Width, round.Width)
		assert.Equal(t, c.PaletteCount, round.PaletteCount)
		assert.Equal(t, c.ColorTempK, round.ColorTempK)
		assert.Equal(t, c.CustomSeq, round.CustomSeq)
	})
}

// Property 3 (clamp idempotence): out-of-range JSON inputs serialize
// in-range after parse, and reapplying clamp is a no-op.
func TestClampIdempotent(t *testing.T) {
	raw := []byte(`{"count":[100,0,51,50],"brightness":0,"mode":250,"paletteCount":9,"colorTempK":100}`)
	c := Default()
	require.NoError(t, c.ApplyJSON(raw))
	assert.Equal(t, [4]uint16{50, 0, 50, 50}, c.Count)
	assert.Equal(t, uint8(1), c.Brightness)
	assert.True(t, c.Mode.Valid())
	assert.Equal(t, uint8(4), c.PaletteCount)
	assert.Equal(t, uint16(1000), c.ColorTempK)

	before := c
	c.Clamp()
	assert.Equal(t, before, c)
}

// S3: clamp on load.
func TestScenarioS3ClampOnSave(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyJSON([]byte(`{"count":[100,0,51,50]}`)))
	assert.Equal(t, [4]uint16{50, 0, 50, 50}, c.Count)
}

// S2: round-trip config via save/get semantics at the struct level.
func TestScenarioS2RoundTripFields(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyJSON([]byte(`{"mode":7,"speed":200,"width":6,"colorA":65280}`)))
	assert.Equal(t, Mode(7), c.Mode)
	assert.Equal(t, uint8(200), c.Speed)
	assert.Equal(t, uint8(6), c.Width)
	assert.Equal(t, uint32(65280), c.ColorA)
}

func TestApplyJSONLeavesMissingFieldsUnchanged(t *testing.T) {
	c := Default()
	c.Speed = 77
	require.NoError(t, c.ApplyJSON([]byte(`{"brightness":200}`)))
	assert.Equal(t, uint8(77), c.Speed)
	assert.Equal(t, uint8(200), c.Brightness)
}

func TestApplyJSONShorterArrayLeavesTailUnchanged(t *testing.T) {
	c := Default()
	c.Count = [4]uint16{10, 20, 30, 40}
	require.NoError(t, c.ApplyJSON([]byte(`{"count":[5,6]}`)))
	assert.Equal(t, [4]uint16{5, 6, 30, 40}, c.Count)
}

func TestApplyJSONRejectsBadJSON(t *testing.T) {
	c := Default()
	orig := c
	err := c.ApplyJSON([]byte(`{not json`))
	require.Error(t, err)
	assert.Equal(t, orig, c)
}

func TestApplyJSONUnknownFieldsIgnored(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyJSON([]byte(`{"brightness":200,"bogusField":123}`)))
	assert.Equal(t, uint8(200), c.Brightness)
}

func TestToJSONIncludesDisplayFields(t *testing.T) {
	c := Default()
	raw, err := c.ToJSON()
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"inPreview", "buildVersion", "copyright"} {
		_, ok := m[key]
		assert.True(t, ok, "missing display field %q", key)
	}
}
