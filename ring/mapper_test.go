// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func countsGen() *rapid.Generator[[NumChannels]int] {
	return rapid.Custom(func(t *rapid.T) [NumChannels]int {
		var c [NumChannels]int
		for i := range c {
			c[i] = rapid.IntRange(0, MaxPerChannel).Draw(t, "count")
		}
		return c
	})
}

func reverseGen() *rapid.Generator[[NumChannels]bool] {
	return rapid.Custom(func(t *rapid.T) [NumChannels]bool {
		var r [NumChannels]bool
		for i := range r {
			r[i] = rapid.Bool().Draw(t, "reverse")
		}
		return r
	})
}

// Property 1: ring length is the sum, and every logical index maps to a
// distinct, valid (channel, within-channel) pair.
func TestRingLengthIsSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counts := countsGen().Draw(t, "counts")
		reverse := reverseGen().Draw(t, "reverse")

		var m Mapper
		m.Build(counts, reverse)

		want := 0
		for _, c := range counts {
			want += c
		}
		require.Equal(t, want, m.Len())

		seen := map[Pos]bool{}
		for k := 0; k < m.Len(); k++ {
			p := m.Map(k)
			require.GreaterOrEqual(t, p.Channel, 0)
			require.Less(t, p.Channel, NumChannels)
			require.GreaterOrEqual(t, p.Pixel, 0)
			require.Less(t, p.Pixel, counts[p.Channel])
			require.False(t, seen[p], "duplicate physical position for distinct ring indices")
			seen[p] = true
		}
		require.Len(t, seen, m.Len())
	})
}

// Property 2: setting reverse[i] twice yields the original mapping.
func TestReversalIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counts := countsGen().Draw(t, "counts")
		reverse := reverseGen().Draw(t, "reverse")

		var base Mapper
		base.Build(counts, reverse)
		baseline := make([]Pos, base.Len())
		for k := range baseline {
			baseline[k] = base.Map(k)
		}

		flipped := reverse
		ch := rapid.IntRange(0, NumChannels-1).Draw(t, "ch")
		flipped[ch] = !flipped[ch]
		flippedBack := flipped
		flippedBack[ch] = !flippedBack[ch]

		var again Mapper
		again.Build(counts, flippedBack)
		for k := 0; k < again.Len(); k++ {
			assert.Equal(t, baseline[k], again.Map(k))
		}
	})
}

func TestDegenerateZeroLength(t *testing.T) {
	var m Mapper
	m.Build([NumChannels]int{0, 0, 0, 0}, [NumChannels]bool{})
	require.Equal(t, 0, m.Len())
	require.Equal(t, Pos{}, m.Map(0))
}

func TestSkipsZeroCountChannels(t *testing.T) {
	var m Mapper
	m.Build([NumChannels]int{0, 5, 0, 3}, [NumChannels]bool{})
	require.Equal(t, 8, m.Len())
	require.Equal(t, Pos{Channel: 1, Pixel: 0}, m.Map(0))
	require.Equal(t, Pos{Channel: 1, Pixel: 4}, m.Map(4))
	require.Equal(t, Pos{Channel: 3, Pixel: 0}, m.Map(5))
	require.Equal(t, Pos{Channel: 3, Pixel: 2}, m.Map(7))
}
