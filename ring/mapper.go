// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ring implements the Ring Mapper: translation of a logical ring
// index into a (channel, pixel-within-channel) pair, honoring per-channel
// reversal. It has no hardware dependency so it can be exhaustively
// property-tested in isolation from the Pixel Sink.
package ring

// NumChannels is the fixed number of data-line channels making up the ring
// (CH1..CH4). CH5/CH6 are status-bar channels and are not part of the ring.
const NumChannels = 4

// MaxPerChannel is the largest per-channel pixel count the firmware
// supports.
const MaxPerChannel = 50

// Pos identifies one physical pixel: channel index [0, NumChannels) and the
// pixel index within that channel's buffer.
type Pos struct {
	Channel int
	Pixel   int
}

// Mapper walks CH1->CH2->CH3->CH4 in order and maps a logical index
// k in [0, Len()) to its physical Pos. It is rebuilt whenever counts or
// reverse flags change; between rebuilds the mapping is stable.
type Mapper struct {
	count   [NumChannels]int
	reverse [NumChannels]bool
	offsets [NumChannels]int // cumulative pixel count before channel i
	length  int
}

// Build (re)computes the mapping for the given per-channel counts and
// reverse flags. count[i]=0 channels are legal and are simply skipped.
func (m *Mapper) Build(count [NumChannels]int, reverse [NumChannels]bool) {
	m.count = count
	m.reverse = reverse
	total := 0
	for i := 0; i < NumChannels; i++ {
		m.offsets[i] = total
		total += count[i]
	}
	m.length = total
}

// Len returns the ring length L = sum(count[i]).
func (m *Mapper) Len() int {
	return m.length
}

// ChannelLen returns the configured pixel count for channel ch.
func (m *Mapper) ChannelLen(ch int) int {
	if ch < 0 || ch >= NumChannels {
		return 0
	}
	return m.count[ch]
}

// Map translates logical index k into its (channel, pixel) position.
// Callers must only pass k in [0, Len()); out-of-range k returns the zero
// Pos, which is never dereferenced into hardware since the render loop
// always iterates k < Len().
func (m *Mapper) Map(k int) Pos {
	if k < 0 || k >= m.length {
		return Pos{}
	}
	for ch := NumChannels - 1; ch >= 0; ch-- {
		if k >= m.offsets[ch] {
			rem := k - m.offsets[ch]
			if m.reverse[ch] {
				rem = m.count[ch] - 1 - rem
			}
			return Pos{Channel: ch, Pixel: rem}
		}
	}
	return Pos{}
}
