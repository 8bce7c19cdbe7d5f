// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pixelsink implements the Pixel Sink (spec §4.1): it takes the
// single logical ring of rendered bytes, applies per-channel reversal and
// the latched global-brightness lookup table, and hands the four resulting
// channel buffers to a transmit backend.
package pixelsink

import "github.com/Darkone83/XBOX-RGB/ring"

// NumChannels re-exports ring.NumChannels so Sink implementations can size
// their channel arrays without importing package ring.
const NumChannels = ring.NumChannels

// bytesPerPixel is fixed at 3 (RGB); the transmit backend is responsible
// for any wire-specific expansion (e.g. APA102's 4-byte frames).
const bytesPerPixel = 3

// Sink is the minimal interface a transmit backend must satisfy. It is
// intentionally narrower than periph.io's conn/display.Drawer so the
// rendering side never depends on a specific hardware driver; cmd/rgbctrld
// wires a periph.io-backed implementation at the edge of the program.
type Sink interface {
	// Show transmits one RGB24 buffer per channel. Buffers shorter than the
	// channel's configured pixel count are the caller's responsibility;
	// Show must not retain the slices past the call.
	Show(channels [NumChannels][]byte) error
}

// LUT is the latched global-brightness lookup table: each byte intensity
// is scaled linearly by brightness/255, and the table is re-initialized
// only when brightness changes, the same rebuild-on-change caching as the
// teacher's per-LED intensity lookup table (APA102's lut.init).
type LUT struct {
	brightness uint8
	table      [256]uint8
}

// Set rebuilds the table if brightness differs from the currently latched
// value; it is a no-op otherwise, so a render loop can call Set every
// frame without re-deriving the curve each time.
func (l *LUT) Set(brightness uint8) {
	if brightness == l.brightness {
		return
	}
	l.brightness = brightness
	max := uint32(brightness)
	for i := range l.table {
		l.table[i] = uint8(uint32(i) * max / 255)
	}
}

// rampByte is the 8-bit analog of the teacher's 16-bit ramp(): a linear
// section near black followed by a cubic climb to max. LUT does not use
// it; LUT scales each byte linearly.
func rampByte(l uint8, max uint32) uint32 {
	if l == 0 || max == 0 {
		return 0
	}
	linearCutOff := (max + 50) / 100
	l32 := uint32(l)
	if l32 < linearCutOff {
		return l32 * max / 255
	}
	l32 -= linearCutOff
	inRange := 255 - linearCutOff
	if inRange == 0 {
		return max
	}
	outRange := max - linearCutOff
	offset := inRange >> 1
	y := (l32*l32*l32 + offset) / inRange
	v := (y*outRange+offset*offset)/inRange/inRange + linearCutOff
	if v > max {
		v = max
	}
	return v
}

// Apply scales a single RGB24 byte triplet through the latched table.
func (l *LUT) Apply(r, g, b uint8) (uint8, uint8, uint8) {
	return l.table[r], l.table[g], l.table[b]
}

// Frame holds the four per-channel RGB24 buffers built from one rendered
// ring frame.
type Frame struct {
	channels [NumChannels][]byte
}

// Build slices rendered (a flat RGB24 buffer indexed by ring.Mapper
// position order) into per-channel buffers, applying the channel's
// reversal and the brightness LUT. rendered must have length
// m.Len()*3; Build panics otherwise since it indicates a Scheduler/Ring
// Mapper mismatch upstream, not a recoverable runtime condition.
func Build(m *ring.Mapper, rendered []byte, lut *LUT, f *Frame) {
	if len(rendered) != m.Len()*bytesPerPixel {
		panic("pixelsink: rendered buffer does not match ring length")
	}
	for ch := 0; ch < NumChannels; ch++ {
		n := m.ChannelLen(ch)
		if cap(f.channels[ch]) < n*bytesPerPixel {
			f.channels[ch] = make([]byte, n*bytesPerPixel)
		} else {
			f.channels[ch] = f.channels[ch][:n*bytesPerPixel]
		}
	}
	for k := 0; k < m.Len(); k++ {
		pos := m.Map(k)
		r, g, b := rendered[k*3], rendered[k*3+1], rendered[k*3+2]
		r, g, b = lut.Apply(r, g, b)
		off := pos.Pixel * bytesPerPixel
		buf := f.channels[pos.Channel]
		buf[off], buf[off+1], buf[off+2] = r, g, b
	}
}

// Channels returns the built per-channel buffers for handing to a Sink.
func (f *Frame) Channels() [NumChannels][]byte {
	return f.channels
}

// Recorder is an in-memory Sink test double that retains a copy of the
// last Show call, used by scheduler tests that need to assert on
// transmitted pixels without real hardware, and by cmd/rgbctrld as the
// sink when no SPI ports are configured.
type Recorder struct {
	Last  [NumChannels][]byte
	Calls int
}

func (r *Recorder) Show(channels [NumChannels][]byte) error {
	for i, ch := range channels {
		r.Last[i] = append([]byte(nil), ch...)
	}
	r.Calls++
	return nil
}
