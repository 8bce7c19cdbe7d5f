// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package colorpipeline implements the linear-light color pipeline variant
// from spec §4.3: a float shadow buffer that effects write into, white
// balance, optional saturation, Reinhard tone-mapping, gamma encode, and
// ordered temporal dither before a frame is handed to the Pixel Sink.
package colorpipeline

import (
	"math"

	"github.com/maruel/temperature"
)

// Linear is a single pixel in linear-light space, components in [0, 1].
// Values may transiently exceed 1 before tone-mapping.
type Linear struct {
	R, G, B float64
}

// Add returns the component-wise sum, used by effects that accumulate
// multiple contributions (e.g. overlapping meteor tails) before tone-map.
func (c Linear) Add(o Linear) Linear {
	return Linear{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies all channels by f.
func (c Linear) Scale(f float64) Linear {
	return Linear{c.R * f, c.G * f, c.B * f}
}

// Max returns the component-wise max of c and o, used by soft-dot splatting
// so a pixel keeps whichever of two overlapping contributions is brighter.
func (c Linear) Max(o Linear) Linear {
	return Linear{math.Max(c.R, o.R), math.Max(c.G, o.G), math.Max(c.B, o.B)}
}

// FromSRGB24 decodes a 0xRRGGBB sRGB-encoded color into linear light.
func FromSRGB24(rgb uint32) Linear {
	r := float64((rgb>>16)&0xFF) / 255
	g := float64((rgb>>8)&0xFF) / 255
	b := float64(rgb&0xFF) / 255
	return Linear{srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// WhiteBalance holds the per-channel gains applied before tone-mapping,
// along with the color temperature (Kelvin) they were derived from. This is
// the §SPEC_FULL "colorTempK" knob: at the default 6500K the gains are
// ~(1,1,1) and behavior matches spec.md's undecorated linear pipeline.
type WhiteBalance struct {
	TempK         uint16
	GainR, GainG, GainB float64
}

// DefaultWhiteBalance is neutral daylight, gains of 1.0.
var DefaultWhiteBalance = WhiteBalance{TempK: 6500, GainR: 1, GainG: 1, GainB: 1}

// NewWhiteBalance derives channel gains for a color temperature in Kelvin
// using the same lookup the teacher's apa102 driver uses for its color-temp
// ramp, normalized so the strongest channel keeps gain 1 (pure scaling down,
// never up, so strips never get driven past full output).
func NewWhiteBalance(kelvin uint16) WhiteBalance {
	r, g, b := temperature.ToRGB(kelvin)
	fr, fg, fb := float64(r)/255, float64(g)/255, float64(b)/255
	m := math.Max(fr, math.Max(fg, fb))
	if m == 0 {
		return WhiteBalance{TempK: kelvin, GainR: 1, GainG: 1, GainB: 1}
	}
	return WhiteBalance{TempK: kelvin, GainR: fr / m, GainG: fg / m, GainB: fb / m}
}

func (wb WhiteBalance) apply(c Linear) Linear {
	return Linear{c.R * wb.GainR, c.G * wb.GainG, c.B * wb.GainB}
}

// Saturate scales a color's distance from its luminance by factor, in linear
// space. factor=1 is a no-op, 0 desaturates to gray, >1 oversaturates.
func Saturate(c Linear, factor float64) Linear {
	lum := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	return Linear{
		lum + (c.R-lum)*factor,
		lum + (c.G-lum)*factor,
		lum + (c.B-lum)*factor,
	}
}

// reinhard tone-maps a single unbounded-above linear channel into [0, 1].
func reinhard(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / (1 + v)
}

// Pipeline owns the linear shadow buffer for the whole ring and the
// motion-smoothing low-pass state, and renders it down to 8-bit sRGB bytes
// ready for the Pixel Sink.
type Pipeline struct {
	WB         WhiteBalance
	Saturation float64 // 1.0 = neutral
	Smoothing  float64 // low-pass alpha, 0 disables, spec suggests ~0.20

	prev []Linear
}

// Render converts frame (linear-light, length L) into dithered 8-bit sRGB
// triples, keyed by frameCount for the ordered dither pattern. The returned
// slice is length 3*len(frame), RGB per pixel.
func (p *Pipeline) Render(frame []Linear, frameCount uint32) []byte {
	if p.Smoothing > 0 {
		if len(p.prev) != len(frame) {
			p.prev = make([]Linear, len(frame))
			copy(p.prev, frame)
		}
		a := p.Smoothing
		for i := range frame {
			p.prev[i] = Linear{
				R: p.prev[i].R*(1-a) + frame[i].R*a,
				G: p.prev[i].G*(1-a) + frame[i].G*a,
				B: p.prev[i].B*(1-a) + frame[i].B*a,
			}
		}
		frame = p.prev
	}

	out := make([]byte, 3*len(frame))
	for i, c := range frame {
		c = p.WB.apply(c)
		if p.Saturation != 1 {
			c = Saturate(c, p.Saturation)
		}
		r := linearToSRGB(reinhard(c.R))
		g := linearToSRGB(reinhard(c.G))
		b := linearToSRGB(reinhard(c.B))
		out[3*i+0] = ditherChannel(r, i, frameCount)
		out[3*i+1] = ditherChannel(g, i*7+1, frameCount)
		out[3*i+2] = ditherChannel(b, i*13+2, frameCount)
	}
	return out
}

// ditherChannel quantizes a [0,1] channel to 8 bits with a ±0.5 LSB ordered
// dither keyed by (pixel index, frame counter), so static low-brightness
// colors don't posterize into visible banding across the strip.
func ditherChannel(v float64, key int, frameCount uint32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	scaled := v * 255
	threshold := orderedThreshold(key, frameCount)
	q := math.Floor(scaled + threshold)
	if q < 0 {
		q = 0
	}
	if q > 255 {
		q = 255
	}
	return byte(q)
}

// orderedThreshold returns a deterministic value in [0, 1) derived from the
// pixel key and frame counter, playing the role of a Bayer-matrix lookup
// without needing one: a cheap multiplicative hash is enough to decorrelate
// neighboring pixels and successive frames.
func orderedThreshold(key int, frameCount uint32) float64 {
	h := uint32(key)*2654435761 + frameCount*40503
	return float64(h&0xFFFF) / 65536
}
