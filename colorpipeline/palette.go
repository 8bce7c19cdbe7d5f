// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package colorpipeline

import "math"

// Palette is up to 4 colors in linear light, with n active entries
// (paletteCount, 1..4).
type Palette struct {
	Colors [4]Linear
	N      int
}

// Sample implements spec §4.3's palette sampling: x in [0,1), intensity in
// [0,255]. n=1 always returns Colors[0] bit-exact; intensity=0 is a hard
// step with no blending.
func (p Palette) Sample(x float64, intensity uint8) Linear {
	if p.N <= 1 {
		return p.Colors[0]
	}
	n := p.N
	_, frac := math.Modf(x)
	if frac < 0 {
		frac++
	}
	pos := frac * float64(n)
	i0 := int(math.Floor(pos)) % n
	if i0 < 0 {
		i0 += n
	}
	i1 := (i0 + 1) % n
	t := pos - math.Floor(pos)
	if intensity == 0 {
		return p.Colors[i0]
	}
	blend := t * (float64(intensity) / 255)
	a, b := p.Colors[i0], p.Colors[i1]
	return Linear{
		R: a.R + (b.R-a.R)*blend,
		G: a.G + (b.G-a.G)*blend,
		B: a.B + (b.B-a.B)*blend,
	}
}

// MotionPalette derives 3 hue-rotated companions of a single color for
// effects that need "motion color" but only a solid colorA is configured.
// Hue is rotated by +0.08, +0.33, +0.58 with small saturation/value
// perturbations, per spec §4.3.
func MotionPalette(base Linear) Palette {
	h, s, v := rgbToHSV(base)
	mk := func(dh, ds, dv float64) Linear {
		nh := math.Mod(h+dh, 1)
		if nh < 0 {
			nh++
		}
		ns := clamp01(s + ds)
		nv := clamp01(v + dv)
		return hsvToRGB(nh, ns, nv)
	}
	return Palette{
		Colors: [4]Linear{
			base,
			mk(0.08, -0.05, 0.02),
			mk(0.33, 0.03, -0.03),
			mk(0.58, -0.02, 0.04),
		},
		N: 4,
	}
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

func rgbToHSV(c Linear) (h, s, v float64) {
	maxC := math.Max(c.R, math.Max(c.G, c.B))
	minC := math.Min(c.R, math.Min(c.G, c.B))
	v = maxC
	d := maxC - minC
	if maxC == 0 {
		s = 0
	} else {
		s = d / maxC
	}
	if d == 0 {
		h = 0
		return
	}
	switch maxC {
	case c.R:
		h = math.Mod((c.G-c.B)/d, 6)
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	h /= 6
	if h < 0 {
		h++
	}
	return
}

func hsvToRGB(h, s, v float64) Linear {
	if s <= 0 {
		return Linear{v, v, v}
	}
	h6 := h * 6
	i := int(math.Floor(h6))
	f := h6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i % 6 {
	case 0:
		return Linear{v, t, p}
	case 1:
		return Linear{q, v, p}
	case 2:
		return Linear{p, v, t}
	case 3:
		return Linear{p, q, v}
	case 4:
		return Linear{t, p, v}
	default:
		return Linear{v, p, q}
	}
}

// HSV exposes the hue/saturation/value decomposition for effects (e.g.
// Rainbow, Plasma) that want to synthesize colors directly rather than
// sample a configured palette.
func HSV(h, s, v float64) Linear {
	return hsvToRGB(math.Mod(h, 1), clamp01(s), clamp01(v))
}

// SoftDot splats color at fractional ring position pos onto dst using
// max-blend, per spec §4.3: weight 1-frac(pos) at floor(pos), frac(pos) at
// floor(pos)+1, wrapping around the ring of length len(dst).
func SoftDot(dst []Linear, pos float64, c Linear) {
	n := len(dst)
	if n == 0 {
		return
	}
	base := math.Floor(pos)
	frac := pos - base
	i0 := int(math.Mod(base, float64(n)))
	if i0 < 0 {
		i0 += n
	}
	i1 := (i0 + 1) % n
	dst[i0] = dst[i0].Max(c.Scale(1 - frac))
	dst[i1] = dst[i1].Max(c.Scale(frac))
}
