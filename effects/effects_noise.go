// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package effects

import (
	"math"

	"github.com/Darkone83/XBOX-RGB/colorpipeline"
)

func plasma(p Params, ctx Context, st *State) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	freq := speedFreq(p.Speed, 0.05, 2)
	st.plasmaT += ctx.DtSec * freq
	sat := float64(p.Intensity) / 255

	for i := 0; i < p.Len; i++ {
		angle := 2 * math.Pi * float64(i) / float64(p.Len)
		f1 := math.Sin(angle*3 + st.plasmaT*2.1)
		f2 := math.Sin(angle*5 - st.plasmaT*1.3 + 1.7)
		f3 := math.Sin(angle*7 + st.plasmaT*0.7)
		hue := (f1+f2+f3)*0.5 + 0.5
		hue = math.Mod(hue, 1)
		if hue < 0 {
			hue++
		}
		sparkle := 0.5 + 0.5*math.Sin(angle*23+st.plasmaT*9)
		value := 0.6 + 0.4*sparkle*sat
		out[i] = colorpipeline.HSV(hue, clamp01(sat), clamp01(value))
	}
	return out
}

func fire(p Params, ctx Context, st *State) []colorpipeline.Linear {
	out := newFrame(p.Len)
	n := p.Len
	if n == 0 {
		return out
	}
	cool := 50 - float64(p.Intensity)*36/255
	if cool < 0 {
		cool = 0
	}
	for i := 0; i < n; i++ {
		drop := st.rng.Float64() * cool
		st.heat[i] -= drop
		if st.heat[i] < 0 {
			st.heat[i] = 0
		}
	}

	diffused := make([]float64, n)
	for i := 0; i < n; i++ {
		l := st.heat[(i-1+n)%n]
		c := st.heat[i]
		r := st.heat[(i+1)%n]
		diffused[i] = (l + c + r) / 3
	}
	copy(st.heat[:n], diffused)

	sparks := 1 + int(p.Speed)/64
	for i := 0; i < sparks; i++ {
		idx := st.rng.Intn(n)
		st.heat[idx] += 180 + st.rng.Float64()*(275-180)
		if st.heat[idx] > 255 {
			st.heat[idx] = 255
		}
	}

	for i := 0; i < n; i++ {
		out[i] = heatToColor(st.heat[i])
	}
	return out
}

// heatToColor maps a heat value (0..255, biased by +65 before thresholding)
// to a color via the piecewise fire ramp in spec §4.4: red ramp 0..35,
// red->yellow 35..160, yellow->white 160..255.
func heatToColor(heat float64) colorpipeline.Linear {
	t := heat + 65
	if t > 255 {
		t = 255
	}
	switch {
	case t <= 35:
		r := t / 35
		return colorpipeline.Linear{R: r, G: 0, B: 0}
	case t <= 160:
		f := (t - 35) / (160 - 35)
		return colorpipeline.Linear{R: 1, G: f, B: 0}
	default:
		f := (t - 160) / (255 - 160)
		return colorpipeline.Linear{R: 1, G: 1, B: f}
	}
}

func paletteCycle(p Params, ctx Context) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	freq := speedFreq(p.Speed, 0.02, 2)
	offset := math.Mod(float64(ctx.FrameCount)*freq/60, 1)
	for i := 0; i < p.Len; i++ {
		x := float64(i)/float64(p.Len) + offset
		out[i] = p.Palette.Sample(x, p.Intensity)
	}
	return out
}

func paletteChase(p Params, ctx Context) []colorpipeline.Linear {
	out := newFrame(p.Len)
	n := p.Palette.N
	if p.Len == 0 || n <= 0 {
		return out
	}
	width := int(p.Width)
	if width < 1 {
		width = 1
	}
	freq := speedFreq(p.Speed, 0.1, 6)
	offset := int(float64(ctx.FrameCount) * freq)

	soften := float64(p.Intensity) / 255
	for i := 0; i < p.Len; i++ {
		block := ((i + offset) / width) % n
		if block < 0 {
			block += n
		}
		c := p.Palette.Colors[block]
		within := (i + offset) % width
		if within < 0 {
			within += width
		}
		edgeDist := math.Min(float64(within), float64(width-1-within))
		edgeFactor := 1.0
		if width > 1 {
			edgeFactor = 1 - soften*(1-edgeDist/float64(width-1))
		}
		out[i] = c.Scale(clamp01(edgeFactor))
	}
	return out
}
