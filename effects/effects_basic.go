// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package effects

import (
	"math"

	"github.com/Darkone83/XBOX-RGB/colorpipeline"
)

func solid(p Params) []colorpipeline.Linear {
	out := newFrame(p.Len)
	for i := range out {
		out[i] = p.ColorA
	}
	return out
}

func breathe(p Params, ctx Context, st *State) []colorpipeline.Linear {
	freq := speedFreq(p.Speed, 0.08, 1.2)
	st.breathT += ctx.DtSec * freq
	const floor = 0.10
	raw := 0.5 + 0.5*math.Sin(2*math.Pi*st.breathT)
	level := floor + (1-floor)*raw
	// Low-pass the level itself slightly to hide frame-step artifacts on
	// slow displays, matching the "smoothed" note in spec §4.4.
	const alpha = 0.35
	smoothed := st.breathT2*(1-alpha) + level*alpha
	st.breathT2 = smoothed

	out := newFrame(p.Len)
	c := p.ColorA.Scale(smoothed)
	for i := range out {
		out[i] = c
	}
	return out
}

func colorWipe(p Params, ctx Context, st *State) []colorpipeline.Linear {
	freq := speedFreq(p.Speed, 0.2, 8)
	st.headPos += ctx.DtSec * freq * float64(p.Len)
	if p.Len > 0 {
		st.headPos = math.Mod(st.headPos, float64(p.Len))
	}
	phase := st.headPos / math.Max(1, float64(p.Len))
	motion := colorpipeline.MotionPalette(p.ColorA)
	head := motion.Sample(phase, 200)

	out := newFrame(p.Len)
	trailLen := 1 + int(p.Width)
	for t := 0; t < trailLen && t < p.Len; t++ {
		idx := int(st.headPos) - t
		idx = ((idx % p.Len) + p.Len) % p.Len
		fade := 1 - float64(t)/float64(trailLen)
		out[idx] = head.Scale(fade * fade)
	}
	return out
}

func larson(p Params, ctx Context, st *State, prev []colorpipeline.Linear) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	if st.larsonDir == 0 {
		st.larsonDir = 1
	}
	freq := speedFreq(p.Speed, 0.15, 6)
	st.headPos += ctx.DtSec * freq * float64(p.Len) * st.larsonDir
	if st.headPos >= float64(p.Len-1) {
		st.headPos = float64(p.Len - 1)
		st.larsonDir = -1
	} else if st.headPos <= 0 {
		st.headPos = 0
		st.larsonDir = 1
	}

	dimFactor := 1 - float64(p.Intensity)/255*0.85
	if len(prev) == p.Len {
		for i, c := range prev {
			out[i] = c.Scale(dimFactor)
		}
	}

	width := math.Max(1, float64(p.Width))
	for i := 0; i < p.Len; i++ {
		d := math.Abs(float64(i) - st.headPos)
		if d > width {
			continue
		}
		falloff := 1 - d/width
		out[i] = out[i].Max(p.ColorA.Scale(falloff))
	}
	return out
}

func rainbow(p Params, ctx Context) []colorpipeline.Linear {
	freq := speedFreq(p.Speed, 0.02, 1.5)
	offset := math.Mod(float64(ctx.FrameCount)*freq/60, 1)
	out := newFrame(p.Len)
	for i := range out {
		h := math.Mod(float64(i)/math.Max(1, float64(p.Len))+offset, 1)
		out[i] = colorpipeline.HSV(h, 1, 1)
	}
	return out
}

func theaterChase(p Params, ctx Context, prev []colorpipeline.Linear) []colorpipeline.Linear {
	out := newFrame(p.Len)
	gap := int(p.Width)
	if gap < 1 {
		gap = 1
	}
	freq := speedFreq(p.Speed, 0.5, 15)
	offset := int(float64(ctx.FrameCount) * freq / 10)

	dimFactor := 0.55
	if len(prev) == p.Len {
		for i, c := range prev {
			out[i] = c.Scale(dimFactor)
		}
	}
	for i := 0; i < p.Len; i++ {
		if ((i + offset) % gap) == 0 {
			out[i] = out[i].Max(p.Palette.Sample(float64(i)/math.Max(1, float64(p.Len)), p.Intensity))
		}
	}
	return out
}
