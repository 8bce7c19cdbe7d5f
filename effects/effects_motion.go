// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package effects

import (
	"math"

	"github.com/Darkone83/XBOX-RGB/colorpipeline"
)

func twinkle(p Params, ctx Context, st *State) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	freq := speedFreq(p.Speed, 1, 60)
	advance := freq * ctx.DtSec * 255 * (1 + float64(p.Width)/8)
	rate := 1 + float64(p.Intensity)*float64(p.Len)/(255*30)
	spawns := int(rate*ctx.DtSec*60 + 0.5)

	for i := 0; i < p.Len; i++ {
		ph := st.twinklePhase[i]
		if ph == 0 {
			continue
		}
		next := float64(ph) + advance
		if next >= 256 {
			st.twinklePhase[i] = 0
			continue
		}
		st.twinklePhase[i] = uint8(next)
		x := next / 255
		level := math.Sin(math.Pi * x)
		level = level * level * level
		out[i] = p.Palette.Sample(float64(i)/float64(p.Len), p.Intensity).Scale(clamp01(level))
	}

	for n := 0; n < spawns; n++ {
		idx := st.rng.Intn(p.Len)
		if st.twinklePhase[idx] == 0 {
			st.twinklePhase[idx] = 1
		}
	}
	return out
}

func comet(p Params, ctx Context, st *State, prev []colorpipeline.Linear) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	freq := speedFreq(p.Speed, 0.3, 10)
	st.headPos += ctx.DtSec * freq * float64(p.Len)
	st.headPos = math.Mod(st.headPos, float64(p.Len))
	phase := st.headPos / float64(p.Len)
	head := colorpipeline.MotionPalette(p.ColorA).Sample(phase, 220)

	dimFactor := 0.80
	if len(prev) == p.Len {
		for i, c := range prev {
			out[i] = c.Scale(dimFactor)
		}
	}
	tailLen := 2 + 2*int(p.Width)
	for t := 0; t < tailLen; t++ {
		idx := int(st.headPos) - t
		idx = ((idx % p.Len) + p.Len) % p.Len
		fall := 1 - float64(t)/float64(tailLen)
		fall *= fall
		out[idx] = out[idx].Max(head.Scale(fall))
	}
	return out
}

func meteorShower(p Params, ctx Context, st *State) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	active := 1 + int(p.Intensity)*7/255
	if active > maxMeteors {
		active = maxMeteors
	}
	speedMul := 0.5 + (float64(p.Speed)/255)*2.0

	for i := 0; i < active; i++ {
		m := &st.meteors[i]
		if !m.active {
			spawnMeteor(st, m, speedMul)
		}
		m.pos += m.vel * speedMul
		if m.pos-m.length > float64(p.Len) {
			spawnMeteor(st, m, speedMul)
		}
		if st.rng.Float64() < 0.015 {
			base := 0.35 + st.rng.Float64()*(1.60-0.35)
			m.vel = base
			m.length = 2 + st.rng.Float64()*6
		}
		for t := 0.0; t < m.length; t++ {
			idx := int(m.pos-t+float64(p.Len)) % p.Len
			if idx < 0 {
				idx += p.Len
			}
			fall := 1 - t/m.length
			out[idx] = out[idx].Max(p.ColorA.Scale(fall * fall))
		}
	}
	return out
}

func spawnMeteor(st *State, m *meteor, speedMul float64) {
	base := 0.35 + st.rng.Float64()*(1.60-0.35)
	m.pos = -st.rng.Float64() * 10
	m.vel = base
	m.length = 2 + st.rng.Float64()*6
	m.active = true
}

func clockSpin(p Params, ctx Context, st *State) []colorpipeline.Linear {
	out := newFrame(p.Len)
	if p.Len == 0 {
		return out
	}
	for i := range out {
		out[i] = p.ColorB
	}
	freq := speedFreq(p.Speed, 0.1, 4)
	st.clockAngle += ctx.DtSec * freq * float64(p.Len)
	st.clockAngle = math.Mod(st.clockAngle, float64(p.Len))

	center := int(st.clockAngle)
	for d := -int(p.Width); d <= int(p.Width); d++ {
		idx := ((center+d)%p.Len + p.Len) % p.Len
		out[idx] = p.ColorA
	}
	return out
}
