// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package effects

import (
	"github.com/Darkone83/XBOX-RGB/colorpipeline"
	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// Render dispatches a single frame by mode. masterOff forces an all-zero
// frame regardless of mode, per spec §4.4's frame selection and property 4.
// prev is the previous frame (same length as params.Len, or nil on the
// first call); an unknown mode is a no-op that returns prev unchanged. mode
// Custom/Playlist is never dispatched here: the Playlist Engine calls
// Render per-step with mode<ModeCustom instead (see package playlist).
func Render(mode rgbconfig.Mode, params Params, masterOff bool, ctx Context, state *State, prev []colorpipeline.Linear) []colorpipeline.Linear {
	state.Resize(params.Len)
	if masterOff || params.Len == 0 {
		return make([]colorpipeline.Linear, params.Len)
	}
	switch mode {
	case rgbconfig.ModeSolid:
		return solid(params)
	case rgbconfig.ModeBreathe:
		return breathe(params, ctx, state)
	case rgbconfig.ModeColorWipe:
		return colorWipe(params, ctx, state)
	case rgbconfig.ModeLarson:
		return larson(params, ctx, state, prev)
	case rgbconfig.ModeRainbow:
		return rainbow(params, ctx)
	case rgbconfig.ModeTheaterChase:
		return theaterChase(params, ctx, prev)
	case rgbconfig.ModeTwinkle:
		return twinkle(params, ctx, state)
	case rgbconfig.ModeComet:
		return comet(params, ctx, state, prev)
	case rgbconfig.ModeMeteor:
		return meteorShower(params, ctx, state)
	case rgbconfig.ModeClockSpin:
		return clockSpin(params, ctx, state)
	case rgbconfig.ModePlasma:
		return plasma(params, ctx, state)
	case rgbconfig.ModeFire:
		return fire(params, ctx, state)
	case rgbconfig.ModePaletteCycle:
		return paletteCycle(params, ctx)
	case rgbconfig.ModePaletteChase:
		return paletteChase(params, ctx)
	default:
		if prev != nil && len(prev) == params.Len {
			return prev
		}
		return make([]colorpipeline.Linear, params.Len)
	}
}

func newFrame(n int) []colorpipeline.Linear {
	return make([]colorpipeline.Linear, n)
}
