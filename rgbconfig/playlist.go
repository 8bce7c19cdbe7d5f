// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbconfig

import "encoding/json"

// Step is one element of the parsed customSeq array (spec §3's "Playlist
// step"). Optional override fields are nil when absent from the JSON.
type Step struct {
	Mode         Mode
	DurationMS   int
	Speed        *uint8
	Intensity    *uint8
	Width        *uint8
	PaletteCount *uint8
	ColorA       *uint32
	ColorB       *uint32
	ColorC       *uint32
	ColorD       *uint32
}

type wireStep struct {
	Mode         *uint8  `json:"mode"`
	Duration     *int    `json:"duration"`
	Speed        *uint8  `json:"speed"`
	Intensity    *uint8  `json:"intensity"`
	Width        *uint8  `json:"width"`
	PaletteCount *uint8  `json:"paletteCount"`
	ColorA       *uint32 `json:"colorA"`
	ColorB       *uint32 `json:"colorB"`
	ColorC       *uint32 `json:"colorC"`
	ColorD       *uint32 `json:"colorD"`
}

// ParseCustomSeq parses a customSeq JSON array literal into validated
// steps. Invalid steps (missing mandatory mode/duration, duration out of
// [1,60000], or mode >= ModeCustom) are silently dropped per spec §4.5. An
// empty or unparseable array yields a nil, non-error slice so callers
// render black rather than propagating the failure into rendering.
func ParseCustomSeq(raw string) []Step {
	var wire []wireStep
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil
	}
	steps := make([]Step, 0, len(wire))
	for _, w := range wire {
		if w.Mode == nil || w.Duration == nil {
			continue
		}
		if *w.Duration < 1 || *w.Duration > 60000 {
			continue
		}
		mode := Mode(*w.Mode)
		if mode >= ModeCustom || !mode.Valid() {
			mode = ModeSolid // Custom (or any out-of-range mode) inside a step is coerced to 0.
		}
		s := Step{
			Mode:         mode,
			DurationMS:   *w.Duration,
			Speed:        w.Speed,
			Intensity:    w.Intensity,
			Width:        w.Width,
			PaletteCount: w.PaletteCount,
			ColorA:       w.ColorA,
			ColorB:       w.ColorB,
			ColorC:       w.ColorC,
			ColorD:       w.ColorD,
		}
		steps = append(steps, s)
	}
	return steps
}

// Apply overlays the step's optional overrides onto a scratch copy of base,
// leaving base untouched, per spec §4.5 step 2.
func (s Step) Apply(base Config) Config {
	scratch := base
	scratch.Mode = s.Mode
	if s.Speed != nil {
		scratch.Speed = *s.Speed
	}
	if s.Intensity != nil {
		scratch.Intensity = *s.Intensity
	}
	if s.Width != nil {
		scratch.Width = *s.Width
	}
	if s.PaletteCount != nil {
		scratch.PaletteCount = *s.PaletteCount
	}
	if s.ColorA != nil {
		scratch.ColorA = *s.ColorA & 0xFFFFFF
	}
	if s.ColorB != nil {
		scratch.ColorB = *s.ColorB & 0xFFFFFF
	}
	if s.ColorC != nil {
		scratch.ColorC = *s.ColorC & 0xFFFFFF
	}
	if s.ColorD != nil {
		scratch.ColorD = *s.ColorD & 0xFFFFFF
	}
	scratch.Clamp()
	return scratch
}
