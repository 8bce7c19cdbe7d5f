// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbconfig

// Mode enumerates the 15 effect programs, per spec §4.4.
type Mode uint8

const (
	ModeSolid Mode = iota
	ModeBreathe
	ModeColorWipe
	ModeLarson
	ModeRainbow
	ModeTheaterChase
	ModeTwinkle
	ModeComet
	ModeMeteor
	ModeClockSpin
	ModePlasma
	ModeFire
	ModePaletteCycle
	ModePaletteChase
	ModeCustom // playlist
)

// ModeCount is the number of valid Mode values.
const ModeCount = ModeCustom + 1

// Clamp folds an out-of-range mode into [0, ModeCount) per spec §4.7.
func (m Mode) Clamp() Mode {
	if uint8(m) >= uint8(ModeCount) {
		return 0
	}
	return m
}

// Valid reports whether m is in [0, ModeCount).
func (m Mode) Valid() bool {
	return uint8(m) < uint8(ModeCount)
}
