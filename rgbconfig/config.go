// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgbconfig implements the Config Store (spec §4.7): the single
// source-of-truth configuration record, its validation/clamping/JSON
// serialization, and NVS-backed persistence.
package rgbconfig

import "github.com/Darkone83/XBOX-RGB/ring"

// Config is the single process-wide configuration record described in
// spec §3. Field names intentionally match the wire JSON (see ToJSON).
type Config struct {
	Count [ring.NumChannels]uint16

	Brightness uint8
	Mode       Mode
	Speed      uint8
	Intensity  uint8
	Width      uint8

	ColorA, ColorB, ColorC, ColorD uint32

	PaletteCount uint8

	// ColorTempK is the white-balance color temperature in Kelvin fed to
	// colorpipeline.NewWhiteBalance. Optional, defaulted; at 6500K the
	// derived gains are ~(1,1,1) and rendering matches the undecorated
	// linear pipeline.
	ColorTempK uint16

	ResumeOnBoot bool
	EnableCPU    bool
	EnableFan    bool

	Reverse [ring.NumChannels]bool

	MasterOff bool

	CustomSeq  string
	CustomLoop bool

	// InPreview is derived, non-persisted: true between a preview apply and
	// the next save/reset.
	InPreview bool
}

// Default colors, per spec §3's default table (red / amber / green / blue).
const (
	defaultColorA = 0xFF0000
	defaultColorB = 0xFFBF00
	defaultColorC = 0x00FF00
	defaultColorD = 0x0000FF
)

// Default returns the default configuration record.
func Default() Config {
	return Config{
		Count:        [ring.NumChannels]uint16{50, 50, 50, 50},
		Brightness:   180,
		Mode:         ModeRainbow,
		Speed:        128,
		Intensity:    128,
		Width:        4,
		ColorA:       defaultColorA,
		ColorB:       defaultColorB,
		ColorC:       defaultColorC,
		ColorD:       defaultColorD,
		PaletteCount: 2,
		ColorTempK:   6500,
		ResumeOnBoot: true,
		EnableCPU:    true,
		EnableFan:    true,
		Reverse:      [ring.NumChannels]bool{true, false, false, true},
		MasterOff:    false,
		CustomSeq:    "[]",
		CustomLoop:   true,
	}
}

// RingLen returns sum(Count[i]), the derived ring length.
func (c Config) RingLen() int {
	n := 0
	for _, v := range c.Count {
		n += int(v)
	}
	return n
}

// Clamp enforces every numeric/enum range in spec §3 in place. It never
// rejects a value, only folds it into range, matching the "clamp not
// reject" policy except for playlist-step fields marked mandatory.
func (c *Config) Clamp() {
	for i := range c.Count {
		if c.Count[i] > ring.MaxPerChannel {
			c.Count[i] = ring.MaxPerChannel
		}
	}
	c.Brightness = clampU8(c.Brightness, 1, 255)
	c.Mode = c.Mode.Clamp()
	// Speed and Intensity use the full 0..255 range, nothing to clamp.
	c.Width = clampU8(c.Width, 1, 255)
	c.PaletteCount = clampU8(c.PaletteCount, 1, 4)
	if c.ColorTempK == 0 {
		c.ColorTempK = 6500
	}
	c.ColorTempK = clampU16(c.ColorTempK, 1000, 40000)
}

func clampU16(v, lo, hi uint16) uint16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampU8(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RingMapper builds a ring.Mapper from this config's counts and reverse
// flags, for use by the render path.
func (c Config) RingMapper() ring.Mapper {
	var counts [ring.NumChannels]int
	for i, v := range c.Count {
		counts[i] = int(v)
	}
	var m ring.Mapper
	m.Build(counts, c.Reverse)
	return m
}
