// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbconfig

import (
	"encoding/json"

	"github.com/Darkone83/XBOX-RGB/internal/version"
)

// wireConfig mirrors the config JSON in spec §6. Every field is a pointer
// or a slice: encoding/json leaves absent-key fields nil, which is exactly
// "missing field, leave current value" per the parse policy in spec §4.7.
// count and reverse are slices rather than fixed arrays so a shorter JSON
// array decodes to only the indices it supplies.
type wireConfig struct {
	Count        []uint16 `json:"count"`
	Brightness   *uint8   `json:"brightness"`
	Mode         *uint8   `json:"mode"`
	Speed        *uint8   `json:"speed"`
	Intensity    *uint8   `json:"intensity"`
	Width        *uint8   `json:"width"`
	ColorA       *uint32  `json:"colorA"`
	ColorB       *uint32  `json:"colorB"`
	ColorC       *uint32  `json:"colorC"`
	ColorD       *uint32  `json:"colorD"`
	PaletteCount *uint8   `json:"paletteCount"`
	ColorTempK   *uint16  `json:"colorTempK"`
	ResumeOnBoot *bool    `json:"resumeOnBoot"`
	EnableCPU    *bool    `json:"enableCpu"`
	EnableFan    *bool    `json:"enableFan"`
	Reverse      []bool   `json:"reverse"`
	MasterOff    *bool    `json:"masterOff"`
	CustomSeq    *string  `json:"customSeq"`
	CustomLoop   *bool    `json:"customLoop"`
}

// fullConfig is the superset emitted by toJSON / GET: the persistent subset
// plus the read-only display fields.
type fullConfig struct {
	Count        [4]uint16 `json:"count"`
	Brightness   uint8     `json:"brightness"`
	Mode         uint8     `json:"mode"`
	Speed        uint8     `json:"speed"`
	Intensity    uint8     `json:"intensity"`
	Width        uint8     `json:"width"`
	ColorA       uint32    `json:"colorA"`
	ColorB       uint32    `json:"colorB"`
	ColorC       uint32    `json:"colorC"`
	ColorD       uint32    `json:"colorD"`
	PaletteCount uint8     `json:"paletteCount"`
	ColorTempK   uint16    `json:"colorTempK"`
	ResumeOnBoot bool      `json:"resumeOnBoot"`
	EnableCPU    bool      `json:"enableCpu"`
	EnableFan    bool      `json:"enableFan"`
	Reverse      [4]bool   `json:"reverse"`
	MasterOff    bool      `json:"masterOff"`
	CustomSeq    string    `json:"customSeq"`
	CustomLoop   bool      `json:"customLoop"`
	InPreview    bool      `json:"inPreview"`
	BuildVersion string    `json:"buildVersion"`
	Copyright    string    `json:"copyright"`
}

// ApplyJSON overlays the fields present in raw onto c, per-index for the
// fixed-size arrays (a shorter-than-4 array in the JSON leaves the tail
// unchanged, per spec §9's resolved open question), then clamps. It never
// mutates c if parsing fails.
func (c *Config) ApplyJSON(raw []byte) error {
	var w wireConfig
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	next := *c
	if w.Count != nil {
		for i := 0; i < len(w.Count) && i < len(next.Count); i++ {
			next.Count[i] = w.Count[i]
		}
	}
	if w.Brightness != nil {
		next.Brightness = *w.Brightness
	}
	if w.Mode != nil {
		next.Mode = Mode(*w.Mode)
	}
	if w.Speed != nil {
		next.Speed = *w.Speed
	}
	if w.Intensity != nil {
		next.Intensity = *w.Intensity
	}
	if w.Width != nil {
		next.Width = *w.Width
	}
	if w.ColorA != nil {
		next.ColorA = *w.ColorA & 0xFFFFFF
	}
	if w.ColorB != nil {
		next.ColorB = *w.ColorB & 0xFFFFFF
	}
	if w.ColorC != nil {
		next.ColorC = *w.ColorC & 0xFFFFFF
	}
	if w.ColorD != nil {
		next.ColorD = *w.ColorD & 0xFFFFFF
	}
	if w.PaletteCount != nil {
		next.PaletteCount = *w.PaletteCount
	}
	if w.ColorTempK != nil {
		next.ColorTempK = *w.ColorTempK
	}
	if w.ResumeOnBoot != nil {
		next.ResumeOnBoot = *w.ResumeOnBoot
	}
	if w.EnableCPU != nil {
		next.EnableCPU = *w.EnableCPU
	}
	if w.EnableFan != nil {
		next.EnableFan = *w.EnableFan
	}
	if w.Reverse != nil {
		for i := 0; i < len(w.Reverse) && i < len(next.Reverse); i++ {
			next.Reverse[i] = w.Reverse[i]
		}
	}
	if w.MasterOff != nil {
		next.MasterOff = *w.MasterOff
	}
	if w.CustomSeq != nil {
		next.CustomSeq = *w.CustomSeq
	}
	if w.CustomLoop != nil {
		next.CustomLoop = *w.CustomLoop
	}
	next.Clamp()
	*c = next
	return nil
}

// ToJSON serializes the full record (persistent subset plus display-only
// fields), excluding internal scheduler state, per spec §4.7.
func (c Config) ToJSON() ([]byte, error) {
	return json.Marshal(fullConfig{
		Count:        c.Count,
		Brightness:   c.Brightness,
		Mode:         uint8(c.Mode),
		Speed:        c.Speed,
		Intensity:    c.Intensity,
		Width:        c.Width,
		ColorA:       c.ColorA,
		ColorB:       c.ColorB,
		ColorC:       c.ColorC,
		ColorD:       c.ColorD,
		PaletteCount: c.PaletteCount,
		ColorTempK:   c.ColorTempK,
		ResumeOnBoot: c.ResumeOnBoot,
		EnableCPU:    c.EnableCPU,
		EnableFan:    c.EnableFan,
		Reverse:      c.Reverse,
		MasterOff:    c.MasterOff,
		CustomSeq:    c.CustomSeq,
		CustomLoop:   c.CustomLoop,
		InPreview:    c.InPreview,
		BuildVersion: version.String(),
		Copyright:    version.Copyright,
	})
}

// toPersistentJSON serializes only the persisted subset (excluding
// inPreview, buildVersion, copyright), for NVS storage per spec §6.
func (c Config) toPersistentJSON() ([]byte, error) {
	w := wireConfig{
		Count:        c.Count[:],
		Brightness:   &c.Brightness,
		ColorA:       &c.ColorA,
		ColorB:       &c.ColorB,
		ColorC:       &c.ColorC,
		ColorD:       &c.ColorD,
		PaletteCount: &c.PaletteCount,
		ColorTempK:   &c.ColorTempK,
		ResumeOnBoot: &c.ResumeOnBoot,
		EnableCPU:    &c.EnableCPU,
		EnableFan:    &c.EnableFan,
		Reverse:      c.Reverse[:],
		MasterOff:    &c.MasterOff,
		CustomSeq:    &c.CustomSeq,
		CustomLoop:   &c.CustomLoop,
	}
	mode := uint8(c.Mode)
	w.Mode = &mode
	w.Speed = &c.Speed
	w.Intensity = &c.Intensity
	w.Width = &c.Width
	return json.Marshal(w)
}
