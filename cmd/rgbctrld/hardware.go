// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/experimental/devices/nrzled"
	"periph.io/x/periph/host"

	"github.com/Darkone83/XBOX-RGB/pixelsink"
)

// nrzledSink wraps one nrzled.Dev per channel (NRZ-encoded addressable
// strips over SPI, periph.io's own driver for WS2812B-family LEDs) to
// satisfy pixelsink.Sink. Channels left unconfigured keep a nil Dev and
// simply drop their buffer, so a partially-wired rig still runs.
type nrzledSink struct {
	devs [pixelsink.NumChannels]*nrzled.Dev
	log  *log.Logger
}

// openHardwareSink opens one SPI port per configured channel name and
// wraps it with periph.io's nrzled driver at 2.5MHz (the fixed SPI-bitbang
// rate nrzled.NewSPI requires), per the driver's own documented
// constraints. Channels whose port name is empty are left unconnected.
func openHardwareSink(ports [pixelsink.NumChannels]string, numPixels [pixelsink.NumChannels]int, logger *log.Logger) (*nrzledSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	s := &nrzledSink{log: logger}
	for ch, name := range ports {
		if name == "" {
			continue
		}
		p, err := spireg.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening spi port for ch%d (%s): %w", ch+1, name, err)
		}
		dev, err := nrzled.NewSPI(p, &nrzled.Opts{
			NumPixels: numPixels[ch],
			Channels:  3,
			Freq:      2500 * physic.KiloHertz,
		})
		if err != nil {
			return nil, fmt.Errorf("opening nrzled strip for ch%d: %w", ch+1, err)
		}
		s.devs[ch] = dev
	}
	return s, nil
}

// Show implements pixelsink.Sink by writing each channel's RGB24 buffer to
// its strip, ignoring channels with no attached device.
func (s *nrzledSink) Show(channels [pixelsink.NumChannels][]byte) error {
	var firstErr error
	for ch, dev := range s.devs {
		if dev == nil {
			continue
		}
		if _, err := dev.Write(channels[ch]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ch%d write: %w", ch+1, err)
			if s.log != nil {
				s.log.Error("strip write failed", "channel", ch+1, "err", err)
			}
		}
	}
	return firstErr
}
