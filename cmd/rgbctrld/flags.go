// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type cliFlags struct {
	udpPort  uint16
	httpAddr string
	httpBase string
	psk      string
	stateDir string
	spiPort  [4]string
	smbus    [2]string
	help     bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := pflag.NewFlagSet("rgbctrld", pflag.ContinueOnError)

	udpPort := fs.Uint16P("udp-port", "u", 7777, "UDP control-plane port.")
	httpAddr := fs.String("http-addr", ":8080", "Address for the fallback HTTP surface.")
	httpBase := fs.String("http-base", "/config", "Base path for the HTTP fallback surface.")
	psk := fs.StringP("psk", "k", "", "Pre-shared key required on JSON control-plane ops (empty disables auth).")
	stateDir := fs.StringP("state-dir", "s", "./state", "Directory backing the NVS emulation.")
	ch1 := fs.String("ch1", "", "SPI port name driving CH1 (empty uses the in-memory test sink).")
	ch2 := fs.String("ch2", "", "SPI port name driving CH2.")
	ch3 := fs.String("ch3", "", "SPI port name driving CH3.")
	ch4 := fs.String("ch4", "", "SPI port name driving CH4.")
	ch5 := fs.String("ch5", "", "I2C bus name enabling the CH5 status-bar telemetry reader (e.g. /dev/i2c-1); empty disables it.")
	ch6 := fs.String("ch6", "", "I2C bus name enabling the CH6 status-bar telemetry reader; empty disables it.")
	help := fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "rgbctrld: networked addressable-LED ring controller daemon")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &cliFlags{
		udpPort:  *udpPort,
		httpAddr: *httpAddr,
		httpBase: *httpBase,
		psk:      *psk,
		stateDir: *stateDir,
		spiPort:  [4]string{*ch1, *ch2, *ch3, *ch4},
		smbus:    [2]string{*ch5, *ch6},
		help:     *help,
	}, nil
}
