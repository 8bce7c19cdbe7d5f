// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 7777, f.udpPort)
	assert.Equal(t, "/config", f.httpBase)
	assert.Equal(t, "", f.psk)
	assert.False(t, f.help)
}

func TestParseFlagsOverrides(t *testing.T) {
	f, err := parseFlags([]string{"--udp-port", "9999", "--psk", "topsecret", "--ch1", "SPI0.0"})
	require.NoError(t, err)
	assert.EqualValues(t, 9999, f.udpPort)
	assert.Equal(t, "topsecret", f.psk)
	assert.Equal(t, "SPI0.0", f.spiPort[0])
	assert.Equal(t, "", f.spiPort[1])
	assert.Equal(t, "", f.smbus[0])
	assert.Equal(t, "", f.smbus[1])
}

func TestParseFlagsSMBusEnable(t *testing.T) {
	f, err := parseFlags([]string{"--ch5", "/dev/i2c-1", "--ch6", "/dev/i2c-2"})
	require.NoError(t, err)
	assert.Equal(t, "/dev/i2c-1", f.smbus[0])
	assert.Equal(t, "/dev/i2c-2", f.smbus[1])
}
