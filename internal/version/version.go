// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package version carries the build-time identification strings the Config
// Store serializes as read-only display fields.
package version

// Build and Copyright are overridden at link time via -ldflags, mirroring
// how the teacher stamps periph's own version information.
var (
	Build     = "dev"
	Copyright = "(c) 2026 XBOX-RGB project"
)

// String returns the free-form "ver" string emitted in discover replies.
// Clients must treat it as informational only (spec §9 open question).
func String() string {
	return Build
}
