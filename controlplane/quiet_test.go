// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuietWindowActiveThenExpires(t *testing.T) {
	var q QuietWindow
	t0 := time.Unix(0, 0)
	assert.False(t, q.Active(t0))

	q.Enter(t0, 10*time.Millisecond)
	assert.True(t, q.Active(t0.Add(5*time.Millisecond)))
	assert.False(t, q.Active(t0.Add(11*time.Millisecond)))
}

func TestQuietWindowExtendsNeverShortens(t *testing.T) {
	var q QuietWindow
	t0 := time.Unix(0, 0)
	q.Enter(t0, 20*time.Millisecond)
	q.Enter(t0, 5*time.Millisecond) // shorter request does not shrink the window
	assert.True(t, q.Active(t0.Add(15*time.Millisecond)))
}
