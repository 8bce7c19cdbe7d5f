// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// Priority order: raw-deferred -> reset -> counts -> cfg. Each Process
// call performs at most one of these per spec §4.8.
func TestProcessPriorityOrder(t *testing.T) {
	store, err := rgbconfig.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	p := &Pending{}

	p.QueueConfig([]byte(`{"brightness":99}`), false)
	p.QueueCounts([4]uint16{1, 2, 3, 4})
	p.QueueReset()
	p.QueueDeferred([]byte(`{"brightness":7}`), true)

	// First drain: only the deferred job runs.
	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, uint8(7), store.Snapshot().Brightness)
	assert.Equal(t, [4]uint16{50, 50, 50, 50}, store.Snapshot().Count)

	// Second drain: reset wins over counts/cfg.
	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, uint8(180), store.Snapshot().Brightness) // back to default

	// Third drain: counts.
	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, [4]uint16{1, 2, 3, 4}, store.Snapshot().Count)

	// Fourth drain: the original cfg job.
	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, uint8(99), store.Snapshot().Brightness)

	// Nothing left to do.
	before := store.Snapshot()
	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, before, store.Snapshot())
}

func TestQueueConfigLatestWins(t *testing.T) {
	store, err := rgbconfig.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	p := &Pending{}
	p.QueueConfig([]byte(`{"brightness":10}`), false)
	p.QueueConfig([]byte(`{"brightness":50}`), false)
	p.QueueConfig([]byte(`{"brightness":200}`), false)

	p.Process(store, DefaultPendingBudget)
	assert.Equal(t, uint8(200), store.Snapshot().Brightness)
}
