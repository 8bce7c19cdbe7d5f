// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	store, err := rgbconfig.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	return &Dispatcher{Store: store, Pending: &Pending{}, Port: DefaultPort}
}

// Scenario S1: discover.
func TestScenarioS1Discover(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`{"op":"discover"}`))

	var r discoverReply
	require.NoError(t, json.Unmarshal(reply, &r))
	assert.True(t, r.OK)
	assert.Equal(t, "discover", r.Op)
	assert.Equal(t, "XBOX RGB", r.Name)
	assert.EqualValues(t, DefaultPort, r.Port)
	assert.Regexp(t, `^([0-9A-F]{2}:){5}[0-9A-F]{2}$`, r.MAC)
}

func TestDispatchTextRGBDISC(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.DispatchText("RGBDISC?")
	assert.Regexp(t, `^RGBDISC! \{`, string(reply))

	reply = d.DispatchText("RGBDISC?\r\n")
	assert.Regexp(t, `^RGBDISC! \{`, string(reply))
}

func TestDispatchTextUnknownIsError(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.DispatchText("hello")
	assert.JSONEq(t, `{"ok":false,"op":"raw","err":"unknown text"}`, string(reply))
}

func TestDispatchMissingOp(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`{}`))
	assert.JSONEq(t, `{"ok":false,"op":"op","err":"missing op"}`, string(reply))
}

func TestDispatchUnknownOp(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`{"op":"frobnicate"}`))
	assert.JSONEq(t, `{"ok":false,"op":"op","err":"unknown op"}`, string(reply))
}

func TestDispatchBadJSON(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`not json`))
	assert.JSONEq(t, `{"ok":false,"op":"parse","err":"bad json"}`, string(reply))
}

func TestDispatchBadKey(t *testing.T) {
	d := newTestDispatcher(t)
	d.PSK = "secret"
	reply := d.Dispatch([]byte(`{"op":"get"}`))
	assert.JSONEq(t, `{"ok":false,"op":"auth","err":"bad key"}`, string(reply))

	reply = d.Dispatch([]byte(`{"op":"get","key":"wrong"}`))
	assert.JSONEq(t, `{"ok":false,"op":"auth","err":"bad key"}`, string(reply))
}

func TestDispatchDiscoverIsPublicEvenWithPSK(t *testing.T) {
	d := newTestDispatcher(t)
	d.PSK = "secret"
	reply := d.Dispatch([]byte(`{"op":"discover"}`))
	var r discoverReply
	require.NoError(t, json.Unmarshal(reply, &r))
	assert.True(t, r.OK)
}

func TestDispatchGetReturnsFullConfig(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`{"op":"get"}`))
	var r getReply
	require.NoError(t, json.Unmarshal(reply, &r))
	assert.True(t, r.OK)
	assert.Contains(t, string(r.Cfg), `"brightness"`)
}

func TestDispatchSetCountsNeedsFour(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Dispatch([]byte(`{"op":"setCounts","c":[1,2,3]}`))
	assert.JSONEq(t, `{"ok":false,"op":"setCounts","err":"need 4 ints"}`, string(reply))
}

func TestDispatchPreviewSaveResetEnqueue(t *testing.T) {
	d := newTestDispatcher(t)

	reply := d.Dispatch([]byte(`{"op":"preview","mode":4}`))
	assert.JSONEq(t, `{"ok":true,"op":"preview"}`, string(reply))

	reply = d.Dispatch([]byte(`{"op":"save","mode":4}`))
	assert.JSONEq(t, `{"ok":true,"op":"save"}`, string(reply))

	reply = d.Dispatch([]byte(`{"op":"reset"}`))
	assert.JSONEq(t, `{"ok":true,"op":"reset"}`, string(reply))

	reply = d.Dispatch([]byte(`{"op":"setCounts","c":[1,2,3,4]}`))
	assert.JSONEq(t, `{"ok":true,"op":"setCounts"}`, string(reply))

	// None of the above mutated the store yet: enqueue-only on the receive
	// path, per spec §4.8.
	d.Pending.Process(d.Store, DefaultPendingBudget)
}

// Property 8 / Scenario S6: quiet-window coalescing. Several preview
// payloads queued during quiet collapse to exactly one apply carrying the
// last received payload.
func TestScenarioS6QuietWindowCoalescing(t *testing.T) {
	store, err := rgbconfig.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	pending := &Pending{}
	var quiet QuietWindow
	// Listener.handle checks the window against time.Now, so the window
	// must be opened on the wall clock for the frames to land inside it.
	t0 := time.Now()
	quiet.Enter(t0, 10*time.Millisecond)

	l := &Listener{
		Dispatcher: &Dispatcher{Store: store, Pending: pending, Port: DefaultPort},
		Quiet:      &quiet,
	}

	frames := []string{
		`{"op":"preview","brightness":10}`,
		`{"op":"preview","brightness":50}`,
		`{"op":"preview","brightness":200}`,
	}
	for _, f := range frames {
		l.handle([]byte(f), nil)
	}

	// Still quiet: nothing applied to the store yet.
	assert.Equal(t, uint8(180), store.Snapshot().Brightness)

	// Window closes; drain the deferred slot.
	pending.Process(store, DefaultPendingBudget)
	assert.Equal(t, uint8(200), store.Snapshot().Brightness)
}
