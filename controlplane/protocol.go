// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package controlplane implements the UDP Control Plane (spec §4.8): the
// packet classifier, the JSON op dispatch table, pending-op coalescing,
// the quiet window, and presence advertisement.
package controlplane

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

const (
	// DefaultPort is the UDP control-plane port, spec §4.8.
	DefaultPort = 7777
	// MinBufferSize is the minimum receive buffer the listener must use.
	MinBufferSize = 1600
	// DefaultPendingBudget bounds processPending's per-call work.
	DefaultPendingBudget = 1500 * time.Microsecond
)

type okReply struct {
	OK bool   `json:"ok"`
	Op string `json:"op"`
}

type errReply struct {
	OK  bool   `json:"ok"`
	Op  string `json:"op"`
	Err string `json:"err"`
}

type getReply struct {
	OK  bool            `json:"ok"`
	Op  string          `json:"op"`
	Cfg json.RawMessage `json:"cfg"`
}

type request struct {
	Op  string          `json:"op"`
	Key *string         `json:"key"`
	Cfg json.RawMessage `json:"cfg"`
	C   []uint16        `json:"c"`
}

// Dispatcher holds everything the JSON op table needs: the Config Store,
// the pending-ops queue, the optional pre-shared key, and the advertised
// port (for discover replies).
type Dispatcher struct {
	Store   *rgbconfig.Store
	Pending *Pending
	PSK     string
	Port    uint16
	Log     *log.Logger
}

// Dispatch handles one JSON control-plane frame and returns the reply to
// send back, per the table in spec §4.8/§6.
func (d *Dispatcher) Dispatch(raw []byte) []byte {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return mustJSON(errReply{Op: "parse", Err: "bad json"})
	}
	if d.PSK != "" && req.Op != "discover" {
		if req.Key == nil || *req.Key != d.PSK {
			return mustJSON(errReply{Op: "auth", Err: "bad key"})
		}
	}
	switch req.Op {
	case "":
		return mustJSON(errReply{Op: "op", Err: "missing op"})
	case "discover":
		return mustJSON(newDiscoverReply(d.Port))
	case "get":
		cfgJSON, err := d.Store.ToJSON()
		if err != nil {
			return mustJSON(errReply{Op: "get", Err: "internal error"})
		}
		return mustJSON(getReply{OK: true, Op: "get", Cfg: cfgJSON})
	case "preview":
		d.Pending.QueueConfig(overlayPayload(raw, req), false)
		return mustJSON(okReply{OK: true, Op: "preview"})
	case "save":
		d.Pending.QueueConfig(overlayPayload(raw, req), true)
		return mustJSON(okReply{OK: true, Op: "save"})
	case "reset":
		d.Pending.QueueReset()
		return mustJSON(okReply{OK: true, Op: "reset"})
	case "setCounts":
		if len(req.C) != 4 {
			return mustJSON(errReply{Op: "setCounts", Err: "need 4 ints"})
		}
		d.Pending.QueueCounts([4]uint16{req.C[0], req.C[1], req.C[2], req.C[3]})
		return mustJSON(okReply{OK: true, Op: "setCounts"})
	default:
		return mustJSON(errReply{Op: "op", Err: "unknown op"})
	}
}

// DispatchText handles the plain-text path: "RGBDISC?" (optionally
// newline-terminated) gets "RGBDISC! "+discoverJson; anything else is an
// error envelope.
func (d *Dispatcher) DispatchText(text string) []byte {
	trimmed := trimTrailingNewline(text)
	if trimmed == "RGBDISC?" {
		return append([]byte("RGBDISC! "), mustJSON(newDiscoverReply(d.Port))...)
	}
	return mustJSON(errReply{OK: false, Op: "raw", Err: "unknown text"})
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// overlayPayload returns the bytes an apply* call should overlay: the
// "cfg" sub-object if present (the {"cfg":{...}} shape), otherwise the
// whole request body (the "direct fields" shape) — unknown fields like
// "op"/"key" are ignored by Config.ApplyJSON's parse policy either way.
func overlayPayload(raw []byte, req request) []byte {
	if len(req.Cfg) > 0 {
		return req.Cfg
	}
	return raw
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// Every reply type above is a plain struct of strings/bools/raw
		// JSON; marshal failure here would mean a programming error, not a
		// runtime condition, so fall back to a minimal static envelope
		// rather than propagating an error type this function doesn't have.
		return []byte(`{"ok":false,"op":"internal","err":"marshal failed"}`)
	}
	return b
}
