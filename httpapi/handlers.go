// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package httpapi implements the HTTP fallback surface (spec §4.9): five
// handlers meant to be mounted onto a host-owned http.ServeMux, never a
// server the package constructs itself.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// API bundles the handlers; Register mounts them on mux under base (default
// "/config"), matching the teacher's pattern of registering a family of
// handlers onto an externally owned http.ServeMux rather than owning a
// server.
type API struct {
	Store *rgbconfig.Store
	Base  string
}

// Register mounts the five handlers onto mux.
func (a *API) Register(mux *http.ServeMux) {
	base := a.Base
	if base == "" {
		base = "/config"
	}
	mux.HandleFunc(base, a.handleIndex)
	mux.HandleFunc(base+"/api/ledconfig", a.handleGetConfig)
	mux.HandleFunc(base+"/api/ledpreview", a.handlePreview)
	mux.HandleFunc(base+"/api/ledsave", a.handleSave)
	mux.HandleFunc(base+"/api/ledreset", a.handleReset)
}

// handleIndex serves an HTML page embedding the current config JSON.
func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	cfgJSON, err := a.Store.ToJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexTemplate, cfgJSON)
}

const indexTemplate = `<!DOCTYPE html>
<html><head><title>XBOX RGB</title></head>
<body>
<script>window.__RGB_CONFIG__ = %s;</script>
</body></html>
`

// handleGetConfig serves the full config JSON, spec §4.9.
func (a *API) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	cfgJSON, err := a.Store.ToJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(cfgJSON)
}

func (a *API) handlePreview(w http.ResponseWriter, r *http.Request) {
	a.applyAndReply(w, r, a.Store.ApplyPreview)
}

func (a *API) handleSave(w http.ResponseWriter, r *http.Request) {
	a.applyAndReply(w, r, a.Store.ApplySave)
}

func (a *API) applyAndReply(w http.ResponseWriter, r *http.Request, apply func([]byte) error) {
	w.Header().Set("Cache-Control", "no-store")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}
	if err := apply(body); err != nil {
		var bad *rgbconfig.ErrBadJSON
		if errors.As(err, &bad) {
			http.Error(w, bad.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]bool{"ok": true}) // persistence errors still reply ok, spec §7
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.Store.Reset()
	writeJSON(w, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
