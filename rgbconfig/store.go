// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbconfig

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Darkone83/XBOX-RGB/internal/nvs"
)

// Namespace and Key are the NVS coordinates of the persisted config, per
// spec §6.
const (
	Namespace = "rgbctrl"
	Key       = "config"
)

// ErrBadJSON is returned by ApplyPreview/ApplySave when the request body
// fails to parse, surfaced by the Control Plane as the BadJson error kind.
type ErrBadJSON struct{ Err error }

func (e *ErrBadJSON) Error() string { return "bad json: " + e.Err.Error() }
func (e *ErrBadJSON) Unwrap() error { return e.Err }

// Store is the single owning handle for the Config record: one writer (the
// Control Plane, via ApplyPreview/ApplySave/Reset), many readers (the
// render path, via Snapshot). Never a package-level global, per spec §9.
type Store struct {
	mu  sync.RWMutex
	cfg Config
	nvs *nvs.Store
	log *log.Logger
}

// NewStore constructs a Store backed by the given NVS directory, installing
// defaults. Call Load afterward to overlay any persisted record.
func NewStore(baseDir string, logger *log.Logger) (*Store, error) {
	n, err := nvs.Open(baseDir, Namespace)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{cfg: Default(), nvs: n, log: logger}, nil
}

// Snapshot returns a copy of the current configuration. Readers must never
// observe a partially-updated record; the RWMutex guarantees this.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Load reads the NVS key and overlays it onto the current config; if
// absent, defaults are installed instead. Matches spec §4.7's load().
func (s *Store) Load() error {
	raw, err := s.nvs.Load(Key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.cfg = Default()
		return nil
	}
	if jsonErr := s.cfg.ApplyJSON(raw); jsonErr != nil {
		s.log.Warn("discarding unreadable persisted config", "err", jsonErr)
		s.cfg = Default()
	}
	return nil
}

// Save serializes the persistent subset and writes it atomically, matching
// spec §4.7's save(). On a write failure the in-memory config is already
// applied; per the documented weakness in spec §9, the caller (Control
// Plane) still replies ok for a save whose in-memory apply succeeded, so
// Save only logs here rather than rolling back.
func (s *Store) Save() error {
	s.mu.Lock()
	data, err := s.cfg.toPersistentJSON()
	s.cfg.InPreview = false
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := s.nvs.Save(Key, data); err != nil {
		s.log.Error("nvs save failed", "err", err)
		return err
	}
	return nil
}

// Reset erases the NVS key and installs defaults, per spec §4.7's reset().
func (s *Store) Reset() error {
	if err := s.nvs.Erase(Key); err != nil {
		s.log.Error("nvs erase failed", "err", err)
	}
	s.mu.Lock()
	s.cfg = Default()
	s.cfg.InPreview = false
	s.mu.Unlock()
	return nil
}

// ApplyPreview parse-validates-clamps raw JSON into a temporary; on success
// it replaces the live config and marks InPreview, without persisting.
func (s *Store) ApplyPreview(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := s.cfg
	if err := candidate.ApplyJSON(raw); err != nil {
		return &ErrBadJSON{Err: err}
	}
	candidate.InPreview = true
	s.cfg = candidate
	return nil
}

// ApplySave is ApplyPreview plus persistence, clearing InPreview.
func (s *Store) ApplySave(raw []byte) error {
	s.mu.Lock()
	candidate := s.cfg
	if err := candidate.ApplyJSON(raw); err != nil {
		s.mu.Unlock()
		return &ErrBadJSON{Err: err}
	}
	candidate.InPreview = false
	s.cfg = candidate
	data, marshalErr := s.cfg.toPersistentJSON()
	s.mu.Unlock()
	if marshalErr != nil {
		return marshalErr
	}
	if err := s.nvs.Save(Key, data); err != nil {
		s.log.Error("nvs save failed", "err", err)
		return err
	}
	return nil
}

// SetCounts applies the setCounts op: exactly 4 per-channel counts,
// clamped, applied in memory only (not persisted, mirroring preview).
func (s *Store) SetCounts(counts [4]uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Count = counts
	s.cfg.Clamp()
	s.cfg.InPreview = true
}

// ToJSON serializes the full record including display fields, per spec
// §4.7's toJson().
func (s *Store) ToJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.ToJSON()
}
