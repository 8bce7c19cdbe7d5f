// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package nvs emulates the subset of ESP-IDF's non-volatile storage the
// Config Store depends on: a namespaced key/value blob store with
// key-level atomic writes. On the target hardware this would be flash; on
// a Linux host it is one file per key under a namespace directory, written
// via write-to-temp-then-rename so a reader never observes a partial file.
package nvs

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when the key has never been written.
var ErrNotFound = errors.New("nvs: key not found")

// Store is a single namespace rooted at a directory.
type Store struct {
	dir string
}

// Open returns a Store rooted at filepath.Join(baseDir, namespace),
// creating the directory if needed.
func Open(baseDir, namespace string) (*Store, error) {
	dir := filepath.Join(baseDir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Load reads the raw bytes stored under key.
func (s *Store) Load(key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Save writes data under key atomically: the whole file is replaced or the
// write fails, there is no intermediate state a concurrent Load can see.
func (s *Store) Save(key string, data []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// Erase removes key. Erasing a key that was never written is not an error.
func (s *Store) Erase(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
