// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
)

// File persists the session record as a JSON file with 0600 permissions.
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path() string {
	return filepath.Join(f.dir, session.RecordName+".json")
}

// Load reads the record. A missing file is not an error.
func (f *File) Load() (session.Record, bool, error) {
	var rec session.Record
	data, err := os.ReadFile(f.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rec, false, nil
		}
		return rec, false, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return session.Record{}, false, err
	}
	return rec, true, nil
}

// Save writes the record with private permissions.
func (f *File) Save(rec session.Record) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(), b, 0o600)
}

// Clear removes the record. Clearing a missing record is a no-op.
func (f *File) Clear() error {
	if err := os.Remove(f.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var _ session.Storage = (*File)(nil)
