// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package storage persists the fortress-auth session record between process
// runs. Two backends are provided: a JSON file in the XDG config directory
// (default) and the OS keychain via 99designs/keyring. Both store exactly the
// durable subset of the session state and nothing else.
package storage

import (
	"fmt"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/xdg"
)

// Backend kinds accepted by Open.
const (
	KindFile     = "file"
	KindKeychain = "keychain"
)

// Open returns the configured storage backend.
func Open(kind string) (session.Storage, error) {
	switch kind {
	case KindFile, "":
		dir, err := xdg.ConfigDir()
		if err != nil {
			return nil, err
		}
		return NewFile(dir), nil
	case KindKeychain:
		return NewKeyring()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
