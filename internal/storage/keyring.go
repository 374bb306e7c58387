// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"encoding/json"
	"errors"

	"github.com/99designs/keyring"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "fortress"

// Keyring persists the session record as a single item in the OS keychain.
type Keyring struct {
	ring keyring.Keyring
}

// NewKeyring opens the OS keychain for the fortress service.
func NewKeyring() (*Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
	})
	if err != nil {
		return nil, err
	}
	return &Keyring{ring: ring}, nil
}

// Load reads the record. A missing item is not an error.
func (k *Keyring) Load() (session.Record, bool, error) {
	var rec session.Record
	item, err := k.ring.Get(session.RecordName)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return rec, false, nil
		}
		return rec, false, err
	}
	if len(item.Data) == 0 {
		return rec, false, nil
	}
	if err := json.Unmarshal(item.Data, &rec); err != nil {
		return session.Record{}, false, err
	}
	return rec, true, nil
}

// Save writes the record.
func (k *Keyring) Save(rec session.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return k.ring.Set(keyring.Item{Key: session.RecordName, Data: b})
}

// Clear removes the record. Clearing a missing item is a no-op.
func (k *Keyring) Clear() error {
	if err := k.ring.Remove(session.RecordName); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

var _ session.Storage = (*Keyring)(nil)
