// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = 2 * time.Minute

// Memory - in-process store, entries vanish after expiration
type Memory struct {
	cache      *cache.Cache
	expiration time.Duration
}

// NewMemory - create a memory store
//
// a non-positive expiration keeps entries until the process exits
func NewMemory(expiration time.Duration) *Memory {
	if expiration <= 0 {
		expiration = cache.NoExpiration
	}
	return &Memory{
		cache:      cache.New(expiration, defaultCleanupInterval),
		expiration: expiration,
	}
}

// Get - fetch a copy of a value
func (m *Memory) Get(key string) ([]byte, bool, error) {
	obj, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	value := obj.([]byte)
	result := make([]byte, len(value))
	copy(result, value)
	return result, true, nil
}

// Set - store a copy of a value
func (m *Memory) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.cache.Set(key, stored, m.expiration)
	return nil
}

// Clear - remove every entry
func (m *Memory) Clear() {
	m.cache.Flush()
}
