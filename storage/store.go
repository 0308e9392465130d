// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Store - key value cache
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)
