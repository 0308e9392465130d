// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - local cache of assembled views
//
// Notes:
// 1. ++      = concatenation of byte data
// 2. version = big endian uint32 (4 bytes)
//
// LevelDB layout:
//
//   0x00 ++ "VERSION"  - database version
//                        data: version
//   C ++ key           - cached value
//                        data: value bytes as written by the caller
//
// The cache is only read when the caller asks for it, a reachable
// ledger is always preferred.
package storage
