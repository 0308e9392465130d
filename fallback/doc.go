// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fallback - explicit cache policy for callers of view
//
// The ledger is always read first. A snapshot is written after each
// complete load and is returned, marked stale, only when the ledger
// cannot be reached. Snapshot layout:
//
//   assetview-snapshot v1 \n
//   hex SHA3-256 of body  \n
//   body                     - JSON {"taken": time, "assets": [...]}
package fallback
