// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - read only access to the asset registry
//
// The ledger is append only and owned by someone else: assets are
// registered once with dense ids starting at 1, access is changed by
// grant and revoke events, and usage is recorded as a count indexed
// log per asset.
//
//  Operation           Returns                    Past the last id
//  ---------           -------                    ----------------
//  Asset               owner and metadata         sentinel owner or DecodeError
//  PermissionEvents    grant/revoke in any order  empty
//  UsageCount          number of usage entries    zero or DecodeError
//  UsageEntry          one entry by index         DecodeError
//
// Implementations classify their failures with the fault package so
// that end of data is never confused with an unreachable ledger.
package ledger
