// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package usage - ordered usage history of an asset
//
// The ledger keeps a count per asset and entries indexed 0…count-1 in
// the order they were recorded. Entries are fetched in parallel and
// placed by index, so completion order never affects the result.
package usage
