// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package view - assets assembled from the ledger on demand
//
//  LoadAll ──► enumerator ──► per asset ─┬─► permission.Reconciler
//                                        └─► usage.Aggregator
//
// An empty ledger is a successful load with no assets. A ledger that
// cannot be reached is an error. Assets that exist but cannot be
// assembled are reported in Batch.Failures and the rest of the batch
// is still returned.
package view
