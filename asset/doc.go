// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the view model handed to callers
//
// Name, description, type, content locator, author and creation time
// never change after registration. Owner, permissions and usage are
// derived from later ledger events and recomputed on every load.
package asset
