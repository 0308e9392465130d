// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package permission - current access set from the grant/revoke log
//
// The set is rebuilt from scratch as a left fold over the events in
// ledger order, starting from the owner:
//
//   {owner} ─Grant(b)→ {owner, b} ─Revoke(b)→ {owner} ─Revoke(owner)→ {owner}
package permission
