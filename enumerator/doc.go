// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package enumerator - sequential discovery of asset ids
//
// Ids are probed 1, 2, 3, … and the first id with the sentinel owner,
// or whose read fails to decode, ends the sequence. Probing is strictly
// sequential. Gaps in the id space are not supported: a hole would
// silently end the enumeration early.
package enumerator
