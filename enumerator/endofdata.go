// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package enumerator

import (
	"github.com/bitmark-inc/assetview/fault"
)

// LooksLikeEndOfData - true if a probe failed because the id is past
// the end of the asset table
//
// the ledger has no explicit existence check, an empty or
// undecodable result is the only signal, so this is only valid while
// the id space is dense
func LooksLikeEndOfData(err error) bool {
	if nil == err {
		return false
	}
	return fault.IsErrDecode(err) && !fault.IsErrTransient(err) && !fault.IsErrConfiguration(err)
}
