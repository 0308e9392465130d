// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permission

import (
	"sort"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/ledger"
)

// Apply - one step of the fold
//
// the owner can never be removed, revoking it is ignored
func Apply(set address.Set, owner address.Address, e ledger.PermissionEvent) address.Set {
	switch e.Kind {
	case ledger.Grant:
		set.Add(e.Grantee)
	case ledger.Revoke:
		if !e.Grantee.Equal(owner) {
			set.Remove(e.Grantee)
		}
	}
	return set
}

// Reconcile - current permission set of an asset
//
// events are replayed in ledger order regardless of the order they
// were read in, the input slice is not modified
func Reconcile(owner address.Address, events []ledger.PermissionEvent) address.Set {
	ordered := make([]ledger.PermissionEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	set := address.NewSet(owner)
	for _, e := range ordered {
		set = Apply(set, owner, e)
	}
	return set
}
