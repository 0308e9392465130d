// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permission

import (
	"context"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/logger"
)

// Reconciler - reads the event log of an asset and folds it
type Reconciler struct {
	log    *logger.L
	reader ledger.Reader
}

// New - create a reconciler
func New(reader ledger.Reader, log *logger.L) *Reconciler {
	return &Reconciler{
		log:    log,
		reader: reader,
	}
}

// Permissions - current permission set of one asset
//
// an unreadable event log is an error, an owner only set is never
// substituted
func (r *Reconciler) Permissions(ctx context.Context, id uint64, owner address.Address) (address.Set, error) {
	events, err := r.reader.PermissionEvents(ctx, id)
	if nil != err {
		if nil != ctx.Err() {
			return address.Set{}, ctx.Err()
		}
		r.log.Warnf("asset: %d  permission events error: %s", id, err)
		return address.Set{}, &fault.PermissionError{AssetId: id, Err: err}
	}

	relevant := events[:0:0]
	for _, e := range events {
		if e.AssetId != id {
			r.log.Warnf("asset: %d  ignoring event for asset: %d", id, e.AssetId)
			continue
		}
		relevant = append(relevant, e)
	}

	set := Reconcile(owner, relevant)
	r.log.Debugf("asset: %d  events: %d  permissions: %d", id, len(relevant), set.Len())
	return set, nil
}
