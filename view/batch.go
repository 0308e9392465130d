// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package view

import (
	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fault"
)

// Failure - an asset that exists but could not be assembled
type Failure struct {
	AssetId uint64
	Owner   address.Address
	Err     error
}

// Batch - result of a bulk load
type Batch struct {
	Assets   []asset.Asset
	Failures []Failure
}

// Len - number of assembled assets
func (b *Batch) Len() int {
	return len(b.Assets)
}

// Err - nil if every asset was assembled, otherwise a *fault.BatchError
func (b *Batch) Err() error {
	if 0 == len(b.Failures) {
		return nil
	}
	failures := make([]fault.AssetFailure, 0, len(b.Failures))
	for _, f := range b.Failures {
		failures = append(failures, fault.AssetFailure{
			AssetId: f.AssetId,
			Err:     f.Err,
		})
	}
	return &fault.BatchError{Failures: failures}
}

// Filter - assets for which keep is true, failures are copied
func (b *Batch) Filter(keep func(asset.Asset) bool) *Batch {
	filtered := &Batch{
		Assets:   make([]asset.Asset, 0, len(b.Assets)),
		Failures: make([]Failure, len(b.Failures)),
	}
	copy(filtered.Failures, b.Failures)
	for _, a := range b.Assets {
		if keep(a) {
			filtered.Assets = append(filtered.Assets, a)
		}
	}
	return filtered
}

// Mine - the owner's part of a full batch
//
// a failed asset of another owner is not missing from this view
func Mine(all *Batch, owner address.Address) *Batch {
	mine := all.Filter(func(a asset.Asset) bool {
		return a.IsOwnedBy(owner)
	})
	failures := []Failure{}
	for _, f := range all.Failures {
		if f.Owner.Equal(owner) {
			failures = append(failures, f)
		}
	}
	mine.Failures = failures
	return mine
}

// Accessible - the part of a full batch a user can access
//
// all failures are kept, the permissions of a failed asset are unknown
func Accessible(all *Batch, user address.Address) *Batch {
	return all.Filter(func(a asset.Asset) bool {
		return a.IsAccessibleBy(user)
	})
}
