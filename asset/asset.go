// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"time"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/ledger"
)

// Asset - materialised view of one registered asset
type Asset struct {
	Id              uint64              `json:"id,string"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	AssetType       string              `json:"assetType"`
	ContentRef      string              `json:"contentRef"`
	Author          address.Address     `json:"author"`
	Owner           address.Address     `json:"owner"`
	CreatedAt       time.Time           `json:"createdAt"`
	Permissions     address.Set         `json:"permissions"`
	UsageLog        []ledger.UsageEntry `json:"usageLog"`
	UsageIncomplete bool                `json:"usageIncomplete,omitempty"`
}

// New - assemble an asset from its ledger record and derived facets
func New(id uint64, record *ledger.Record, permissions address.Set, usage []ledger.UsageEntry) Asset {
	if nil == usage {
		usage = []ledger.UsageEntry{}
	}
	return Asset{
		Id:          id,
		Name:        record.Name,
		Description: record.Description,
		AssetType:   record.AssetType,
		ContentRef:  record.ContentRef,
		Author:      address.Normalise(string(record.Author)),
		Owner:       address.Normalise(string(record.Owner)),
		CreatedAt:   record.CreatedAt,
		Permissions: permissions,
		UsageLog:    usage,
	}
}

// IsOwnedBy - case-insensitive owner match
func (a Asset) IsOwnedBy(owner address.Address) bool {
	return a.Owner.Equal(owner)
}

// IsAccessibleBy - owner or holder of a permission
func (a Asset) IsAccessibleBy(user address.Address) bool {
	return a.IsOwnedBy(user) || a.Permissions.Has(user)
}
