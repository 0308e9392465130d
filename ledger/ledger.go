// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"time"

	"github.com/bitmark-inc/assetview/address"
)

//go:generate mockgen -source=ledger.go -destination=mocks/reader.go -package=mocks

// Reader - read accessors keyed by asset id
type Reader interface {
	Asset(ctx context.Context, id uint64) (*Record, error)
	PermissionEvents(ctx context.Context, id uint64) ([]PermissionEvent, error)
	UsageCount(ctx context.Context, id uint64) (uint64, error)
	UsageEntry(ctx context.Context, id uint64, index uint64) (*UsageEntry, error)
}

// Record - owner and registration data of one asset id
type Record struct {
	Owner       address.Address `json:"owner"`
	Author      address.Address `json:"author"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	AssetType   string          `json:"assetType"`
	ContentRef  string          `json:"contentRef"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Exists - false if the owner is the unset sentinel
func (r *Record) Exists() bool {
	return nil != r && !r.Owner.IsSentinel()
}

// PermissionEvent - a single grant or revoke
//
// Order is the position in ledger emission order and is the only
// valid ordering key
type PermissionEvent struct {
	Kind    EventKind       `json:"kind"`
	AssetId uint64          `json:"assetId,string"`
	Grantee address.Address `json:"grantee"`
	Order   uint64          `json:"order,string"`
}

// UsageEntry - one record of an asset being used
type UsageEntry struct {
	Actor       address.Address `json:"actor"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}
