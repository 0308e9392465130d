// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/assetview/counter"
)

// Metered - a Reader that counts calls and failures per operation
type Metered struct {
	reader     Reader
	asset      counter.Outcome
	events     counter.Outcome
	usageCount counter.Outcome
	usageEntry counter.Outcome
}

// OperationStats - counts for one operation
type OperationStats struct {
	Calls    uint64 `json:"calls"`
	Failures uint64 `json:"failures"`
}

// Stats - snapshot of all counts
type Stats struct {
	Asset            OperationStats `json:"asset"`
	PermissionEvents OperationStats `json:"permissionEvents"`
	UsageCount       OperationStats `json:"usageCount"`
	UsageEntry       OperationStats `json:"usageEntry"`
}

// NewMetered - wrap a reader
func NewMetered(reader Reader) *Metered {
	return &Metered{
		reader: reader,
	}
}

func (m *Metered) Asset(ctx context.Context, id uint64) (*Record, error) {
	r, err := m.reader.Asset(ctx, id)
	return r, m.asset.Observe(err)
}

func (m *Metered) PermissionEvents(ctx context.Context, id uint64) ([]PermissionEvent, error) {
	e, err := m.reader.PermissionEvents(ctx, id)
	return e, m.events.Observe(err)
}

func (m *Metered) UsageCount(ctx context.Context, id uint64) (uint64, error) {
	n, err := m.reader.UsageCount(ctx, id)
	return n, m.usageCount.Observe(err)
}

func (m *Metered) UsageEntry(ctx context.Context, id uint64, index uint64) (*UsageEntry, error) {
	u, err := m.reader.UsageEntry(ctx, id, index)
	return u, m.usageEntry.Observe(err)
}

// Stats - current counts
func (m *Metered) Stats() Stats {
	return Stats{
		Asset:            stats(&m.asset),
		PermissionEvents: stats(&m.events),
		UsageCount:       stats(&m.usageCount),
		UsageEntry:       stats(&m.usageEntry),
	}
}

func stats(o *counter.Outcome) OperationStats {
	return OperationStats{
		Calls:    o.Calls(),
		Failures: o.Failures(),
	}
}
