// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
)

// operation names used to inject failures
const (
	OpAsset            = "asset"
	OpPermissionEvents = "permissionEvents"
	OpUsageCount       = "usageCount"
	OpUsageEntry       = "usageEntry"
)

// EndMode - how the ledger answers for ids past the last asset
type EndMode int

// possible modes
const (
	SentinelEnd EndMode = iota // zero owner, as a contract mapping would
	DecodeEnd                  // empty result that fails to decode
)

// Delay - optional per read latency, used to shuffle completion order
type Delay func(op string, id uint64, index uint64) time.Duration

// Ledger - in-memory ledger.Reader with failure injection
type Ledger struct {
	sync.Mutex
	assets         []ledger.Record
	events         map[uint64][]ledger.PermissionEvent
	usage          map[uint64][]ledger.UsageEntry
	order          uint64
	failures       map[string]error
	end            EndMode
	reverseEvents  bool
	delay          Delay
	createdAtStart time.Time
}

// NewLedger - empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		events:         make(map[uint64][]ledger.PermissionEvent),
		usage:          make(map[uint64][]ledger.UsageEntry),
		failures:       make(map[string]error),
		end:            SentinelEnd,
		createdAtStart: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// Register - append an asset, returns its id
func (l *Ledger) Register(owner address.Address, name string) uint64 {
	l.Lock()
	defer l.Unlock()
	id := uint64(len(l.assets) + 1)
	l.assets = append(l.assets, ledger.Record{
		Owner:       owner,
		Author:      owner,
		Name:        name,
		Description: "description of " + name,
		AssetType:   "document",
		ContentRef:  fmt.Sprintf("ipfs://content-%d", id),
		CreatedAt:   l.createdAtStart.Add(time.Duration(id) * time.Hour),
	})
	return id
}

// Transfer - change the owner of an asset
func (l *Ledger) Transfer(id uint64, owner address.Address) {
	l.Lock()
	defer l.Unlock()
	l.assets[id-1].Owner = owner
}

// Grant - append a grant event
func (l *Ledger) Grant(id uint64, grantee address.Address) {
	l.appendEvent(ledger.Grant, id, grantee)
}

// Revoke - append a revoke event
func (l *Ledger) Revoke(id uint64, grantee address.Address) {
	l.appendEvent(ledger.Revoke, id, grantee)
}

func (l *Ledger) appendEvent(kind ledger.EventKind, id uint64, grantee address.Address) {
	l.Lock()
	defer l.Unlock()
	l.order += 1
	l.events[id] = append(l.events[id], ledger.PermissionEvent{
		Kind:    kind,
		AssetId: id,
		Grantee: grantee,
		Order:   l.order,
	})
}

// Use - append a usage entry
func (l *Ledger) Use(id uint64, actor address.Address, description string) {
	l.Lock()
	defer l.Unlock()
	n := len(l.usage[id])
	l.usage[id] = append(l.usage[id], ledger.UsageEntry{
		Actor:       actor,
		Timestamp:   l.createdAtStart.Add(time.Duration(id)*time.Hour + time.Duration(n+1)*time.Minute),
		Description: description,
	})
}

// SetEndMode - select the past the end behaviour
func (l *Ledger) SetEndMode(mode EndMode) {
	l.Lock()
	l.end = mode
	l.Unlock()
}

// ReverseEvents - return permission events newest first
func (l *Ledger) ReverseEvents(reverse bool) {
	l.Lock()
	l.reverseEvents = reverse
	l.Unlock()
}

// SetDelay - install a latency function
func (l *Ledger) SetDelay(delay Delay) {
	l.Lock()
	l.delay = delay
	l.Unlock()
}

// Fail - make an operation on an asset fail with err, nil clears
func (l *Ledger) Fail(op string, id uint64, err error) {
	l.setFailure(fmt.Sprintf("%s:%d", op, id), err)
}

// FailEntry - make a single usage entry read fail
func (l *Ledger) FailEntry(id uint64, index uint64, err error) {
	l.setFailure(fmt.Sprintf("%s:%d:%d", OpUsageEntry, id, index), err)
}

func (l *Ledger) setFailure(key string, err error) {
	l.Lock()
	defer l.Unlock()
	if nil == err {
		delete(l.failures, key)
		return
	}
	l.failures[key] = err
}

func (l *Ledger) failure(key string) error {
	l.Lock()
	defer l.Unlock()
	return l.failures[key]
}

func (l *Ledger) wait(ctx context.Context, op string, id uint64, index uint64) error {
	l.Lock()
	delay := l.delay
	l.Unlock()
	if nil == delay {
		return ctx.Err()
	}
	select {
	case <-time.After(delay(op, id, index)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Asset - implements ledger.Reader
func (l *Ledger) Asset(ctx context.Context, id uint64) (*ledger.Record, error) {
	if err := l.wait(ctx, OpAsset, id, 0); nil != err {
		return nil, err
	}
	if err := l.failure(fmt.Sprintf("%s:%d", OpAsset, id)); nil != err {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	if 0 == id || id > uint64(len(l.assets)) {
		if DecodeEnd == l.end {
			return nil, fault.Decode(nil, OpAsset, id)
		}
		return &ledger.Record{Owner: address.Zero, Author: address.Zero}, nil
	}
	r := l.assets[id-1]
	return &r, nil
}

// PermissionEvents - implements ledger.Reader
func (l *Ledger) PermissionEvents(ctx context.Context, id uint64) ([]ledger.PermissionEvent, error) {
	if err := l.wait(ctx, OpPermissionEvents, id, 0); nil != err {
		return nil, err
	}
	if err := l.failure(fmt.Sprintf("%s:%d", OpPermissionEvents, id)); nil != err {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	events := l.events[id]
	result := make([]ledger.PermissionEvent, len(events))
	if l.reverseEvents {
		for i, e := range events {
			result[len(events)-1-i] = e
		}
	} else {
		copy(result, events)
	}
	return result, nil
}

// UsageCount - implements ledger.Reader
func (l *Ledger) UsageCount(ctx context.Context, id uint64) (uint64, error) {
	if err := l.wait(ctx, OpUsageCount, id, 0); nil != err {
		return 0, err
	}
	if err := l.failure(fmt.Sprintf("%s:%d", OpUsageCount, id)); nil != err {
		return 0, err
	}

	l.Lock()
	defer l.Unlock()
	return uint64(len(l.usage[id])), nil
}

// UsageEntry - implements ledger.Reader
func (l *Ledger) UsageEntry(ctx context.Context, id uint64, index uint64) (*ledger.UsageEntry, error) {
	if err := l.wait(ctx, OpUsageEntry, id, index); nil != err {
		return nil, err
	}
	if err := l.failure(fmt.Sprintf("%s:%d:%d", OpUsageEntry, id, index)); nil != err {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	entries := l.usage[id]
	if index >= uint64(len(entries)) {
		return nil, fault.Decode(nil, OpUsageEntry, id)
	}
	e := entries[index]
	return &e, nil
}
