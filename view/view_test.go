// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package view_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/ledger/fixtures"
	"github.com/bitmark-inc/assetview/ledger/mocks"
	"github.com/bitmark-inc/assetview/view"
	"github.com/bitmark-inc/logger"
)

const (
	alice = address.Address("0x000000000000000000000000000000000000000a")
	bob   = address.Address("0x000000000000000000000000000000000000000b")
	carol = address.Address("0x000000000000000000000000000000000000000c")
	dave  = address.Address("0x000000000000000000000000000000000000000d")
)

// asset 1 owned by alice: grant bob, revoke bob, grant carol
// asset 2 owned by bob with one usage entry
func twoAssetLedger() *fixtures.Ledger {
	l := fixtures.NewLedger()
	first := l.Register(alice, "first")
	second := l.Register(bob, "second")
	l.Grant(first, bob)
	l.Revoke(first, bob)
	l.Grant(first, carol)
	l.Use(second, carol, "viewed")
	return l
}

func newBuilder(reader ledger.Reader, options ...view.Option) *view.Builder {
	return view.New(reader, logger.New(fixtures.LogCategory), options...)
}

func ids(assets []asset.Asset) []uint64 {
	result := make([]uint64, 0, len(assets))
	for _, a := range assets {
		result = append(result, a.Id)
	}
	return result
}

func TestLoadAll(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	b := newBuilder(twoAssetLedger())

	batch, err := b.LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, batch.Err(), "wrong batch error")
	assert.Equal(t, 2, batch.Len(), "wrong asset count")
	assert.Equal(t, []uint64{1, 2}, ids(batch.Assets), "wrong ids")

	first := batch.Assets[0]
	assert.Equal(t, "first", first.Name, "wrong name")
	assert.Equal(t, alice, first.Owner, "wrong owner")
	assert.Equal(t, []address.Address{alice, carol}, first.Permissions.Sorted(), "wrong permissions")
	assert.Equal(t, 0, len(first.UsageLog), "wrong usage length")
	assert.False(t, first.UsageIncomplete, "usage marked incomplete")

	second := batch.Assets[1]
	assert.Equal(t, []address.Address{bob}, second.Permissions.Sorted(), "wrong permissions")
	assert.Equal(t, 1, len(second.UsageLog), "wrong usage length")
	assert.Equal(t, carol, second.UsageLog[0].Actor, "wrong actor")
	assert.Equal(t, "viewed", second.UsageLog[0].Description, "wrong description")
}

func TestLoadAllEmptyLedger(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	for _, mode := range []fixtures.EndMode{fixtures.SentinelEnd, fixtures.DecodeEnd} {
		l := fixtures.NewLedger()
		l.SetEndMode(mode)

		batch, err := newBuilder(l).LoadAll(context.Background())
		assert.Nil(t, err, "mode: %d: wrong error", mode)
		assert.Equal(t, 0, batch.Len(), "mode: %d: wrong asset count", mode)
		assert.Nil(t, batch.Err(), "mode: %d: wrong batch error", mode)
	}
}

func TestLoadAllAscendingOrder(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	const n = 12

	l := fixtures.NewLedger()
	for i := 0; i < n; i += 1 {
		l.Register(alice, fmt.Sprintf("asset-%d", i+1))
	}

	// later ids finish first
	l.SetDelay(func(op string, id uint64, index uint64) time.Duration {
		if fixtures.OpAsset == op {
			return 0
		}
		return time.Duration(n+1-id) * time.Millisecond
	})

	batch, err := newBuilder(l, view.WithConcurrency(n)).LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, n, batch.Len(), "wrong asset count")
	for i, a := range batch.Assets {
		assert.Equal(t, uint64(i+1), a.Id, "wrong id at position: %d", i)
		assert.Equal(t, fmt.Sprintf("asset-%d", i+1), a.Name, "wrong name at position: %d", i)
	}
}

func TestLoadAllTransientFirstProbe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Fail(fixtures.OpAsset, 1, fault.Transient(errors.New("connection refused"), "getAsset", 1))

	batch, err := newBuilder(l).LoadAll(context.Background())
	assert.Nil(t, batch, "batch returned")
	assert.True(t, fault.IsErrTransient(err), "wrong error class: %v", err)
	assert.True(t, fault.IsRetryable(err), "not retryable")
}

func TestLoadAllEnumerationFailsMidway(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Register(carol, "third")
	l.Fail(fixtures.OpAsset, 3, fault.Transient(errors.New("timeout"), "getAsset", 3))

	batch, err := newBuilder(l).LoadAll(context.Background())
	assert.Nil(t, batch, "partial batch returned")
	assert.True(t, fault.IsErrTransient(err), "wrong error class: %v", err)
}

func TestLoadAllCancelled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.SetDelay(func(op string, id uint64, index uint64) time.Duration {
		if fixtures.OpPermissionEvents == op {
			return time.Second
		}
		return 0
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	batch, err := newBuilder(l).LoadAll(ctx)
	assert.Nil(t, batch, "partial batch returned")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "wrong error: %v", err)
	assert.True(t, time.Since(start) < 500*time.Millisecond, "cancellation not prompt")
}

func TestLoadAllAlreadyCancelled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := newBuilder(twoAssetLedger()).LoadAll(ctx)
	assert.Nil(t, batch, "batch returned")
	assert.True(t, errors.Is(err, context.Canceled), "wrong error: %v", err)
}

func TestLoadAllPermissionFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Fail(fixtures.OpPermissionEvents, 1, fault.Transient(errors.New("log query limit"), "filterLogs", 1))

	batch, err := newBuilder(l).LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, []uint64{2}, ids(batch.Assets), "wrong ids")
	assert.Equal(t, 1, len(batch.Failures), "wrong failure count")
	assert.Equal(t, uint64(1), batch.Failures[0].AssetId, "wrong failed id")
	assert.Equal(t, alice, batch.Failures[0].Owner, "wrong failed owner")
	assert.True(t, fault.IsErrPermission(batch.Failures[0].Err), "wrong failure class")

	batchErr := batch.Err()
	assert.True(t, fault.IsErrBatch(batchErr), "wrong batch error: %v", batchErr)
	assert.True(t, fault.IsErrTransient(batchErr), "cause not reachable: %v", batchErr)
}

func TestLoadAllPartialUsage(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Use(2, dave, "edited")
	l.Use(2, alice, "shared")
	l.FailEntry(2, 1, fault.Transient(errors.New("timeout"), "getUsageEntry", 2))

	batch, err := newBuilder(l).LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, batch.Err(), "usage failure reported as asset failure")
	assert.Equal(t, 2, batch.Len(), "wrong asset count")

	second := batch.Assets[1]
	assert.True(t, second.UsageIncomplete, "usage not marked incomplete")
	assert.Equal(t, 1, len(second.UsageLog), "wrong usage prefix length")
	assert.Equal(t, "viewed", second.UsageLog[0].Description, "wrong usage entry")
}

func TestLoadAllUsageCountUnreadable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Fail(fixtures.OpUsageCount, 2, fault.Decode(nil, "getUsageCount", 2))

	batch, err := newBuilder(l).LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 2, batch.Len(), "wrong asset count")
	assert.Equal(t, 0, len(batch.Assets[1].UsageLog), "wrong usage length")
	assert.NotNil(t, batch.Assets[1].UsageLog, "usage log is nil")
}

func TestLoadMine(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	b := newBuilder(twoAssetLedger())

	mine, err := b.LoadMine(context.Background(), bob)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, []uint64{2}, ids(mine.Assets), "wrong ids for bob")

	mine, err = b.LoadMine(context.Background(), address.Normalise("0x000000000000000000000000000000000000000A"))
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, []uint64{1}, ids(mine.Assets), "wrong ids for alice")

	mine, err = b.LoadMine(context.Background(), dave)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 0, mine.Len(), "wrong count for dave")
}

func TestLoadMineFailuresOfOwnerOnly(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.Fail(fixtures.OpPermissionEvents, 1, fault.Transient(errors.New("timeout"), "filterLogs", 1))

	b := newBuilder(l)

	mine, err := b.LoadMine(context.Background(), bob)
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, mine.Err(), "failure of another owner reported")

	mine, err = b.LoadMine(context.Background(), alice)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 0, mine.Len(), "wrong count")
	assert.Equal(t, 1, len(mine.Failures), "wrong failure count")
}

func TestLoadAccessible(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	b := newBuilder(twoAssetLedger())

	items := []struct {
		user     address.Address
		expected []uint64
	}{
		{alice, []uint64{1}},
		{bob, []uint64{2}},
		{carol, []uint64{1}},
		{dave, []uint64{}},
	}

	for i, item := range items {
		accessible, err := b.LoadAccessible(context.Background(), item.user)
		assert.Nil(t, err, "%d: wrong error", i)
		assert.Equal(t, item.expected, ids(accessible.Assets), "%d: wrong ids", i)
	}
}

func TestSubsetsOfLoadAll(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	third := l.Register(carol, "third")
	l.Grant(third, alice)
	l.Transfer(1, dave)

	b := newBuilder(l)
	all, err := b.LoadAll(context.Background())
	assert.Nil(t, err, "wrong error")

	for _, user := range []address.Address{alice, bob, carol, dave} {
		mine, err := b.LoadMine(context.Background(), user)
		assert.Nil(t, err, "wrong error")
		accessible, err := b.LoadAccessible(context.Background(), user)
		assert.Nil(t, err, "wrong error")

		for _, a := range mine.Assets {
			assert.Contains(t, accessible.Assets, a, "%s: owned asset %d not accessible", user, a.Id)
			assert.Contains(t, all.Assets, a, "%s: owned asset %d not in all", user, a.Id)
			assert.True(t, a.Permissions.Has(user), "%s: owner missing from permissions of %d", user, a.Id)
		}
		for _, a := range accessible.Assets {
			assert.Contains(t, all.Assets, a, "%s: accessible asset %d not in all", user, a.Id)
		}
	}
}

func TestLoadOne(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	b := newBuilder(twoAssetLedger())

	a, err := b.LoadOne(context.Background(), 1)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, uint64(1), a.Id, "wrong id")
	assert.Equal(t, []address.Address{alice, carol}, a.Permissions.Sorted(), "wrong permissions")

	a, err = b.LoadOne(context.Background(), 3)
	assert.Nil(t, a, "asset returned")
	assert.Equal(t, fault.AssetNotFound, err, "wrong error")
	assert.True(t, fault.IsErrNotFound(err), "wrong error class")

	a, err = b.LoadOne(context.Background(), 0)
	assert.Nil(t, a, "asset returned")
	assert.Equal(t, fault.InvalidAssetId, err, "wrong error")
}

func TestLoadOneDecodeEnd(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := twoAssetLedger()
	l.SetEndMode(fixtures.DecodeEnd)

	a, err := newBuilder(l).LoadOne(context.Background(), 7)
	assert.Nil(t, a, "asset returned")
	assert.Equal(t, fault.AssetNotFound, err, "wrong error")
}

func TestLoadOneTransient(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Asset(gomock.Any(), uint64(5)).
		Return(nil, fault.Transient(errors.New("no route to host"), "getAsset", 5)).
		Times(1)

	a, err := newBuilder(reader).LoadOne(context.Background(), 5)
	assert.Nil(t, a, "asset returned")
	assert.True(t, fault.IsErrTransient(err), "wrong error class: %v", err)
}

func TestLoadOnePermissionsUnreadable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Asset(gomock.Any(), uint64(4)).
		Return(&ledger.Record{Owner: alice, Name: "four"}, nil).
		Times(1)
	reader.EXPECT().PermissionEvents(gomock.Any(), uint64(4)).
		Return(nil, fault.Transient(errors.New("connection reset"), "accessEvents", 4)).
		Times(1)
	reader.EXPECT().UsageCount(gomock.Any(), uint64(4)).Return(uint64(0), nil).AnyTimes()

	a, err := newBuilder(reader).LoadOne(context.Background(), 4)
	assert.Nil(t, a, "asset returned without permissions")
	assert.True(t, fault.IsErrPermission(err), "wrong error: %v", err)
	assert.True(t, fault.IsErrTransient(err), "cause lost: %v", err)
}

func TestCount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count, err := newBuilder(twoAssetLedger()).Count(context.Background())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, uint64(2), count, "wrong count")
}

func TestBatchFilter(t *testing.T) {
	batch := &view.Batch{
		Assets: []asset.Asset{
			{Id: 1, Owner: alice},
			{Id: 2, Owner: bob},
			{Id: 3, Owner: alice},
		},
		Failures: []view.Failure{
			{AssetId: 4, Owner: carol, Err: fault.AssetNotFound},
		},
	}

	filtered := batch.Filter(func(a asset.Asset) bool {
		return a.IsOwnedBy(alice)
	})
	assert.Equal(t, []uint64{1, 3}, ids(filtered.Assets), "wrong ids")
	assert.Equal(t, 1, len(filtered.Failures), "failures not copied")
	assert.Equal(t, 3, batch.Len(), "original batch modified")
}
