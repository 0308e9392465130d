// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/ledger/fixtures"
	"github.com/bitmark-inc/assetview/ledger/mocks"
	"github.com/bitmark-inc/assetview/permission"
	"github.com/bitmark-inc/logger"
)

const (
	ownerA = address.Address("0xAAA")
	userB  = address.Address("0xbbb")
	userC  = address.Address("0xccc")
)

func grant(a address.Address, order uint64) ledger.PermissionEvent {
	return ledger.PermissionEvent{Kind: ledger.Grant, AssetId: 1, Grantee: a, Order: order}
}

func revoke(a address.Address, order uint64) ledger.PermissionEvent {
	return ledger.PermissionEvent{Kind: ledger.Revoke, AssetId: 1, Grantee: a, Order: order}
}

func TestReconcile(t *testing.T) {
	items := []struct {
		name     string
		events   []ledger.PermissionEvent
		expected []address.Address
	}{
		{"no events", nil, []address.Address{"0xaaa"}},
		{"grant grant revoke", []ledger.PermissionEvent{grant(userB, 1), grant(userC, 2), revoke(userB, 3)}, []address.Address{"0xaaa", "0xccc"}},
		{"grant revoke grant", []ledger.PermissionEvent{grant(userB, 1), revoke(userB, 2), grant(userB, 3)}, []address.Address{"0xaaa", "0xbbb"}},
		{"revoke owner", []ledger.PermissionEvent{revoke("0xaaa", 1)}, []address.Address{"0xaaa"}},
		{"revoke owner mixed case", []ledger.PermissionEvent{revoke("0XAaA", 1)}, []address.Address{"0xaaa"}},
		{"duplicate grants", []ledger.PermissionEvent{grant(userB, 1), grant("0xBBB", 2)}, []address.Address{"0xaaa", "0xbbb"}},
		{"revoke never granted", []ledger.PermissionEvent{revoke(userC, 1)}, []address.Address{"0xaaa"}},
		{"case-insensitive revoke", []ledger.PermissionEvent{grant("0xBbB", 1), revoke("0xbBb", 2)}, []address.Address{"0xaaa"}},
		{"out of order arrival", []ledger.PermissionEvent{revoke(userB, 2), grant(userB, 1)}, []address.Address{"0xaaa"}},
		{"out of order arrival regrant", []ledger.PermissionEvent{grant(userB, 3), revoke(userB, 2), grant(userB, 1)}, []address.Address{"0xaaa", "0xbbb"}},
	}

	for _, item := range items {
		set := permission.Reconcile(ownerA, item.events)
		assert.Equal(t, item.expected, set.Sorted(), "%s: wrong permissions", item.name)
		assert.True(t, set.Has(ownerA), "%s: owner missing", item.name)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	events := []ledger.PermissionEvent{grant(userB, 1), grant(userC, 2), revoke(userB, 3)}
	first := permission.Reconcile(ownerA, events)
	for i := 0; i < 5; i += 1 {
		assert.Equal(t, first.Sorted(), permission.Reconcile(ownerA, events).Sorted(), "replay %d differs", i)
	}

	// independent grants commute
	swapped := []ledger.PermissionEvent{grant(userC, 1), grant(userB, 2)}
	straight := []ledger.PermissionEvent{grant(userB, 1), grant(userC, 2)}
	assert.Equal(t, permission.Reconcile(ownerA, straight).Sorted(), permission.Reconcile(ownerA, swapped).Sorted(), "independent grants do not commute")

	// input is left untouched
	unordered := []ledger.PermissionEvent{revoke(userB, 2), grant(userB, 1)}
	permission.Reconcile(ownerA, unordered)
	assert.Equal(t, uint64(2), unordered[0].Order, "input reordered")
}

func TestPermissionsFromLedger(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := fixtures.NewLedger()
	id := l.Register(ownerA, "one")
	l.Grant(id, userB)
	l.Grant(id, userC)
	l.Revoke(id, userB)
	l.Revoke(id, ownerA)
	l.ReverseEvents(true)

	r := permission.New(l, logger.New(fixtures.LogCategory))
	set, err := r.Permissions(context.Background(), id, ownerA)
	assert.Nil(t, err, "permissions error")
	assert.Equal(t, []address.Address{"0xaaa", "0xccc"}, set.Sorted(), "wrong permissions")
}

func TestPermissionsIgnoreOtherAssets(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockReader(ctl)
	m.EXPECT().PermissionEvents(gomock.Any(), uint64(2)).Return([]ledger.PermissionEvent{
		{Kind: ledger.Grant, AssetId: 2, Grantee: userB, Order: 1},
		{Kind: ledger.Grant, AssetId: 3, Grantee: userC, Order: 2},
	}, nil).Times(1)

	r := permission.New(m, logger.New(fixtures.LogCategory))
	set, err := r.Permissions(context.Background(), 2, ownerA)
	assert.Nil(t, err, "permissions error")
	assert.Equal(t, []address.Address{"0xaaa", "0xbbb"}, set.Sorted(), "event for another asset applied")
}

func TestPermissionsUnreadable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	cause := fault.Transient(errors.New("502 bad gateway"), "permissionEvents", 1)

	m := mocks.NewMockReader(ctl)
	m.EXPECT().PermissionEvents(gomock.Any(), uint64(1)).Return(nil, cause).Times(1)

	r := permission.New(m, logger.New(fixtures.LogCategory))
	set, err := r.Permissions(context.Background(), 1, ownerA)
	assert.True(t, fault.IsErrPermission(err), "permission failure not flagged")
	assert.True(t, fault.IsErrTransient(err), "cause lost")
	assert.Equal(t, 0, set.Len(), "owner only set substituted on failure")
}
