// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fallback_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fallback"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
)

func testSnapshot() *fallback.Snapshot {
	created := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	record := &ledger.Record{
		Owner:      alice,
		Author:     alice,
		Name:       "poem",
		AssetType:  "text",
		ContentRef: "ipfs://example",
		CreatedAt:  created,
	}
	usage := []ledger.UsageEntry{
		{Actor: bob, Timestamp: created.Add(time.Hour), Description: "read"},
	}
	return &fallback.Snapshot{
		Taken: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Assets: []asset.Asset{
			asset.New(1, record, address.NewSet(alice, bob), usage),
		},
	}
}

func TestSnapshotEncodeDecode(t *testing.T) {
	s := testSnapshot()

	data, err := s.Encode()
	assert.Nil(t, err, "wrong encode error")
	assert.True(t, bytes.HasPrefix(data, []byte("assetview-snapshot v1\n")), "wrong header")

	decoded, err := fallback.DecodeSnapshot(data)
	assert.Nil(t, err, "wrong decode error")
	assert.Equal(t, s.Taken, decoded.Taken, "wrong taken time")
	assert.Equal(t, s.Assets, decoded.Assets, "wrong assets")
}

func TestSnapshotEmpty(t *testing.T) {
	s := &fallback.Snapshot{Taken: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)}

	data, err := s.Encode()
	assert.Nil(t, err, "wrong encode error")

	decoded, err := fallback.DecodeSnapshot(data)
	assert.Nil(t, err, "wrong decode error")
	assert.NotNil(t, decoded.Assets, "nil assets")
	assert.Equal(t, 0, len(decoded.Assets), "wrong asset count")
}

func TestSnapshotCorrupt(t *testing.T) {
	data, err := testSnapshot().Encode()
	assert.Nil(t, err, "wrong encode error")

	tampered := []byte(strings.Replace(string(data), "poem", "poet", 1))
	wrongHeader := []byte(strings.Replace(string(data), "v1", "v9", 1))

	items := [][]byte{
		{},
		[]byte("assetview-snapshot v1"),
		data[:len(data)-1],
		tampered,
		wrongHeader,
	}

	for i, item := range items {
		s, err := fallback.DecodeSnapshot(item)
		assert.Nil(t, s, "%d: snapshot returned", i)
		assert.Equal(t, fault.SnapshotCorrupt, err, "%d: wrong error", i)
	}
}

func TestDigest(t *testing.T) {
	d := fallback.NewDigest([]byte{})
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", d.String(), "wrong digest")
	assert.Equal(t, "<digest:"+d.String()+">", d.GoString(), "wrong go string")
}
