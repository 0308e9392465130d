// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fallback"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/storage"
)

func TestDumpSnapshot(t *testing.T) {
	owner := address.Address("0x000000000000000000000000000000000000000a")
	record := &ledger.Record{Owner: owner, Author: owner, Name: "poem"}

	s := &fallback.Snapshot{
		Taken:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Assets: []asset.Asset{asset.New(1, record, address.NewSet(owner), nil)},
	}
	data, err := s.Encode()
	assert.Nil(t, err, "wrong encode error")

	store := storage.NewMemory(0)
	assert.Nil(t, store.Set("good", data), "wrong set error")
	assert.Nil(t, store.Set("bad", []byte("junk")), "wrong set error")

	buffer := &bytes.Buffer{}
	assert.Nil(t, dumpSnapshot(buffer, store, "good", true), "wrong dump error")
	assert.Nil(t, dumpSnapshot(buffer, store, "bad", false), "wrong dump error")
	assert.Nil(t, dumpSnapshot(buffer, store, "absent", false), "wrong dump error")

	expected := "good: taken: 2020-06-01T00:00:00Z  assets: 1  bytes: " + strconv.Itoa(len(data)) + "\n" +
		"  1: \"poem\"  owner: " + string(owner) + "  permissions: 1  usage: 0\n" +
		"bad: snapshot is corrupt  bytes: 4\n" +
		"absent: not present\n"
	assert.Equal(t, expected, buffer.String(), "wrong output")
}
