// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fallback"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/view"
)

type countReply struct {
	Count uint64 `json:"count,string"`
}

type failureReply struct {
	Id    uint64 `json:"id,string"`
	Error string `json:"error"`
}

type notFoundReply struct {
	Id    uint64 `json:"id,string"`
	Found bool   `json:"found"`
}

type batchReply struct {
	Stale    bool           `json:"stale"`
	Taken    time.Time      `json:"taken"`
	Cause    string         `json:"cause,omitempty"`
	Count    int            `json:"count"`
	Assets   []asset.Asset  `json:"assets"`
	Failures []failureReply `json:"failures,omitempty"`
}

type usageReply struct {
	Id         uint64              `json:"id,string"`
	Count      int                 `json:"count"`
	Incomplete bool                `json:"incomplete"`
	Entries    []ledger.UsageEntry `json:"entries"`
}

// batch is either the whole result or a filtered part of it
func newBatchReply(result *fallback.Result, batch *view.Batch) *batchReply {
	reply := &batchReply{
		Stale:  result.Stale,
		Taken:  result.Taken,
		Count:  batch.Len(),
		Assets: batch.Assets,
	}
	if nil != result.Cause {
		reply.Cause = result.Cause.Error()
	}
	for _, f := range batch.Failures {
		reply.Failures = append(reply.Failures, failureReply{
			Id:    f.AssetId,
			Error: f.Err.Error(),
		})
	}
	return reply
}

func newUsageReply(a *asset.Asset) *usageReply {
	return &usageReply{
		Id:         a.Id,
		Count:      len(a.UsageLog),
		Incomplete: a.UsageIncomplete,
		Entries:    a.UsageLog,
	}
}
