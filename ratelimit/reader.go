// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/assetview/ledger"
)

type limitedReader struct {
	reader  ledger.Reader
	limiter *rate.Limiter
}

// New - throttle every read of a ledger
//
// a non-positive limit or burst leaves the reader unthrottled
func New(reader ledger.Reader, limit rate.Limit, burst int) ledger.Reader {
	if limit <= 0 || burst <= 0 {
		return reader
	}
	return &limitedReader{
		reader:  reader,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (l *limitedReader) Asset(ctx context.Context, id uint64) (*ledger.Record, error) {
	if err := Limit(ctx, l.limiter); nil != err {
		return nil, err
	}
	return l.reader.Asset(ctx, id)
}

func (l *limitedReader) PermissionEvents(ctx context.Context, id uint64) ([]ledger.PermissionEvent, error) {
	if err := Limit(ctx, l.limiter); nil != err {
		return nil, err
	}
	return l.reader.PermissionEvents(ctx, id)
}

func (l *limitedReader) UsageCount(ctx context.Context, id uint64) (uint64, error) {
	if err := Limit(ctx, l.limiter); nil != err {
		return 0, err
	}
	return l.reader.UsageCount(ctx, id)
}

func (l *limitedReader) UsageEntry(ctx context.Context, id uint64, index uint64) (*ledger.UsageEntry, error) {
	if err := Limit(ctx, l.limiter); nil != err {
		return nil, err
	}
	return l.reader.UsageEntry(ctx, id, index)
}
