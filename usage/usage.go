// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package usage

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/logger"
)

const defaultConcurrency = 4

// MaximumEntries - the most usage entries read for one asset, a larger
// count from the ledger is read up to this bound and reported partial
const MaximumEntries = 1 << 14

// Aggregator - pages through the usage log of an asset
type Aggregator struct {
	log         *logger.L
	reader      ledger.Reader
	concurrency int
}

// New - create an aggregator, concurrency < 1 selects the default
func New(reader ledger.Reader, log *logger.L, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Aggregator{
		log:         log,
		reader:      reader,
		concurrency: concurrency,
	}
}

// History - usage entries oldest first
//
// a missing count gives an empty history, usage is display data only.
// if an entry cannot be read the entries before it are returned with a
// *fault.PartialError, as are the first MaximumEntries entries of a
// longer log
func (a *Aggregator) History(ctx context.Context, id uint64) ([]ledger.UsageEntry, error) {
	count, err := a.reader.UsageCount(ctx, id)
	if nil != err {
		if nil != ctx.Err() {
			return nil, ctx.Err()
		}
		a.log.Warnf("asset: %d  usage count error: %s", id, err)
		return []ledger.UsageEntry{}, nil
	}
	if 0 == count {
		return []ledger.UsageEntry{}, nil
	}

	total := count
	if count > MaximumEntries {
		a.log.Warnf("asset: %d  usage count: %d  exceeds: %d", id, count, MaximumEntries)
		count = MaximumEntries
	}

	entries := make([]ledger.UsageEntry, count)
	failed := &firstFailure{index: count}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

loop:
	for i := uint64(0); i < count; i += 1 {
		index := i
		if failed.after(index) {
			break loop
		}
		select {
		case <-gctx.Done():
			break loop
		default:
		}
		g.Go(func() error {
			// nothing past the first failure is needed
			if failed.after(index) {
				return nil
			}
			entry, err := a.reader.UsageEntry(gctx, id, index)
			if nil != err {
				failed.set(index, err)
				return nil
			}
			entries[index] = *entry
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); nil != err {
		return nil, err
	}

	if n, err := failed.get(); nil != err {
		a.log.Warnf("asset: %d  usage entry: %d of %d  error: %s", id, n, total, err)
		return entries[:n], &fault.PartialError{
			AssetId: id,
			Read:    n,
			Total:   total,
			Err:     err,
		}
	}

	if total > count {
		return entries, &fault.PartialError{
			AssetId: id,
			Read:    count,
			Total:   total,
			Err:     fault.UsageCountOutOfRange,
		}
	}

	a.log.Debugf("asset: %d  usage entries: %d", id, count)
	return entries, nil
}

// lowest failed index seen so far
type firstFailure struct {
	sync.Mutex
	index uint64
	err   error
}

func (f *firstFailure) set(index uint64, err error) {
	f.Lock()
	defer f.Unlock()
	if nil == f.err || index < f.index {
		f.index = index
		f.err = err
	}
}

func (f *firstFailure) after(index uint64) bool {
	f.Lock()
	defer f.Unlock()
	return nil != f.err && index > f.index
}

func (f *firstFailure) get() (uint64, error) {
	f.Lock()
	defer f.Unlock()
	return f.index, f.err
}
