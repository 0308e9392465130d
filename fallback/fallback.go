// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fallback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/storage"
	"github.com/bitmark-inc/assetview/view"
	"github.com/bitmark-inc/logger"
)

// Loader - source of fresh batches, normally a *view.Builder
type Loader interface {
	LoadAll(ctx context.Context) (*view.Batch, error)
}

// Result - a batch and where it came from
type Result struct {
	Batch *view.Batch
	Stale bool      // true if read from the cache
	Taken time.Time // when the batch was read from the ledger
	Cause error     // the ledger failure that caused a stale result
}

// Cached - load from the ledger, fall back to the last good snapshot
// only when the ledger is unreachable
type Cached struct {
	log    *logger.L
	loader Loader
	store  storage.Store
	key    string
	now    func() time.Time
}

// New - create a cached loader
func New(loader Loader, store storage.Store, key string, log *logger.L) *Cached {
	return &Cached{
		log:    log,
		loader: loader,
		store:  store,
		key:    key,
		now:    time.Now,
	}
}

// SnapshotKey - cache key for a ledger contract on a chain
func SnapshotKey(contract string, chain string) string {
	return "snapshot:" + strings.ToLower(strings.TrimSpace(chain)) + ":" + strings.ToLower(strings.TrimSpace(contract))
}

// LoadAll - fresh batch, or the cached snapshot if the ledger is
// unreachable and a valid snapshot exists
func (c *Cached) LoadAll(ctx context.Context) (*Result, error) {
	batch, err := c.loader.LoadAll(ctx)
	if nil == err {
		taken := c.now().UTC()
		c.save(batch, taken)
		return &Result{
			Batch: batch,
			Taken: taken,
		}, nil
	}

	if !shouldFallBack(ctx, err) {
		return nil, err
	}

	snapshot, found := c.load()
	if !found {
		return nil, err
	}

	c.log.Warnf("ledger unreachable: %s  using snapshot taken: %s", err, snapshot.Taken.Format(time.RFC3339))
	return &Result{
		Batch: &view.Batch{
			Assets:   snapshot.Assets,
			Failures: []view.Failure{},
		},
		Stale: true,
		Taken: snapshot.Taken,
		Cause: err,
	}, nil
}

// only a reachability failure falls back, cancellation and bad
// configuration are returned as they are
func shouldFallBack(ctx context.Context, err error) bool {
	if nil != ctx.Err() {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return fault.IsRetryable(err)
}

// a batch with failures is not written over a complete snapshot
func (c *Cached) save(batch *view.Batch, taken time.Time) {
	if nil != batch.Err() {
		c.log.Warnf("snapshot not saved: %s", batch.Err())
		return
	}

	s := &Snapshot{
		Taken:  taken,
		Assets: batch.Assets,
	}
	data, err := s.Encode()
	if nil != err {
		c.log.Errorf("snapshot encode error: %s", err)
		return
	}
	err = c.store.Set(c.key, data)
	if nil != err {
		c.log.Errorf("snapshot: %q  write error: %s", c.key, err)
		return
	}
	c.log.Debugf("snapshot: %q  assets: %d  saved", c.key, len(s.Assets))
}

func (c *Cached) load() (*Snapshot, bool) {
	data, found, err := c.store.Get(c.key)
	if nil != err {
		c.log.Errorf("snapshot: %q  read error: %s", c.key, err)
		return nil, false
	}
	if !found {
		c.log.Infof("snapshot: %q  not present", c.key)
		return nil, false
	}

	s, err := DecodeSnapshot(data)
	if nil != err {
		c.log.Errorf("snapshot: %q  error: %s", c.key, err)
		return nil, false
	}
	return s, true
}
