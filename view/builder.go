// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/enumerator"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/permission"
	"github.com/bitmark-inc/assetview/usage"
	"github.com/bitmark-inc/logger"
)

const (
	defaultConcurrency      = 8
	defaultUsageConcurrency = 4
)

// Builder - composes enumeration, permissions and usage into assets
//
// holds no state between calls, every load reads the ledger afresh
type Builder struct {
	log              *logger.L
	reader           ledger.Reader
	enumerator       *enumerator.Enumerator
	permissions      *permission.Reconciler
	usage            *usage.Aggregator
	concurrency      int
	usageConcurrency int
}

// Option - builder setting
type Option func(*Builder)

// WithConcurrency - number of assets assembled at the same time
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithUsageConcurrency - number of usage entries of one asset read at
// the same time
func WithUsageConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.usageConcurrency = n
		}
	}
}

// New - create a builder over a ledger
func New(reader ledger.Reader, log *logger.L, options ...Option) *Builder {
	b := &Builder{
		log:              log,
		reader:           reader,
		concurrency:      defaultConcurrency,
		usageConcurrency: defaultUsageConcurrency,
	}
	for _, option := range options {
		option(b)
	}
	b.enumerator = enumerator.New(reader, log)
	b.permissions = permission.New(reader, log)
	b.usage = usage.New(reader, log, b.usageConcurrency)
	return b
}

// Count - number of registered assets
func (b *Builder) Count(ctx context.Context) (uint64, error) {
	return b.enumerator.Count(ctx)
}

// LoadOne - a single asset
//
// an id past the end gives fault.AssetNotFound
func (b *Builder) LoadOne(ctx context.Context, id uint64) (*asset.Asset, error) {
	if 0 == id {
		return nil, fault.InvalidAssetId
	}

	record, err := b.reader.Asset(ctx, id)
	if nil != err {
		if enumerator.LooksLikeEndOfData(err) {
			return nil, fault.AssetNotFound
		}
		if nil != ctx.Err() {
			return nil, ctx.Err()
		}
		b.log.Errorf("asset: %d  read error: %s", id, err)
		return nil, err
	}
	if !record.Exists() {
		return nil, fault.AssetNotFound
	}

	return b.assemble(ctx, id, record)
}

// LoadAll - every registered asset in ascending id order
//
// only an enumeration failure or cancellation is returned as an
// error, assets that fail individually are listed in the batch
func (b *Builder) LoadAll(ctx context.Context) (*Batch, error) {
	type slot struct {
		id    uint64
		owner address.Address
		asset *asset.Asset
		err   error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	slots := []*slot{}
	it := b.enumerator.Iterate()

	// ids must be probed in sequence, assembly of each found asset is
	// dispatched while probing continues
	for {
		id, record, ok, err := it.Next(ctx)
		if nil != err {
			cancel()
			_ = g.Wait()
			return nil, err
		}
		if !ok {
			break
		}

		s := &slot{
			id:    id,
			owner: record.Owner,
		}
		slots = append(slots, s)

		g.Go(func() error {
			s.asset, s.err = b.assemble(gctx, s.id, record)
			return nil
		})
	}
	_ = g.Wait()

	// partial results are discarded
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	batch := &Batch{
		Assets:   make([]asset.Asset, 0, len(slots)),
		Failures: []Failure{},
	}
	for _, s := range slots {
		if nil != s.err {
			batch.Failures = append(batch.Failures, Failure{
				AssetId: s.id,
				Owner:   address.Normalise(string(s.owner)),
				Err:     s.err,
			})
			continue
		}
		batch.Assets = append(batch.Assets, *s.asset)
	}

	b.log.Infof("loaded assets: %d  failed: %d", len(batch.Assets), len(batch.Failures))
	return batch, nil
}

// LoadMine - assets owned by an address
func (b *Builder) LoadMine(ctx context.Context, owner address.Address) (*Batch, error) {
	all, err := b.LoadAll(ctx)
	if nil != err {
		return nil, err
	}
	return Mine(all, owner), nil
}

// LoadAccessible - assets an address owns or has been granted
func (b *Builder) LoadAccessible(ctx context.Context, user address.Address) (*Batch, error) {
	all, err := b.LoadAll(ctx)
	if nil != err {
		return nil, err
	}
	return Accessible(all, user), nil
}

// read permissions and usage in parallel and compose the asset
func (b *Builder) assemble(ctx context.Context, id uint64, record *ledger.Record) (*asset.Asset, error) {
	var permissions address.Set
	var history []ledger.UsageEntry
	incomplete := false

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		permissions, err = b.permissions.Permissions(gctx, id, record.Owner)
		return err
	})

	g.Go(func() error {
		var err error
		history, err = b.usage.History(gctx, id)
		if fault.IsErrPartial(err) {
			incomplete = true
			return nil
		}
		return err
	})

	if err := g.Wait(); nil != err {
		return nil, err
	}

	a := asset.New(id, record, permissions, history)
	a.UsageIncomplete = incomplete
	return &a, nil
}
