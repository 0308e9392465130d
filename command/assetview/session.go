// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/assetview/fallback"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/assetview/ledger/ethereum"
	"github.com/bitmark-inc/assetview/ratelimit"
	"github.com/bitmark-inc/assetview/storage"
	"github.com/bitmark-inc/assetview/view"
	"github.com/bitmark-inc/logger"
)

// the ledger connection and cache for one command
type session struct {
	log     *logger.L
	reader  *ethereum.Reader
	metered *ledger.Metered
	builder *view.Builder
	cache   *storage.LevelDB
	key     string
}

// connect to the ledger and, unless disabled, open the cache
func openSession(ctx context.Context, config *Configuration, useCache bool) (*session, error) {
	log := logger.New("session")

	reader, err := ethereum.Dial(ctx, ethereum.Configuration{
		Endpoint:  config.Ledger.Endpoint,
		Contract:  config.Ledger.Contract,
		FromBlock: config.Ledger.FromBlock,
	}, logger.New("ethereum"))
	if nil != err {
		return nil, err
	}

	metered := ledger.NewMetered(reader)
	limited := ratelimit.New(metered, rate.Limit(config.Ledger.RateLimit), config.Ledger.Burst)

	builder := view.New(limited, logger.New("view"),
		view.WithConcurrency(config.Concurrency),
		view.WithUsageConcurrency(config.UsageConcurrency),
	)

	s := &session{
		log:     log,
		reader:  reader,
		metered: metered,
		builder: builder,
		key:     fallback.SnapshotKey(config.Ledger.Contract, config.Ledger.Chain),
	}

	if useCache && config.Cache.Enable {
		cache, err := storage.OpenLevelDB(config.Cache.Database, storage.ReadWrite)
		if nil != err {
			// another process may hold the database lock
			log.Warnf("cache: %q  unavailable: %s", config.Cache.Database, err)
		} else {
			s.cache = cache
		}
	}

	return s, nil
}

func (s *session) close() {
	if nil != s.cache {
		if err := s.cache.Close(); nil != err {
			s.log.Errorf("cache close error: %s", err)
		}
	}
	s.reader.Close()
	s.log.Debugf("ledger reads: %+v", s.metered.Stats())
}

// every asset, from the cache only if the ledger is unreachable
func (s *session) loadAll(ctx context.Context) (*fallback.Result, error) {
	if nil != s.cache {
		return fallback.New(s.builder, s.cache, s.key, logger.New("fallback")).LoadAll(ctx)
	}

	batch, err := s.builder.LoadAll(ctx)
	if nil != err {
		return nil, err
	}
	return &fallback.Result{
		Batch: batch,
		Taken: time.Now().UTC(),
	}, nil
}
