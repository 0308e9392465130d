// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/view"
)

// context for one command: bounded by the ledger timeout and
// cancelled by an interrupt
func commandContext(m *metadata) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, m.config.timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func withSession(c *cli.Context, run func(ctx context.Context, m *metadata, s *session) error) error {
	m := c.App.Metadata["config"].(*metadata)

	ctx, cancel := commandContext(m)
	defer cancel()

	s, err := openSession(ctx, m.config, !m.noCache)
	if nil != err {
		return err
	}
	defer s.close()

	return run(ctx, m, s)
}

func runCount(c *cli.Context) error {
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		count, err := s.builder.Count(ctx)
		if nil != err {
			return err
		}
		return printJson(m.w, countReply{Count: count})
	})
}

func runList(c *cli.Context) error {
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		result, err := s.loadAll(ctx)
		if nil != err {
			return err
		}
		return printJson(m.w, newBatchReply(result, result.Batch))
	})
}

func runShow(c *cli.Context) error {
	id := c.Uint64("id")
	if 0 == id {
		return ErrMissingId
	}
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		return showAsset(ctx, m.w, s.builder, id, func(a *asset.Asset) interface{} {
			return a
		})
	})
}

func runUsage(c *cli.Context) error {
	id := c.Uint64("id")
	if 0 == id {
		return ErrMissingId
	}
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		return showAsset(ctx, m.w, s.builder, id, func(a *asset.Asset) interface{} {
			return newUsageReply(a)
		})
	})
}

// an unknown id is an answer, not a failure
func showAsset(ctx context.Context, w io.Writer, b *view.Builder, id uint64, reply func(*asset.Asset) interface{}) error {
	a, err := b.LoadOne(ctx, id)
	if fault.IsErrNotFound(err) || errors.Is(err, fault.InvalidAssetId) {
		return printJson(w, notFoundReply{Id: id})
	}
	if nil != err {
		return err
	}
	return printJson(w, reply(a))
}

func runMine(c *cli.Context) error {
	owner, err := addressFlag(c, "owner")
	if nil != err {
		return err
	}
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		result, err := s.loadAll(ctx)
		if nil != err {
			return err
		}
		return printJson(m.w, newBatchReply(result, view.Mine(result.Batch, owner)))
	})
}

func runAccessible(c *cli.Context) error {
	user, err := addressFlag(c, "address")
	if nil != err {
		return err
	}
	return withSession(c, func(ctx context.Context, m *metadata, s *session) error {
		result, err := s.loadAll(ctx)
		if nil != err {
			return err
		}
		return printJson(m.w, newBatchReply(result, view.Accessible(result.Batch, user)))
	})
}

func addressFlag(c *cli.Context, name string) (address.Address, error) {
	s := c.String(name)
	if "" == s {
		return "", ErrMissingAddress
	}
	return address.Parse(s)
}
