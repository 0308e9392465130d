// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/assetview/fault"
)

// Limit - wait for a single request
//
// a reservation that would outlast the context deadline fails at once
func Limit(ctx context.Context, limiter *rate.Limiter) error {
	return LimitN(ctx, limiter, 1, limiter.Burst())
}

// LimitN - wait for a multiple request
func LimitN(ctx context.Context, limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		if err := wait(ctx, limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return wait(ctx, limiter, count)
}

func wait(ctx context.Context, limiter *rate.Limiter, count int) error {
	err := limiter.WaitN(ctx, count)
	if nil == err {
		return nil
	}
	if nil != ctx.Err() {
		return ctx.Err()
	}
	return fault.RateLimiting
}
