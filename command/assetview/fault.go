// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitmark-inc/assetview/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidInterval = fault.InvalidError("invalid interval")
	ErrMissingAddress  = fault.InvalidError("address is required")
	ErrMissingId       = fault.InvalidError("asset id is required")
)

// text printed before exiting non-zero
func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case fault.IsRetryable(err):
		return fmt.Sprintf("ledger unreachable, retry: %s", err)
	case fault.IsErrConfiguration(err):
		return fmt.Sprintf("configuration error: %s", err)
	case fault.IsErrNotFound(err):
		return fmt.Sprintf("not found: %s", err)
	default:
		return fmt.Sprintf("terminated with error: %s", err)
	}
}
