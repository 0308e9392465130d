// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/bitmark-inc/assetview/fault"
)

// substrings of node and ABI errors that mean the read itself was
// answered but has no usable value
var decodeFailures = []string{
	"abi: ",
	"execution reverted",
	"improperly formatted output",
}

// map a node or ABI error onto the fault classes
func classify(ctx context.Context, err error, op string, id uint64) error {
	if nil == err {
		return nil
	}

	// cancellation is reported as is, never as a ledger failure
	if ctxErr := ctx.Err(); nil != ctxErr {
		return ctxErr
	}

	if errors.Is(err, bind.ErrNoCode) {
		return fault.Configuration(err, op, id)
	}

	message := err.Error()
	for _, s := range decodeFailures {
		if strings.Contains(message, s) {
			return fault.Decode(err, op, id)
		}
	}

	return fault.Transient(err, op, id)
}
