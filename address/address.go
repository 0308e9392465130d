// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/assetview/fault"
)

// Address - ledger account in canonical lowercase form
type Address string

// Zero - the sentinel owner of an unregistered asset id
const Zero Address = "0x0000000000000000000000000000000000000000"

// Normalise - canonical form of an address as read from the ledger
//
// no validation is done, identity comparisons only need the case folded
func Normalise(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

// Parse - validate a user supplied address and return its canonical form
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return "", fault.InvalidAddress
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return Normalise(s), nil
}

// FromCommon - canonical form of a decoded ledger address
func FromCommon(a common.Address) Address {
	return Normalise(a.Hex())
}

// Common - convert back for use in ledger calls
func (a Address) Common() common.Address {
	return common.HexToAddress(string(a))
}

// IsSentinel - true for the all-zero owner and for an absent field
func (a Address) IsSentinel() bool {
	n := Normalise(string(a))
	return "" == n || Zero == n
}

// Equal - case-insensitive identity
func (a Address) Equal(b Address) bool {
	return Normalise(string(a)) == Normalise(string(b))
}

func (a Address) String() string {
	return string(a)
}
