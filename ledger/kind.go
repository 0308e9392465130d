// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/assetview/fault"
)

// EventKind - type of a permission event
type EventKind int

// possible kinds
const (
	Grant EventKind = iota + 1
	Revoke
)

func (k EventKind) String() string {
	switch k {
	case Grant:
		return "grant"
	case Revoke:
		return "revoke"
	default:
		return "unknown"
	}
}

// MarshalText - convert kind to text
func (k EventKind) MarshalText() ([]byte, error) {
	switch k {
	case Grant, Revoke:
		return []byte(k.String()), nil
	default:
		return nil, fault.InvalidEventKind
	}
}

// UnmarshalText - convert text to kind
func (k *EventKind) UnmarshalText(s []byte) error {
	switch string(s) {
	case "grant":
		*k = Grant
	case "revoke":
		*k = Revoke
	default:
		return fault.InvalidEventKind
	}
	return nil
}
