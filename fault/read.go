// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
	"strings"
)

// ReadError - a failed ledger read, carrying both its class and the
// underlying cause
type ReadError struct {
	Op    string
	Id    uint64
	Class error
	Err   error
}

func (e *ReadError) Error() string {
	if nil == e.Err {
		return fmt.Sprintf("%s(%d): %s", e.Op, e.Id, e.Class)
	}
	return fmt.Sprintf("%s(%d): %s: %s", e.Op, e.Id, e.Class, e.Err)
}

// Unwrap - expose class and cause to errors.Is/errors.As
func (e *ReadError) Unwrap() []error {
	if nil == e.Err {
		return []error{e.Class}
	}
	return []error{e.Class, e.Err}
}

// Transient - wrap a network or provider failure
func Transient(err error, op string, id uint64) error {
	return &ReadError{Op: op, Id: id, Class: LedgerUnreachable, Err: err}
}

// Decode - wrap an empty or undecodable ledger result
func Decode(err error, op string, id uint64) error {
	return &ReadError{Op: op, Id: id, Class: EmptyResult, Err: err}
}

// Configuration - wrap a failure caused by the ledger location or
// credentials
func Configuration(err error, op string, id uint64) error {
	return &ReadError{Op: op, Id: id, Class: ContractNotDeployed, Err: err}
}

// PermissionError - the permission log of an otherwise valid asset
// could not be read
type PermissionError struct {
	AssetId uint64
	Err     error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permissions of asset %d unavailable: %s", e.AssetId, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// IsErrPermission - permission log could not be read
func IsErrPermission(e error) bool { var t *PermissionError; return errors.As(e, &t) }

// PartialError - a paged read stopped before the end, the entries
// before Read are valid
type PartialError struct {
	AssetId uint64
	Read    uint64
	Total   uint64
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s: asset %d: read %d of %d: %s", UsageIncomplete, e.AssetId, e.Read, e.Total, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// IsErrPartial - result is a valid prefix of the full data
func IsErrPartial(e error) bool { var t *PartialError; return errors.As(e, &t) }

// AssetFailure - one asset that could not be assembled
type AssetFailure struct {
	AssetId uint64
	Err     error
}

// BatchError - the per-asset failures of a bulk load
type BatchError struct {
	Failures []AssetFailure
}

func (e *BatchError) Error() string {
	if 1 == len(e.Failures) {
		return fmt.Sprintf("asset %d: %s", e.Failures[0].AssetId, e.Failures[0].Err)
	}
	s := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		s = append(s, fmt.Sprintf("asset %d: %s", f.AssetId, f.Err))
	}
	return fmt.Sprintf("%d assets failed: %s", len(e.Failures), strings.Join(s, "; "))
}

// Unwrap - so that a batch of transient failures is itself retryable
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// IsErrBatch - some assets of a bulk load failed
func IsErrBatch(e error) bool { var t *BatchError; return errors.As(e, &t) }
