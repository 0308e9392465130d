// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConfigurationError GenericError
type DecodeError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TransientError GenericError

// common errors - keep in alphabetic order
var (
	AssetNotFound         = NotFoundError("asset not found")
	ContractNotDeployed   = ConfigurationError("no contract code at ledger address")
	DatabaseIsNotSet      = ProcessError("database is not set")
	EmptyResult           = DecodeError("empty result from ledger")
	IncompatibleDatabase  = ConfigurationError("database version is newer than supported")
	InvalidAddress        = InvalidError("invalid address")
	InvalidAssetId        = InvalidError("invalid asset id")
	InvalidChain          = ConfigurationError("invalid chain name")
	InvalidConcurrency    = ConfigurationError("invalid concurrency")
	InvalidConfiguration  = ConfigurationError("invalid configuration")
	InvalidContract       = ConfigurationError("invalid ledger contract address")
	InvalidCount          = InvalidError("invalid count")
	InvalidDataDirectory  = ConfigurationError("invalid data directory")
	InvalidEndpoint       = ConfigurationError("invalid ledger endpoint")
	InvalidEventKind      = InvalidError("invalid event kind")
	InvalidStructPointer  = InvalidError("invalid struct pointer")
	LedgerUnreachable     = TransientError("ledger unreachable")
	MissingEndpoint       = ConfigurationError("ledger endpoint is required")
	RateLimiting          = TransientError("rate limiting")
	SnapshotCorrupt       = ProcessError("snapshot is corrupt")
	UnexpectedResultCount = DecodeError("unexpected number of result values")
	UsageCountOutOfRange  = DecodeError("usage count out of range")
	UsageIncomplete       = ProcessError("usage log incomplete")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConfigurationError) Error() string { return string(e) }
func (e DecodeError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e TransientError) Error() string     { return string(e) }

// determine the class of an error
//
// wrapped errors are classified by the first class found in the chain
func IsErrConfiguration(e error) bool { var t ConfigurationError; return errors.As(e, &t) }
func IsErrDecode(e error) bool        { var t DecodeError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool       { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool      { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool       { var t ProcessError; return errors.As(e, &t) }
func IsErrTransient(e error) bool     { var t TransientError; return errors.As(e, &t) }

// IsRetryable - a caller may retry the operation that produced this error
func IsRetryable(e error) bool {
	return IsErrTransient(e) && !IsErrConfiguration(e)
}
