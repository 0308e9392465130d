// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Classes map the failures of the asset view onto what a caller can
// do about them:
//
//   DecodeError         end of data while enumerating, never shown
//   NotFoundError       nothing there, not a failure
//   TransientError      ledger unreachable, retry later
//   ConfigurationError  fix the configuration, never retry
//   PartialError        usage log cut short, prefix is valid
//   PermissionError     permissions of one asset unavailable
//   BatchError          some assets of a bulk load failed
package fault
