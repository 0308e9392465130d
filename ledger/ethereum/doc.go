// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ethereum - ledger.Reader over an asset registry contract
//
// Asset records and usage entries are read with eth_call, permission
// changes come from the contract's AccessGranted and AccessRevoked
// logs.  A log's position in the ledger is:
//
//   order = block number << 24 | log index
//
// Read failures are classified:
//
//   no code at contract address          - fault.ContractNotDeployed
//   empty/undecodable result, revert     - fault.EmptyResult
//   cancelled context                    - the context error
//   anything else                        - fault.LedgerUnreachable
package ethereum
