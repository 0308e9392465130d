// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contract method and event names
const (
	methodAsset        = "getAsset"
	methodUsageCount   = "getUsageCount"
	methodUsageEntry   = "getUsageEntry"
	eventAccessGranted = "AccessGranted"
	eventAccessRevoked = "AccessRevoked"
)

// ContractABI - the parts of the registry contract that are read
const ContractABI = `[
  {
    "type": "function", "name": "getAsset", "stateMutability": "view",
    "inputs": [{"name": "assetId", "type": "uint256"}],
    "outputs": [
      {"name": "owner", "type": "address"},
      {"name": "author", "type": "address"},
      {"name": "name", "type": "string"},
      {"name": "description", "type": "string"},
      {"name": "assetType", "type": "string"},
      {"name": "contentRef", "type": "string"},
      {"name": "createdAt", "type": "uint256"}
    ]
  },
  {
    "type": "function", "name": "getUsageCount", "stateMutability": "view",
    "inputs": [{"name": "assetId", "type": "uint256"}],
    "outputs": [{"name": "count", "type": "uint256"}]
  },
  {
    "type": "function", "name": "getUsageEntry", "stateMutability": "view",
    "inputs": [
      {"name": "assetId", "type": "uint256"},
      {"name": "index", "type": "uint256"}
    ],
    "outputs": [
      {"name": "actor", "type": "address"},
      {"name": "timestamp", "type": "uint256"},
      {"name": "description", "type": "string"}
    ]
  },
  {
    "type": "event", "name": "AccessGranted", "anonymous": false,
    "inputs": [
      {"name": "assetId", "type": "uint256", "indexed": true},
      {"name": "grantee", "type": "address", "indexed": true}
    ]
  },
  {
    "type": "event", "name": "AccessRevoked", "anonymous": false,
    "inputs": [
      {"name": "assetId", "type": "uint256", "indexed": true},
      {"name": "grantee", "type": "address", "indexed": true}
    ]
  }
]`

// ParseABI - the decoded contract description
func ParseABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(ContractABI))
}

// indexed event fields, in topic order
func indexedArguments(event abi.Event) abi.Arguments {
	indexed := abi.Arguments{}
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}
