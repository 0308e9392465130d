// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/bitmark-inc/assetview/address"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/logger"
)

// log index occupies the low bits of an event order
const logIndexBits = 24

// Backend - node access needed by the reader, satisfied by
// *ethclient.Client
type Backend interface {
	bind.ContractCaller
	geth.LogFilterer
}

// Configuration - where the registry contract lives
type Configuration struct {
	Endpoint  string `gluamapper:"endpoint" json:"endpoint"`
	Contract  string `gluamapper:"contract" json:"contract"`
	FromBlock uint64 `gluamapper:"from_block" json:"from_block"`
}

// Reader - ledger.Reader for one contract
type Reader struct {
	log       *logger.L
	backend   Backend
	client    *ethclient.Client
	contract  common.Address
	fromBlock uint64
	abi       abi.ABI
	bound     *bind.BoundContract
	granted   abi.Event
	revoked   abi.Event
}

// Dial - connect to a node
//
// a bad endpoint or contract address is a configuration error, a node
// that cannot be reached is transient
func Dial(ctx context.Context, configuration Configuration, log *logger.L) (*Reader, error) {
	endpoint := strings.TrimSpace(configuration.Endpoint)
	if "" == endpoint {
		return nil, fault.MissingEndpoint
	}
	if err := checkEndpoint(endpoint); nil != err {
		return nil, err
	}
	if !common.IsHexAddress(configuration.Contract) {
		return nil, fault.InvalidContract
	}

	client, err := ethclient.DialContext(ctx, endpoint)
	if nil != err {
		if nil != ctx.Err() {
			return nil, ctx.Err()
		}
		log.Errorf("dial: %q  error: %s", endpoint, err)
		return nil, fault.Transient(err, "dial", 0)
	}

	r, err := New(client, common.HexToAddress(configuration.Contract), configuration.FromBlock, log)
	if nil != err {
		client.Close()
		return nil, err
	}
	r.client = client

	log.Infof("endpoint: %q  contract: %s  from block: %d", endpoint, r.contract.Hex(), r.fromBlock)
	return r, nil
}

// accepts the transports ethclient knows, a bare path is IPC
func checkEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.InvalidEndpoint, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss", "":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme: %q", fault.InvalidEndpoint, u.Scheme)
	}
}

// New - reader over an existing backend
func New(backend Backend, contract common.Address, fromBlock uint64, log *logger.L) (*Reader, error) {
	parsed, err := ParseABI()
	if nil != err {
		return nil, err
	}

	return &Reader{
		log:       log,
		backend:   backend,
		contract:  contract,
		fromBlock: fromBlock,
		abi:       parsed,
		bound:     bind.NewBoundContract(contract, parsed, backend, nil, nil),
		granted:   parsed.Events[eventAccessGranted],
		revoked:   parsed.Events[eventAccessRevoked],
	}, nil
}

// Close - release the node connection if this reader dialled it
func (r *Reader) Close() {
	if nil != r.client {
		r.client.Close()
		r.client = nil
	}
}

func (r *Reader) call(ctx context.Context, method string, id uint64, expected int, params ...interface{}) ([]interface{}, error) {
	out := []interface{}{}
	opts := &bind.CallOpts{Context: ctx}
	err := r.bound.Call(opts, &out, method, params...)
	if nil != err {
		return nil, classify(ctx, err, method, id)
	}
	if expected != len(out) {
		return nil, fault.Decode(fault.UnexpectedResultCount, method, id)
	}
	return out, nil
}

// Asset - implements ledger.Reader
func (r *Reader) Asset(ctx context.Context, id uint64) (*ledger.Record, error) {
	out, err := r.call(ctx, methodAsset, id, 7, new(big.Int).SetUint64(id))
	if nil != err {
		return nil, err
	}

	owner := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	author := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	createdAt := abi.ConvertType(out[6], new(big.Int)).(*big.Int)

	return &ledger.Record{
		Owner:       address.FromCommon(owner),
		Author:      address.FromCommon(author),
		Name:        *abi.ConvertType(out[2], new(string)).(*string),
		Description: *abi.ConvertType(out[3], new(string)).(*string),
		AssetType:   *abi.ConvertType(out[4], new(string)).(*string),
		ContentRef:  *abi.ConvertType(out[5], new(string)).(*string),
		CreatedAt:   unixTime(createdAt),
	}, nil
}

// UsageCount - implements ledger.Reader
func (r *Reader) UsageCount(ctx context.Context, id uint64) (uint64, error) {
	out, err := r.call(ctx, methodUsageCount, id, 1, new(big.Int).SetUint64(id))
	if nil != err {
		return 0, err
	}
	count := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	if !count.IsUint64() {
		return 0, fault.Decode(fault.InvalidCount, methodUsageCount, id)
	}
	return count.Uint64(), nil
}

// UsageEntry - implements ledger.Reader
func (r *Reader) UsageEntry(ctx context.Context, id uint64, index uint64) (*ledger.UsageEntry, error) {
	out, err := r.call(ctx, methodUsageEntry, id, 3, new(big.Int).SetUint64(id), new(big.Int).SetUint64(index))
	if nil != err {
		return nil, err
	}

	actor := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	timestamp := abi.ConvertType(out[1], new(big.Int)).(*big.Int)

	return &ledger.UsageEntry{
		Actor:       address.FromCommon(actor),
		Timestamp:   unixTime(timestamp),
		Description: *abi.ConvertType(out[2], new(string)).(*string),
	}, nil
}

// PermissionEvents - implements ledger.Reader
//
// logs removed by a reorganisation are skipped
func (r *Reader) PermissionEvents(ctx context.Context, id uint64) ([]ledger.PermissionEvent, error) {
	query := geth.FilterQuery{
		FromBlock: new(big.Int).SetUint64(r.fromBlock),
		Addresses: []common.Address{r.contract},
		Topics: [][]common.Hash{
			{r.granted.ID, r.revoked.ID},
			{common.BigToHash(new(big.Int).SetUint64(id))},
		},
	}

	logs, err := r.backend.FilterLogs(ctx, query)
	if nil != err {
		return nil, classify(ctx, err, "filterLogs", id)
	}

	events := make([]ledger.PermissionEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		e, err := r.decodeLog(l)
		if nil != err {
			r.log.Warnf("asset: %d  block: %d  log: %d  decode error: %s", id, l.BlockNumber, l.Index, err)
			return nil, fault.Decode(err, "filterLogs", id)
		}
		if id != e.AssetId {
			continue
		}
		events = append(events, e)
	}

	r.log.Debugf("asset: %d  permission events: %d", id, len(events))
	return events, nil
}

func (r *Reader) decodeLog(l types.Log) (ledger.PermissionEvent, error) {
	if 0 == len(l.Topics) {
		return ledger.PermissionEvent{}, fault.InvalidEventKind
	}

	var event abi.Event
	var kind ledger.EventKind
	switch l.Topics[0] {
	case r.granted.ID:
		event = r.granted
		kind = ledger.Grant
	case r.revoked.ID:
		event = r.revoked
		kind = ledger.Revoke
	default:
		return ledger.PermissionEvent{}, fault.InvalidEventKind
	}

	fields := map[string]interface{}{}
	err := abi.ParseTopicsIntoMap(fields, indexedArguments(event), l.Topics[1:])
	if nil != err {
		return ledger.PermissionEvent{}, err
	}

	assetId, ok := fields["assetId"].(*big.Int)
	if !ok || !assetId.IsUint64() {
		return ledger.PermissionEvent{}, fault.InvalidAssetId
	}
	grantee, ok := fields["grantee"].(common.Address)
	if !ok {
		return ledger.PermissionEvent{}, fault.InvalidAddress
	}

	return ledger.PermissionEvent{
		Kind:    kind,
		AssetId: assetId.Uint64(),
		Grantee: address.FromCommon(grantee),
		Order:   l.BlockNumber<<logIndexBits | uint64(l.Index),
	}, nil
}

func unixTime(seconds *big.Int) time.Time {
	if nil == seconds || !seconds.IsInt64() {
		return time.Time{}
	}
	return time.Unix(seconds.Int64(), 0).UTC()
}
