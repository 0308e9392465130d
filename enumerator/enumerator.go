// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package enumerator

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/assetview/ledger"
	"github.com/bitmark-inc/logger"
)

// Enumerator - discovers the registered asset ids
type Enumerator struct {
	log    *logger.L
	reader ledger.Reader
}

// New - create an enumerator over a ledger
func New(reader ledger.Reader, log *logger.L) *Enumerator {
	return &Enumerator{
		log:    log,
		reader: reader,
	}
}

// Iterator - one pass over the ids 1, 2, …, N
//
// not safe for concurrent use; create one per goroutine
type Iterator struct {
	log    *logger.L
	reader ledger.Reader
	next   uint64
	done   bool
}

// Iterate - start a new pass from id 1
func (e *Enumerator) Iterate() *Iterator {
	return &Iterator{
		log:    e.log,
		reader: e.reader,
		next:   1,
	}
}

// Next - probe the next id
//
// ok is false once the sentinel owner or the end of data is reached,
// any other read failure is returned and the same id will be probed
// again on the following call
func (it *Iterator) Next(ctx context.Context) (uint64, *ledger.Record, bool, error) {
	if it.done {
		return 0, nil, false, nil
	}
	if err := ctx.Err(); nil != err {
		return 0, nil, false, err
	}

	id := it.next
	record, err := it.reader.Asset(ctx, id)
	if nil != err {
		if LooksLikeEndOfData(err) {
			it.log.Debugf("end of data at id: %d  error: %s", id, err)
			it.done = true
			return 0, nil, false, nil
		}
		it.log.Errorf("probe id: %d  error: %s", id, err)
		return 0, nil, false, fmt.Errorf("probe asset %d: %w", id, err)
	}

	if !record.Exists() {
		it.log.Debugf("sentinel owner at id: %d", id)
		it.done = true
		return 0, nil, false, nil
	}

	it.next = id + 1
	return id, record, true, nil
}

// Count - number of registered assets
func (e *Enumerator) Count(ctx context.Context) (uint64, error) {
	it := e.Iterate()
	n := uint64(0)
	for {
		_, _, ok, err := it.Next(ctx)
		if nil != err {
			return 0, err
		}
		if !ok {
			break
		}
		n += 1
	}
	e.log.Infof("asset count: %d", n)
	return n, nil
}

// Ids - all registered ids in ascending order
func (e *Enumerator) Ids(ctx context.Context) ([]uint64, error) {
	n, err := e.Count(ctx)
	if nil != err {
		return nil, err
	}
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = uint64(i + 1)
	}
	return ids, nil
}
