// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/bitmark-inc/assetview/counter"
)

// test incrementing a counter from several goroutines
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j += 1 {
				c1.Increment()
			}
		}()
	}
	wg.Wait()

	if 1000 != c1.Uint64() {
		t.Errorf("counter is not 1000 after incrementing: %d", c1.Uint64())
	}
}

func TestOutcome(t *testing.T) {

	var o counter.Outcome

	failed := errors.New("failed")

	if nil != o.Observe(nil) {
		t.Error("nil error changed")
	}
	if failed != o.Observe(failed) {
		t.Error("error not passed through")
	}
	_ = o.Observe(nil)

	if 3 != o.Calls() {
		t.Errorf("calls: expected 3, actual: %d", o.Calls())
	}
	if 1 != o.Failures() {
		t.Errorf("failures: expected 1, actual: %d", o.Failures())
	}
}
