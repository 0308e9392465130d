// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - 64 bit unsigned integer safe for concurrent increments
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}

// Outcome - calls made and how many of them failed
type Outcome struct {
	calls    Counter
	failures Counter
}

// Observe - count one call and, if err is set, one failure
//
// err is returned unchanged so a call can be wrapped in place
func (o *Outcome) Observe(err error) error {
	o.calls.Increment()
	if nil != err {
		o.failures.Increment()
	}
	return err
}

// Calls - total observed
func (o *Outcome) Calls() uint64 {
	return o.calls.Uint64()
}

// Failures - observed with an error
func (o *Outcome) Failures() uint64 {
	return o.failures.Uint64()
}
