// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/json"
	"sort"
)

// Set - addresses compared without regard to case
//
// the zero value is not usable, create with NewSet
type Set struct {
	items map[Address]struct{}
}

// NewSet - create a set holding the normalised forms of the arguments
func NewSet(addresses ...Address) Set {
	s := Set{
		items: make(map[Address]struct{}, len(addresses)),
	}
	for _, a := range addresses {
		s.Add(a)
	}
	return s
}

// Add - insert, duplicates are ignored
func (s Set) Add(a Address) {
	s.items[Normalise(string(a))] = struct{}{}
}

// Remove - delete, absent addresses are ignored
func (s Set) Remove(a Address) {
	delete(s.items, Normalise(string(a)))
}

// Has - membership test
func (s Set) Has(a Address) bool {
	_, ok := s.items[Normalise(string(a))]
	return ok
}

// Len - number of members
func (s Set) Len() int {
	return len(s.items)
}

// Clone - independent copy
func (s Set) Clone() Set {
	c := Set{
		items: make(map[Address]struct{}, len(s.items)),
	}
	for a := range s.items {
		c.items[a] = struct{}{}
	}
	return c
}

// Sorted - members in ascending order
func (s Set) Sorted() []Address {
	list := make([]Address, 0, len(s.items))
	for a := range s.items {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// MarshalJSON - sorted array
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON - from an array, normalising each member
func (s *Set) UnmarshalJSON(data []byte) error {
	var list []Address
	if err := json.Unmarshal(data, &list); nil != err {
		return err
	}
	*s = NewSet(list...)
	return nil
}
