// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fallback

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/assetview/asset"
	"github.com/bitmark-inc/assetview/fault"
)

// first line of every encoded snapshot
const snapshotHeader = "assetview-snapshot v1"

// Digest - SHA3-256 of a snapshot body
type Digest [32]byte

// NewDigest - digest of some data
func NewDigest(data []byte) Digest {
	return Digest(sha3.Sum256(data))
}

// convert a binary digest to hex string for use by the fmt package (for %s)
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// convert a binary digest to hex string for use by the fmt package (for %#v)
func (d Digest) GoString() string {
	return "<digest:" + hex.EncodeToString(d[:]) + ">"
}

// Snapshot - assets as last loaded from a reachable ledger
type Snapshot struct {
	Taken  time.Time     `json:"taken"`
	Assets []asset.Asset `json:"assets"`
}

// Encode - header line, digest line, JSON body
func (s *Snapshot) Encode() ([]byte, error) {
	body, err := json.Marshal(s)
	if nil != err {
		return nil, err
	}

	digest := NewDigest(body)

	buffer := bytes.Buffer{}
	buffer.WriteString(snapshotHeader)
	buffer.WriteByte('\n')
	buffer.WriteString(digest.String())
	buffer.WriteByte('\n')
	buffer.Write(body)
	return buffer.Bytes(), nil
}

// DecodeSnapshot - check header and digest then unpack the body
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	parts := bytes.SplitN(data, []byte{'\n'}, 3)
	if 3 != len(parts) {
		return nil, fault.SnapshotCorrupt
	}
	if snapshotHeader != string(parts[0]) {
		return nil, fault.SnapshotCorrupt
	}

	digest := NewDigest(parts[2])
	if digest.String() != string(parts[1]) {
		return nil, fault.SnapshotCorrupt
	}

	s := &Snapshot{}
	err := json.Unmarshal(parts[2], s)
	if nil != err {
		return nil, fault.SnapshotCorrupt
	}
	if nil == s.Assets {
		s.Assets = []asset.Asset{}
	}
	return s, nil
}
