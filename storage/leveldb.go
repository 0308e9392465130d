// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/logger"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentCacheDBVersion = 0x100
	cachePrefix           = 'C'
)

// LevelDB - on-disk store
type LevelDB struct {
	sync.RWMutex
	log *logger.L
	db  *leveldb.DB
}

// OpenLevelDB - open or create the cache database
//
// an empty writable database is tagged with the current version
func OpenLevelDB(name string, readOnly bool) (*LevelDB, error) {
	log := logger.New("storage")

	db, version, err := getDB(name, readOnly)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentCacheDBVersion {
		log.Criticalf("cache database version: %d > current version: %d", version, currentCacheDBVersion)
		db.Close()
		return nil, fault.IncompatibleDatabase
	}

	if 0 == version && !readOnly {
		err = putVersion(db, currentCacheDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %q  version: %d  read only: %t", name, version, readOnly)

	return &LevelDB{
		log: log,
		db:  db,
	}, nil
}

// Get - fetch a value, ok is false if the key is absent
func (l *LevelDB) Get(key string) ([]byte, bool, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, false, fault.DatabaseIsNotSet
	}

	value, err := l.db.Get(prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Set - store a value replacing any previous one
func (l *LevelDB) Set(key string, value []byte) error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return fault.DatabaseIsNotSet
	}
	return l.db.Put(prefixKey(key), value, nil)
}

// Keys - every stored key in ascending order
func (l *LevelDB) Keys() ([]string, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, fault.DatabaseIsNotSet
	}

	iter := l.db.NewIterator(&ldb_util.Range{
		Start: []byte{cachePrefix},
		Limit: []byte{cachePrefix + 1},
	}, nil)
	defer iter.Release()

	keys := []string{}
	for iter.Next() {
		keys = append(keys, string(iter.Key()[1:]))
	}
	return keys, iter.Error()
}

// Close - release the database
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func prefixKey(key string) []byte {
	return append([]byte{cachePrefix}, key...)
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
