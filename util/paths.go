// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/assetview/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsureDirectory - create a directory if missing
//
// an existing path that is not a directory is an error
func EnsureDirectory(name string) error {
	info, err := os.Stat(name)
	if os.IsNotExist(err) {
		return os.MkdirAll(name, 0700)
	} else if nil != err {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", fault.InvalidDataDirectory, name)
	}
	return nil
}
