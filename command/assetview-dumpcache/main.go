// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetview/fallback"
	"github.com/bitmark-inc/assetview/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--list] --file=FILE [key...]", program)
	}

	verbose := len(options["verbose"]) > 0
	filename := options["file"][0]

	logging := logger.Configuration{
		Directory: ".",
		File:      "assetview-dumpcache.log",
		Size:      1048576,
		Count:     10,
		Console:   verbose,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	db, err := storage.OpenLevelDB(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: cannot open: %q  error: %s", program, filename, err)
	}
	defer db.Close()

	keys, err := db.Keys()
	if nil != err {
		exitwithstatus.Message("%s: read keys error: %s", program, err)
	}

	if len(options["list"]) > 0 {
		for _, key := range keys {
			fmt.Printf("%s\n", key)
		}
		return
	}

	// default is every key
	if len(arguments) > 0 {
		keys = arguments
	}

	for _, key := range keys {
		err := dumpSnapshot(os.Stdout, db, key, verbose)
		if nil != err {
			exitwithstatus.Message("%s: key: %q  error: %s", program, key, err)
		}
	}
}

// print a one line summary of a snapshot, and its assets if verbose
func dumpSnapshot(handle io.Writer, store storage.Store, key string, verbose bool) error {
	data, found, err := store.Get(key)
	if nil != err {
		return err
	}
	if !found {
		fmt.Fprintf(handle, "%s: not present\n", key)
		return nil
	}

	s, err := fallback.DecodeSnapshot(data)
	if nil != err {
		fmt.Fprintf(handle, "%s: %s  bytes: %d\n", key, err, len(data))
		return nil
	}

	fmt.Fprintf(handle, "%s: taken: %s  assets: %d  bytes: %d\n", key, s.Taken.Format(time.RFC3339), len(s.Assets), len(data))
	if !verbose {
		return nil
	}
	for _, a := range s.Assets {
		fmt.Fprintf(handle, "  %d: %q  owner: %s  permissions: %d  usage: %d\n", a.Id, a.Name, a.Owner, a.Permissions.Len(), len(a.UsageLog))
	}
	return nil
}
