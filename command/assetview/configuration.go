// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/assetview/configuration"
	"github.com/bitmark-inc/assetview/fault"
	"github.com/bitmark-inc/assetview/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the configuration file

	defaultChain            = "mainnet"
	defaultTimeout          = "30s"
	defaultConcurrency      = 8
	defaultUsageConcurrency = 4

	defaultCacheDatabase = "assetview-cache.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "assetview.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		logger.DefaultTag: "critical",
	}
	validChain = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// LedgerConfiguration - node and contract
type LedgerConfiguration struct {
	Endpoint  string  `gluamapper:"endpoint" json:"endpoint"`
	Contract  string  `gluamapper:"contract" json:"contract"`
	Chain     string  `gluamapper:"chain" json:"chain"`
	FromBlock uint64  `gluamapper:"from_block" json:"from_block"`
	Timeout   string  `gluamapper:"timeout" json:"timeout"`
	RateLimit float64 `gluamapper:"rate_limit" json:"rate_limit"`
	Burst     int     `gluamapper:"burst" json:"burst"`
}

// CacheConfiguration - local snapshot of the last good load
type CacheConfiguration struct {
	Enable   bool   `gluamapper:"enable" json:"enable"`
	Database string `gluamapper:"database" json:"database"`
}

// Configuration - contents of the Lua configuration file
type Configuration struct {
	DataDirectory    string               `gluamapper:"data_directory" json:"data_directory"`
	Ledger           LedgerConfiguration  `gluamapper:"ledger" json:"ledger"`
	Cache            CacheConfiguration   `gluamapper:"cache" json:"cache"`
	Concurrency      int                  `gluamapper:"concurrency" json:"concurrency"`
	UsageConcurrency int                  `gluamapper:"usage_concurrency" json:"usage_concurrency"`
	Logging          logger.Configuration `gluamapper:"logging" json:"logging"`

	timeout time.Duration
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Ledger: LedgerConfiguration{
			Chain:   defaultChain,
			Timeout: defaultTimeout,
		},

		Cache: CacheConfiguration{
			Enable:   true,
			Database: defaultCacheDatabase,
		},

		Concurrency:      defaultConcurrency,
		UsageConcurrency: defaultUsageConcurrency,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := options.validate(dataDirectory); nil != err {
		return nil, err
	}

	return options, nil
}

func (options *Configuration) validate(dataDirectory string) error {

	if "" == strings.TrimSpace(options.Ledger.Endpoint) {
		return fault.MissingEndpoint
	}
	if !common.IsHexAddress(options.Ledger.Contract) {
		return fault.InvalidContract
	}

	options.Ledger.Chain = strings.ToLower(strings.TrimSpace(options.Ledger.Chain))
	if !validChain.MatchString(options.Ledger.Chain) {
		return fault.InvalidChain
	}

	timeout, err := time.ParseDuration(options.Ledger.Timeout)
	if nil != err || timeout <= 0 {
		return fmt.Errorf("%w: timeout: %q", fault.InvalidConfiguration, options.Ledger.Timeout)
	}
	options.timeout = timeout

	if options.Ledger.RateLimit < 0 || options.Ledger.Burst < 0 {
		return fmt.Errorf("%w: rate limit: %g  burst: %d", fault.InvalidConfiguration, options.Ledger.RateLimit, options.Ledger.Burst)
	}
	if options.Ledger.RateLimit > 0 && 0 == options.Ledger.Burst {
		options.Ledger.Burst = 1
	}

	if options.Concurrency < 1 || options.UsageConcurrency < 1 {
		return fault.InvalidConcurrency
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return fmt.Errorf("%w: %q", fault.InvalidDataDirectory, options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return fmt.Errorf("%w: %s", fault.InvalidDataDirectory, err)
	} else if !fileInfo.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", fault.InvalidDataDirectory, options.DataDirectory)
	}

	// log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return fmt.Errorf("%w: log file: %q is not plain name", fault.InvalidConfiguration, options.Logging.File)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Cache.Database,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	return util.EnsureDirectory(options.Logging.Directory)
}
