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

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

type metadata struct {
	file    string
	config  *Configuration
	verbose bool
	noCache bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "%s\n", errorMessage(err))
		exitwithstatus.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "assetview"
	app.Usage = "read the current state of registered assets"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "assetview.conf",
			Usage: " configuration `FILE`",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " log to the console as well",
		},
		cli.BoolFlag{
			Name:  "no-cache",
			Usage: " never read or write the local snapshot",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "count",
			Usage:  "number of registered assets",
			Action: runCount,
		},
		{
			Name:   "list",
			Usage:  "every asset with its permissions and usage",
			Action: runList,
		},
		{
			Name:      "show",
			Usage:     "a single asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Usage: "*asset `ID`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "usage",
			Usage:     "usage log of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Usage: "*asset `ID`",
				},
			},
			Action: runUsage,
		},
		{
			Name:      "mine",
			Usage:     "assets owned by an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ADDRESS`",
				},
			},
			Action: runMine,
		},
		{
			Name:      "accessible",
			Usage:     "assets an address owns or was granted",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*user `ADDRESS`",
				},
			},
			Action: runAccessible,
		},
		{
			Name:  "watch",
			Usage: "list assets periodically, reload configuration on change",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "interval, t",
					Value: time.Minute,
					Usage: " time between loads `DURATION`",
				},
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display assetview version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		file := c.GlobalString("config")
		verbose := c.GlobalBool("verbose")

		if verbose {
			fmt.Fprintf(c.App.ErrWriter, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file)
		if nil != err {
			return err
		}

		configuration.Logging.Console = verbose
		if err := logger.Initialise(configuration.Logging); nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  configuration,
			verbose: verbose,
			noCache: c.GlobalBool("no-cache"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	return app
}
