// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/assetview/background"
	"github.com/bitmark-inc/logger"
)

// configWatcher - signals when the configuration file is rewritten
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	changed  chan struct{}
}

// the directory is watched so that editors replacing the file are seen
func newConfigWatcher(fileName string, log *logger.L) (*configWatcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(fileName); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(fileName)); nil != err {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		changed:  make(chan struct{}, 1),
	}, nil
}

// Run - implements background.Process
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	defer w.watcher.Close()

	base := filepath.Base(w.fileName)
	for {
		select {
		case <-shutdown:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !configChanged(event) {
				continue
			}
			w.log.Infof("file event: %v", event)

			// one pending notification is enough
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watch: %q  error: %s", w.fileName, err)
		}
	}
}

func configChanged(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// poller - print the asset list on every tick
type poller struct {
	log      *logger.L
	m        *metadata
	interval time.Duration
	changed  <-chan struct{}
}

// Run - implements background.Process
func (p *poller) Run(args interface{}, shutdown <-chan struct{}) {
	p.poll(shutdown)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-p.changed:
			p.reload()
		case <-ticker.C:
			p.poll(shutdown)
		}
	}
}

// a bad configuration keeps the previous one
func (p *poller) reload() {
	config, err := getConfiguration(p.m.file)
	if nil != err {
		p.log.Errorf("reload: %q  error: %s", p.m.file, err)
		fmt.Fprintf(p.m.e, "configuration not reloaded: %s\n", errorMessage(err))
		return
	}
	p.m.config = config
	p.log.Infof("reloaded: %q", p.m.file)
}

func (p *poller) poll(shutdown <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), p.m.config.timeout)
	defer cancel()

	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := p.list(ctx)
	if nil != err {
		p.log.Warnf("poll error: %s", err)
		fmt.Fprintf(p.m.e, "%s\n", errorMessage(err))
	}
}

func (p *poller) list(ctx context.Context) error {
	s, err := openSession(ctx, p.m.config, !p.m.noCache)
	if nil != err {
		return err
	}
	defer s.close()

	result, err := s.loadAll(ctx)
	if nil != err {
		return err
	}
	return printJson(p.m.w, newBatchReply(result, result.Batch))
}

func runWatch(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	interval := c.Duration("interval")
	if interval <= 0 {
		return ErrInvalidInterval
	}

	log := logger.New("watch")

	watcher, err := newConfigWatcher(m.file, log)
	if nil != err {
		return err
	}

	processes := background.Processes{
		watcher,
		&poller{
			log:      log,
			m:        m,
			interval: interval,
			changed:  watcher.changed,
		},
	}
	p := background.Start(processes, nil)

	// wait for a signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	signal.Stop(ch)
	log.Infof("received signal: %v", sig)

	p.Stop()
	return nil
}
