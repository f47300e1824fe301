// Copyright 2024 The Probestat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// probestats sweeps the two simulated hash-table models across load
// factors and writes their probe statistics to stdout as
// semicolon-separated rows. With no flags, it reproduces the reference
// measurement exactly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/openaddr/probestat"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional TOML file overriding the sweep parameters")
	verbose := flag.Bool("verbose", false, "log sweep progress to stderr")
	flag.Parse()

	if err := run(*configPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	cfg := probestat.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = probestat.LoadConfig(configPath); err != nil {
			return err
		}
	}

	log := zap.NewNop()
	if verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	w := bufio.NewWriter(os.Stdout)
	s := probestat.NewSampler(append(cfg.Options(), probestat.WithLogger(log))...)
	for _, m := range probestat.Models() {
		if err := s.Run(w, m.Label, m.New); err != nil {
			return err
		}
	}
	return w.Flush()
}
