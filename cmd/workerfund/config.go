// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

// Config is the YAML node configuration.
type Config struct {
	API struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"api"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Worker struct {
		ClearVotesOnFinalization bool   `yaml:"clearVotesOnFinalization"`
		TechspecApproveTermSec   uint64 `yaml:"techspecApproveTermSec"`
		ResultApproveTermSec     uint64 `yaml:"resultApproveTermSec"`
	} `yaml:"worker"`
}

func defaultNodeConfig() Config {
	var cfg Config
	cfg.API.Addr = "localhost:8669"
	cfg.Worker.TechspecApproveTermSec = workerfund.DefaultTechspecApproveTerm
	cfg.Worker.ResultApproveTermSec = workerfund.DefaultResultApproveTerm
	return cfg
}

func loadConfig(path string) (Config, error) {
	cfg := defaultNodeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

func (cfg Config) workerConfig() worker.Config {
	return worker.Config{
		ClearVotesOnFinalization: cfg.Worker.ClearVotesOnFinalization,
		TechspecApproveTerm:      cfg.Worker.TechspecApproveTermSec,
		ResultApproveTerm:        cfg.Worker.ResultApproveTermSec,
	}
}
