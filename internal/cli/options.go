// Copyright (c) 2026 Jeremy Hahn
// Copyright (c) 2026 Automate The Things, LLC
//
// This file is part of go-qrvault.
//
// go-qrvault is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"github.com/jeremyhahn/go-qrvault/internal/config"
	"github.com/jeremyhahn/go-qrvault/pkg/logging"
	"github.com/jeremyhahn/go-qrvault/pkg/metrics"
	"github.com/jeremyhahn/go-qrvault/pkg/storage"
	"github.com/jeremyhahn/go-qrvault/pkg/storage/file"
)

// Options holds global CLI configuration
type Options struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// DataDir overrides the configured payload storage directory
	DataDir string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables verbose logging
	Verbose bool
}

// NewOptions creates Options with default values
func NewOptions() *Options {
	return &Options{
		OutputFormat: "text",
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig(opts *Options) (*config.Config, error) {
	path := opts.ConfigFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.Storage.Path = opts.DataDir
	}

	metrics.SetEnabled(cfg.Metrics.Enabled)
	return cfg, nil
}

// newLogger builds the command logger honoring --verbose.
func newLogger(opts *Options) *logging.Logger {
	return logging.NewLogger(opts.Verbose)
}

// newBackend opens the configured payload storage backend.
func newBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.Storage.Backend == "memory" {
		return storage.NewMemory(), nil
	}
	return file.New(cfg.Storage.Path)
}
