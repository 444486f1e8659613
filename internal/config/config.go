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

// Package config loads vault configuration from a YAML file and
// applies environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/aead"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
)

// KDF profile names selectable in configuration.
const (
	ProfileDefault   = "default"
	ProfileSensitive = "sensitive"
	ProfileCustom    = "custom"
)

// Cipher suite names selectable in configuration.
const (
	SuiteAuto     = "auto"
	SuiteAESGCM   = "aes-gcm"
	SuiteChaCha20 = "chacha20"
)

// Config represents the complete vault configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	KDF     KDFConfig     `yaml:"kdf"`
	Cipher  CipherConfig  `yaml:"cipher"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// KDFConfig selects the Argon2id cost profile. Profile "custom" uses
// the explicit params block; anything else ignores it.
type KDFConfig struct {
	Profile string     `yaml:"profile"`
	Params  kdf.Params `yaml:"params,omitempty"`
}

// CipherConfig selects the AEAD suite. "auto" picks AES-256-GCM on
// hardware with AES instructions and ChaCha20-Poly1305 elsewhere.
type CipherConfig struct {
	Suite string `yaml:"suite"`
}

// StorageConfig controls where encoded payloads are written
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, memory
	Path    string `yaml:"path"`
}

// MetricsConfig toggles Prometheus metrics collection
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qrvault", "config.yaml")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dataDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".qrvault", "payloads")
	}
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		KDF:     KDFConfig{Profile: ProfileDefault},
		Cipher:  CipherConfig{Suite: SuiteAuto},
		Storage: StorageConfig{Backend: "file", Path: dataDir},
		Metrics: MetricsConfig{Enabled: false},
	}
}

// Load reads configuration from a YAML file and applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// #nosec G304 - Config file path is provided by the user
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("QRVAULT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if profile := os.Getenv("QRVAULT_KDF_PROFILE"); profile != "" {
		cfg.KDF.Profile = profile
	}
	if suite := os.Getenv("QRVAULT_CIPHER_SUITE"); suite != "" {
		cfg.Cipher.Suite = suite
	}
	if dataDir := os.Getenv("QRVAULT_DATA_DIR"); dataDir != "" {
		cfg.Storage.Path = dataDir
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	switch strings.ToLower(c.KDF.Profile) {
	case ProfileDefault, ProfileSensitive:
	case ProfileCustom:
		if err := c.KDF.Params.Validate(); err != nil {
			return fmt.Errorf("invalid custom KDF params: %w", err)
		}
	default:
		return fmt.Errorf("invalid KDF profile: %s (must be default, sensitive, or custom)", c.KDF.Profile)
	}

	switch strings.ToLower(c.Cipher.Suite) {
	case SuiteAuto, SuiteAESGCM, SuiteChaCha20:
	default:
		return fmt.Errorf("invalid cipher suite: %s (must be auto, aes-gcm, or chacha20)", c.Cipher.Suite)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the file backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be file or memory)", c.Storage.Backend)
	}

	return nil
}

// KDFParams resolves the configured profile into concrete Argon2id
// parameters.
func (c *Config) KDFParams() kdf.Params {
	switch strings.ToLower(c.KDF.Profile) {
	case ProfileSensitive:
		return kdf.SensitiveParams()
	case ProfileCustom:
		return c.KDF.Params
	default:
		return kdf.DefaultParams()
	}
}

// CipherSuite resolves the configured suite name.
func (c *Config) CipherSuite() aead.Suite {
	switch strings.ToLower(c.Cipher.Suite) {
	case SuiteAESGCM:
		return aead.SuiteAES256GCM
	case SuiteChaCha20:
		return aead.SuiteChaCha20Poly1305
	default:
		return aead.SelectOptimal()
	}
}
