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

// Package storage provides an abstraction layer for persisting encoded
// vault payloads. Keys are slash-separated labels (for example
// "sealed/wallet" or "shares/wallet/3"); values are canonical wire
// bytes produced by the qrwire codec. Both in-memory and file-based
// implementations share a common interface.
package storage

import (
	"io/fs"
)

// Backend defines the interface for payload storage backends.
// All implementations must be thread-safe.
type Backend interface {
	// Get retrieves the payload for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string) ([]byte, error)

	// Put stores the payload for the given key.
	// If the key already exists, it will be overwritten.
	Put(key string, value []byte, opts *Options) error

	// Delete removes the key and its payload from storage.
	// Returns ErrNotFound if the key does not exist.
	Delete(key string) error

	// List returns all keys with the given prefix, sorted.
	// If prefix is empty, all keys are returned.
	List(prefix string) ([]string, error)

	// Exists checks if a key exists in storage.
	Exists(key string) (bool, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Options contains optional parameters for storage operations.
type Options struct {
	// Permissions sets the file permissions for file-based storage.
	Permissions fs.FileMode
}

// DefaultOptions returns Options with sensible defaults. Payloads are
// ciphertext, but they still gate recovery, so owner-only is the
// default everywhere.
func DefaultOptions() *Options {
	return &Options{
		Permissions: 0600,
	}
}
