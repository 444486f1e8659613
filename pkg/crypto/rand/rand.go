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

// Package rand provides the random source used for salts, nonces, and
// polynomial coefficients.
//
// Every operation that consumes randomness takes an explicit io.Reader so
// tests can substitute a deterministic source without touching production
// code paths. Production callers pass Reader, which is backed by
// crypto/rand.
package rand

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Reader is the default cryptographically secure random source.
var Reader io.Reader = rand.Reader

// Bytes reads exactly n random bytes from source. A nil source falls
// back to Reader.
func Bytes(source io.Reader, n int) ([]byte, error) {
	if source == nil {
		source = Reader
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(source, b); err != nil {
		return nil, fmt.Errorf("rand: failed to read %d random bytes: %w", n, err)
	}
	return b, nil
}

// Fill fills b with random bytes from source. A nil source falls back
// to Reader.
func Fill(source io.Reader, b []byte) error {
	if source == nil {
		source = Reader
	}
	if _, err := io.ReadFull(source, b); err != nil {
		return fmt.Errorf("rand: failed to fill %d random bytes: %w", len(b), err)
	}
	return nil
}
