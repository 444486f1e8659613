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

// Package aead constructs the authenticated ciphers used to seal
// records, and selects the optimal suite for the host CPU.
//
// Two suites are supported:
//
//   - AES-256-GCM: used when the CPU has AES hardware instructions
//     (AES-NI on amd64, the AES extension on arm64).
//
//   - ChaCha20-Poly1305: used on CPUs without AES acceleration, where
//     it is both faster and constant-time in software.
//
// The suite identifier is a single byte carried in every wire record so
// a record sealed on one machine opens on any other.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/sys/cpu"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// Suite identifies an AEAD cipher suite on the wire.
type Suite byte

const (
	// SuiteAES256GCM is AES-256 in Galois/Counter Mode.
	SuiteAES256GCM Suite = 0x01

	// SuiteChaCha20Poly1305 is the ChaCha20-Poly1305 AEAD.
	SuiteChaCha20Poly1305 Suite = 0x02
)

const (
	// NonceSize is the nonce size in bytes for both suites (96 bits).
	NonceSize = 12

	// Overhead is the authentication tag size in bytes for both suites.
	Overhead = 16

	// KeySize is the key size in bytes for both suites.
	KeySize = 32
)

// String returns the human-readable suite name.
func (s Suite) String() string {
	switch s {
	case SuiteAES256GCM:
		return "aes256-gcm"
	case SuiteChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(s))
	}
}

// Valid reports whether s is a known suite.
func (s Suite) Valid() bool {
	return s == SuiteAES256GCM || s == SuiteChaCha20Poly1305
}

// New constructs the AEAD cipher for the given suite and 32-byte key.
func New(suite Suite, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: aead key must be %d bytes, got %d",
			types.ErrInvalidParameters, KeySize, len(key))
	}
	switch suite {
	case SuiteAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return gcm, nil
	case SuiteChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("%w: unknown aead suite 0x%02x", types.ErrInvalidParameters, byte(suite))
	}
}

// HasAESNI returns true if the CPU has hardware AES instructions.
func HasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}

// SelectOptimal picks the best suite for this host: AES-256-GCM when
// hardware AES is available, ChaCha20-Poly1305 otherwise.
func SelectOptimal() Suite {
	if HasAESNI() {
		return SuiteAES256GCM
	}
	return SuiteChaCha20Poly1305
}
