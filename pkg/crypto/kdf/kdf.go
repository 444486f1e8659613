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

// Package kdf derives encryption keys from passwords using Argon2id.
//
// The derivation parameters travel with every sealed record so a record
// encrypted under one cost profile remains decryptable after defaults
// change.
package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

const (
	// KeyLength is the derived key size in bytes (AES-256 / ChaCha20).
	KeyLength = 32

	// MinSaltLength is the minimum accepted salt size in bytes.
	MinSaltLength = 16

	// SaltLength is the salt size generated for new records.
	SaltLength = 32
)

// Params holds the Argon2id cost parameters. All fields are serialized
// into the wire record.
type Params struct {
	// Memory is the memory cost in KiB.
	Memory uint32 `yaml:"memory"`

	// Iterations is the time cost (number of passes).
	Iterations uint32 `yaml:"iterations"`

	// Parallelism is the number of lanes.
	Parallelism uint8 `yaml:"parallelism"`
}

// DefaultParams returns the interactive cost profile: 64 MiB, 3 passes,
// 4 lanes. Tuned to stay under a second on commodity hardware while
// costing an offline attacker meaningfully more than a plain hash.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
	}
}

// SensitiveParams returns a hardened cost profile for long-lived
// secrets: 256 MiB, 4 passes, 4 lanes.
func SensitiveParams() Params {
	return Params{
		Memory:      256 * 1024,
		Iterations:  4,
		Parallelism: 4,
	}
}

// Validate checks that the parameters are usable. Zero memory, zero
// iterations, or zero parallelism are rejected rather than silently
// weakening the derivation.
func (p Params) Validate() error {
	if p.Memory < 8*1024 {
		return fmt.Errorf("%w: argon2 memory cost %d KiB below minimum 8192", types.ErrInvalidParameters, p.Memory)
	}
	if p.Iterations == 0 {
		return fmt.Errorf("%w: argon2 iteration count must be nonzero", types.ErrInvalidParameters)
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("%w: argon2 parallelism must be nonzero", types.ErrInvalidParameters)
	}
	return nil
}

// DeriveKey derives a KeyLength-byte key from password and salt using
// Argon2id with the given parameters.
//
// The caller owns the returned key and must zero it with types.Zeroize
// once it is no longer needed.
func DeriveKey(password, salt []byte, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password cannot be empty", types.ErrInvalidInput)
	}
	if len(salt) < MinSaltLength {
		return nil, fmt.Errorf("%w: salt must be at least %d bytes, got %d",
			types.ErrInvalidParameters, MinSaltLength, len(salt))
	}
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, KeyLength), nil
}
