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

// Package password provides secure password handling for the vault.
//
// It implements the types.Password interface for managing sensitive
// password data in memory, with explicit zeroing once the password is no
// longer needed.
package password

import (
	"errors"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var (
	// ErrEmptyPassword is returned when an empty password is provided.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordZeroed is returned when the password has been zeroed.
	ErrPasswordZeroed = errors.New("password has been zeroed")
)

// ClearPassword stores a password in memory as cleartext.
//
// The backing slice is owned by the ClearPassword and is overwritten
// with zeros when Clear is called.
type ClearPassword struct {
	password []byte
}

// New creates a new cleartext password stored in memory.
//
// The provided byte slice is copied to prevent external modification.
// Returns an error if the password is empty.
func New(password []byte) (types.Password, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	p := make([]byte, len(password))
	copy(p, password)
	return &ClearPassword{password: p}, nil
}

// FromString creates a new cleartext password from a string.
func FromString(password string) (types.Password, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	return &ClearPassword{password: []byte(password)}, nil
}

// String returns the password as a string.
//
// This exposes the password as an immutable string that cannot be
// zeroed; prefer Bytes where possible.
func (p *ClearPassword) String() (string, error) {
	if p.password == nil {
		return "", ErrPasswordZeroed
	}
	return string(p.password), nil
}

// Bytes returns a copy of the password bytes, or nil after Clear.
func (p *ClearPassword) Bytes() []byte {
	if p.password == nil {
		return nil
	}
	result := make([]byte, len(p.password))
	copy(result, p.password)
	return result
}

// Clear overwrites the password memory with zeros.
//
// After Clear, String returns ErrPasswordZeroed and Bytes returns nil.
func (p *ClearPassword) Clear() {
	if p.password != nil {
		types.Zeroize(p.password)
		p.password = nil
	}
}
