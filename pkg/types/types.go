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

// Package types contains shared type definitions and the error taxonomy
// used across the vault core. This package has no dependencies on the
// crypto or shamir packages to prevent import cycles.
package types

// Password abstracts password material handed to the crypto engine.
// Implementations own the backing memory and zero it on Clear.
type Password interface {
	// Bytes returns a copy of the password bytes, or nil after Clear.
	Bytes() []byte

	// String returns the password as a string. Returns an error after
	// the password has been cleared.
	String() (string, error)

	// Clear overwrites the backing memory with zeros. Irreversible.
	Clear()
}

// Zeroize overwrites b with zeros. It is used at the explicit release
// point of every buffer holding key material, passwords, or plaintext
// secrets, on success and error paths both.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
