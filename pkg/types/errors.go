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

package types

import "errors"

// The error taxonomy for the vault core. Every failure returned by the
// crypto, shamir, and wire packages wraps exactly one of these sentinels
// so callers can dispatch with errors.Is. Error messages never include
// secret material.
var (
	// ErrInvalidParameters is returned when a threshold/total pair is out
	// of range or KDF parameters are malformed.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidInput is returned on pathological input such as an empty
	// secret or an operation invoked from the wrong state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed is returned when AEAD tag verification
	// fails: wrong password, or tampered/corrupted ciphertext.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMismatchedShares is returned when shares come from different
	// split operations or carry inconsistent metadata.
	ErrMismatchedShares = errors.New("mismatched shares")

	// ErrInsufficientShares is returned when fewer shares than the
	// threshold are available, or a scan cap was exhausted first.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrMalformedPayload is returned when a wire record is truncated,
	// has an unknown type or version, or fails its checksum.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrReconstructionFailed is returned when the post-interpolation
	// integrity check does not match the tag embedded in the shares.
	ErrReconstructionFailed = errors.New("reconstruction failed")
)
