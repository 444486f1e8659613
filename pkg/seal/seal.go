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

// Package seal implements password-based authenticated encryption of
// opaque secrets.
//
// A sealed Record carries everything needed to decrypt it later: the
// Argon2id salt and cost parameters, the AEAD suite, the nonce, and the
// ciphertext with its authentication tag. Salt and nonce are freshly
// drawn from the injected random source on every call; a nonce is never
// reused under the same key.
//
// Derived keys are zeroed before Encrypt and Decrypt return, on success
// and error paths both.
package seal

import (
	"fmt"
	"io"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/aead"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/rand"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// Record is a sealed secret. Immutable once created; produced by
// Encrypt and consumed only by Decrypt.
type Record struct {
	// Suite identifies the AEAD cipher the record was sealed with.
	Suite aead.Suite

	// Params are the Argon2id cost parameters used to derive the key.
	Params kdf.Params

	// Salt is the per-record key derivation salt.
	Salt []byte

	// Nonce is the 96-bit AEAD nonce.
	Nonce []byte

	// Ciphertext is the encrypted secret with the authentication tag
	// appended.
	Ciphertext []byte
}

// Encrypt seals plaintext under a password using the optimal AEAD suite
// for this host and the given KDF parameters.
//
// The random source supplies the salt and nonce; pass nil for the
// default crypto/rand source.
func Encrypt(random io.Reader, plaintext, password []byte, params kdf.Params) (*Record, error) {
	return EncryptSuite(random, aead.SelectOptimal(), plaintext, password, params)
}

// EncryptSuite is Encrypt with an explicit cipher suite.
func EncryptSuite(random io.Reader, suite aead.Suite, plaintext, password []byte, params kdf.Params) (*Record, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: plaintext cannot be empty", types.ErrInvalidInput)
	}

	salt, err := rand.Bytes(random, kdf.SaltLength)
	if err != nil {
		return nil, err
	}

	key, err := kdf.DeriveKey(password, salt, params)
	if err != nil {
		return nil, err
	}
	defer types.Zeroize(key)

	cipher, err := aead.New(suite, key)
	if err != nil {
		return nil, err
	}

	nonce, err := rand.Bytes(random, aead.NonceSize)
	if err != nil {
		return nil, err
	}

	// The salt doubles as additional authenticated data, binding the
	// tag to the key derivation inputs as well as the ciphertext.
	ciphertext := cipher.Seal(nil, nonce, plaintext, salt)

	return &Record{
		Suite:      suite,
		Params:     params,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt rederives the key from the record's salt and parameters and
// opens the ciphertext. The authentication tag is verified before any
// plaintext byte is released: on failure Decrypt returns
// types.ErrAuthenticationFailed and no partial plaintext.
//
// The caller owns the returned plaintext and must zero it with
// types.Zeroize once it is no longer needed.
func Decrypt(rec *Record, password []byte) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: record cannot be nil", types.ErrInvalidInput)
	}
	if len(rec.Nonce) != aead.NonceSize {
		return nil, fmt.Errorf("%w: record nonce must be %d bytes, got %d",
			types.ErrInvalidParameters, aead.NonceSize, len(rec.Nonce))
	}

	key, err := kdf.DeriveKey(password, rec.Salt, rec.Params)
	if err != nil {
		return nil, err
	}
	defer types.Zeroize(key)

	cipher, err := aead.New(rec.Suite, key)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Open(nil, rec.Nonce, rec.Ciphertext, rec.Salt)
	if err != nil {
		// Wrong password and tampered ciphertext are indistinguishable
		// here; cipher.Open releases nothing on tag failure.
		return nil, types.ErrAuthenticationFailed
	}
	return plaintext, nil
}
