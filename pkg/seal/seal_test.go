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

package seal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/aead"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// testParams keeps Argon2id cheap in tests while remaining valid.
var testParams = kdf.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := []byte("abandon ability able about")
	password := []byte("correct horse battery staple")

	rec, err := Encrypt(nil, secret, password, testParams)
	require.NoError(t, err)

	assert.Len(t, rec.Salt, kdf.SaltLength)
	assert.Len(t, rec.Nonce, aead.NonceSize)
	assert.Len(t, rec.Ciphertext, len(secret)+aead.Overhead)
	assert.True(t, rec.Suite.Valid())

	got, err := Decrypt(rec, password)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestEncryptFreshSaltAndNonce(t *testing.T) {
	secret := []byte("abandon ability able about")
	password := []byte("pw")

	a, err := Encrypt(nil, secret, password, testParams)
	require.NoError(t, err)
	b, err := Encrypt(nil, secret, password, testParams)
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestDecryptWrongPassword(t *testing.T) {
	rec, err := Encrypt(nil, []byte("secret"), []byte("right"), testParams)
	require.NoError(t, err)

	got, err := Decrypt(rec, []byte("wrong"))
	assert.ErrorIs(t, err, types.ErrAuthenticationFailed)
	assert.Nil(t, got)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	rec, err := Encrypt(nil, []byte("secret"), []byte("pw"), testParams)
	require.NoError(t, err)

	rec.Ciphertext[0] ^= 0x01

	got, err := Decrypt(rec, []byte("pw"))
	assert.ErrorIs(t, err, types.ErrAuthenticationFailed)
	assert.Nil(t, got)
}

func TestDecryptTamperedSalt(t *testing.T) {
	rec, err := Encrypt(nil, []byte("secret"), []byte("pw"), testParams)
	require.NoError(t, err)

	// The salt is bound as AAD, so flipping it must fail the tag even
	// though the ciphertext is intact.
	rec.Salt[0] ^= 0x01

	_, err = Decrypt(rec, []byte("pw"))
	assert.ErrorIs(t, err, types.ErrAuthenticationFailed)
}

func TestEncryptSuiteExplicit(t *testing.T) {
	for _, suite := range []aead.Suite{aead.SuiteAES256GCM, aead.SuiteChaCha20Poly1305} {
		t.Run(suite.String(), func(t *testing.T) {
			rec, err := EncryptSuite(nil, suite, []byte("secret"), []byte("pw"), testParams)
			require.NoError(t, err)
			assert.Equal(t, suite, rec.Suite)

			got, err := Decrypt(rec, []byte("pw"))
			require.NoError(t, err)
			assert.Equal(t, []byte("secret"), got)
		})
	}
}

func TestEncryptInvalidInput(t *testing.T) {
	_, err := Encrypt(nil, nil, []byte("pw"), testParams)
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = Encrypt(nil, []byte("secret"), nil, testParams)
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = Encrypt(nil, []byte("secret"), []byte("pw"), kdf.Params{})
	assert.ErrorIs(t, err, types.ErrInvalidParameters)
}

func TestDecryptInvalidRecord(t *testing.T) {
	_, err := Decrypt(nil, []byte("pw"))
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	rec, err := Encrypt(nil, []byte("secret"), []byte("pw"), testParams)
	require.NoError(t, err)
	rec.Nonce = rec.Nonce[:8]

	_, err = Decrypt(rec, []byte("pw"))
	assert.ErrorIs(t, err, types.ErrInvalidParameters)
}
