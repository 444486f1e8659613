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

package qrwire

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
	"github.com/jeremyhahn/go-qrvault/pkg/seal"
	"github.com/jeremyhahn/go-qrvault/pkg/shamir"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var fastParams = kdf.Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
}

func sealedRecord(t *testing.T, plaintext, pass string) *seal.Record {
	t.Helper()

	rec, err := seal.Encrypt(rand.Reader, []byte(plaintext), []byte(pass), fastParams)
	require.NoError(t, err)
	return rec
}

func layeredRecord(t *testing.T) *seal.Layered {
	t.Helper()

	pair, err := seal.EncryptLayered(rand.Reader,
		[]byte("the real secret"), []byte("real-passphrase"),
		[]byte("the decoy secret"), []byte("decoy-passphrase"),
		fastParams)
	require.NoError(t, err)
	return pair
}

func shamirShares(t *testing.T) []shamir.Share {
	t.Helper()

	shares, err := shamir.Split(rand.Reader, []byte("abandon ability able about"), 3, 5)
	require.NoError(t, err)
	return shares
}

func TestEncodeDecodeSingle(t *testing.T) {
	rec := sealedRecord(t, "my wallet seed", "correct horse")

	encoded, err := Encode(Single{Sealed: rec})
	require.NoError(t, err)
	assert.Equal(t, []byte("QRV1"), encoded[:4])
	assert.Equal(t, byte(TypeSingle), encoded[4])
	assert.Equal(t, Version, encoded[5])

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	single, ok := decoded.(Single)
	require.True(t, ok)
	assert.Equal(t, rec.Suite, single.Sealed.Suite)
	assert.Equal(t, rec.Params, single.Sealed.Params)
	assert.Equal(t, rec.Salt, single.Sealed.Salt)
	assert.Equal(t, rec.Nonce, single.Sealed.Nonce)
	assert.Equal(t, rec.Ciphertext, single.Sealed.Ciphertext)
}

func TestEncodeDecodeSingleStillOpens(t *testing.T) {
	rec := sealedRecord(t, "my wallet seed", "correct horse")

	encoded, err := Encode(Single{Sealed: rec})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	plaintext, err := seal.Decrypt(decoded.(Single).Sealed, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, []byte("my wallet seed"), plaintext)
}

func TestEncodeDecodeShamirShare(t *testing.T) {
	shares := shamirShares(t)

	roundTripped := make([]shamir.Share, 0, len(shares))
	for _, share := range shares {
		encoded, err := Encode(ShamirShare{Share: share})
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)

		wire, ok := decoded.(ShamirShare)
		require.True(t, ok)
		assert.Equal(t, share, wire.Share)
		roundTripped = append(roundTripped, wire.Share)
	}

	secret, err := shamir.Reconstruct(roundTripped[:3])
	require.NoError(t, err)
	assert.Equal(t, []byte("abandon ability able about"), secret)
}

func TestEncodeDecodeLayered(t *testing.T) {
	pair := layeredRecord(t)

	encoded, err := Encode(Layered{Pair: pair})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	layered, ok := decoded.(Layered)
	require.True(t, ok)
	assert.Equal(t, pair.A, layered.Pair.A)
	assert.Equal(t, pair.B, layered.Pair.B)

	plaintext, err := seal.OpenLayered(layered.Pair, []byte("decoy-passphrase"))
	require.NoError(t, err)
	assert.Equal(t, []byte("the decoy secret"), plaintext)
}

func TestDecodeTruncated(t *testing.T) {
	rec := sealedRecord(t, "secret", "pass")
	encoded, err := Encode(Single{Sealed: rec})
	require.NoError(t, err)

	for _, n := range []int{0, 3, 5, headerSize, len(encoded) - 1} {
		_, err := Decode(encoded[:n])
		assert.ErrorIs(t, err, types.ErrMalformedPayload, "length %d", n)
	}
}

func TestDecodeChecksumMutation(t *testing.T) {
	shares := shamirShares(t)
	encoded, err := Encode(ShamirShare{Share: shares[0]})
	require.NoError(t, err)

	// Flip one bit at every offset; every mutation must be caught.
	for i := range encoded {
		mutated := bytes.Clone(encoded)
		mutated[i] ^= 0x40

		_, err := Decode(mutated)
		assert.ErrorIs(t, err, types.ErrMalformedPayload, "offset %d", i)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	rec := sealedRecord(t, "secret", "pass")
	encoded, err := Encode(Single{Sealed: rec})
	require.NoError(t, err)

	encoded[0] = 'X'
	_, err = Decode(encoded)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestDecodeUnknownType(t *testing.T) {
	encoded := reframe(t, 0x7F, Version, []byte{0x00})
	_, err := Decode(encoded)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestDecodeUnknownVersion(t *testing.T) {
	rec := sealedRecord(t, "secret", "pass")
	payload, err := encodeSealed(rec)
	require.NoError(t, err)

	encoded := reframe(t, byte(TypeSingle), Version+1, payload)
	_, err = Decode(encoded)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestDecodeLayeredTrailingBytes(t *testing.T) {
	pair := layeredRecord(t)
	payload, err := encodeLayered(pair)
	require.NoError(t, err)

	encoded := reframe(t, byte(TypeLayered), Version, append(payload, 0x00))
	_, err = Decode(encoded)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestDecodeShareLengthMismatch(t *testing.T) {
	shares := shamirShares(t)
	payload, err := encodeShare(&shares[0])
	require.NoError(t, err)

	encoded := reframe(t, byte(TypeShamirShare), Version, payload[:len(payload)-1])
	_, err = Decode(encoded)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestEncodeInvalidInputs(t *testing.T) {
	_, err := Encode(Single{Sealed: nil})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = Encode(Layered{Pair: nil})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = Encode(Layered{Pair: &seal.Layered{}})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

// reframe builds a wire record with a valid checksum around an
// arbitrary type, version, and payload.
func reframe(t *testing.T, typ, version byte, payload []byte) []byte {
	t.Helper()

	buf := append([]byte("QRV1"), typ, version)
	buf = append(buf, payload...)
	return binary.BigEndian.AppendUint32(buf, crc32.Checksum(buf, castagnoli))
}
