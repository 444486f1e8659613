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

// Package qrwire is the canonical wire codec for vault records.
//
// Encoded records are what an external QR renderer receives and what a
// scanner hands back. The format is a closed tagged union over exactly
// three record kinds, framed as:
//
//	magic "QRV1" | type (1) | version (1) | payload | CRC-32C (4)
//
// The checksum is CRC-32 (Castagnoli) over every byte before it and
// catches transcription and scan corruption. Decode(Encode(x)) == x for
// every record variant; anything else is rejected with
// types.ErrMalformedPayload.
//
// All multi-byte integers are big-endian.
package qrwire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/aead"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
	"github.com/jeremyhahn/go-qrvault/pkg/seal"
	"github.com/jeremyhahn/go-qrvault/pkg/shamir"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// Type tags the record kind on the wire.
type Type byte

const (
	// TypeSingle is a password-sealed record.
	TypeSingle Type = 0x01

	// TypeShamirShare is one share of a threshold split.
	TypeShamirShare Type = 0x02

	// TypeLayered is a deniable two-blob record.
	TypeLayered Type = 0x03
)

// Version is the current schema version.
const Version byte = 1

var magic = [4]byte{'Q', 'R', 'V', '1'}

const (
	headerSize   = 6 // magic + type + version
	checksumSize = 4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Record is the closed union of wire record kinds. Only Single,
// ShamirShare, and Layered implement it.
type Record interface {
	recordType() Type
}

// Single wraps a sealed record for transport.
type Single struct {
	Sealed *seal.Record
}

// ShamirShare wraps one threshold share for transport.
type ShamirShare struct {
	Share shamir.Share
}

// Layered wraps a deniable record pair for transport.
type Layered struct {
	Pair *seal.Layered
}

func (Single) recordType() Type      { return TypeSingle }
func (ShamirShare) recordType() Type { return TypeShamirShare }
func (Layered) recordType() Type     { return TypeLayered }

// Encode serializes a record into its canonical wire form.
func Encode(record Record) ([]byte, error) {
	var payload []byte
	var err error

	switch r := record.(type) {
	case Single:
		payload, err = encodeSealed(r.Sealed)
	case ShamirShare:
		payload, err = encodeShare(&r.Share)
	case Layered:
		payload, err = encodeLayered(r.Pair)
	default:
		return nil, fmt.Errorf("%w: unsupported record %T", types.ErrInvalidInput, record)
	}
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, headerSize+len(payload)+checksumSize)
	buf = append(buf, magic[:]...)
	buf = append(buf, byte(record.recordType()), Version)
	buf = append(buf, payload...)
	buf = binary.BigEndian.AppendUint32(buf, crc32.Checksum(buf, castagnoli))
	return buf, nil
}

// Decode parses canonical wire bytes back into a typed record. The
// union is matched exhaustively: an unknown type tag is an error, never
// an ignored value.
func Decode(data []byte) (Record, error) {
	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: record truncated at %d bytes", types.ErrMalformedPayload, len(data))
	}
	if [4]byte(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", types.ErrMalformedPayload)
	}

	body, sum := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	if binary.BigEndian.Uint32(sum) != crc32.Checksum(body, castagnoli) {
		return nil, fmt.Errorf("%w: checksum mismatch", types.ErrMalformedPayload)
	}

	if data[5] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", types.ErrMalformedPayload, data[5])
	}

	payload := body[headerSize:]
	switch Type(data[4]) {
	case TypeSingle:
		rec, err := decodeSealed(payload)
		if err != nil {
			return nil, err
		}
		return Single{Sealed: rec}, nil
	case TypeShamirShare:
		share, err := decodeShare(payload)
		if err != nil {
			return nil, err
		}
		return ShamirShare{Share: *share}, nil
	case TypeLayered:
		pair, err := decodeLayered(payload)
		if err != nil {
			return nil, err
		}
		return Layered{Pair: pair}, nil
	default:
		return nil, fmt.Errorf("%w: unknown record type 0x%02x", types.ErrMalformedPayload, data[4])
	}
}

// Sealed record payload:
//
//	suite(1) | memory(4) | iterations(4) | parallelism(1) |
//	saltLen(1) | salt | nonce(12) | ciphertext
func encodeSealed(rec *seal.Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: sealed record cannot be nil", types.ErrInvalidInput)
	}
	if len(rec.Salt) > 255 {
		return nil, fmt.Errorf("%w: salt exceeds 255 bytes", types.ErrInvalidInput)
	}
	if len(rec.Nonce) != aead.NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", types.ErrInvalidInput, aead.NonceSize)
	}

	buf := make([]byte, 0, 11+len(rec.Salt)+aead.NonceSize+len(rec.Ciphertext))
	buf = append(buf, byte(rec.Suite))
	buf = binary.BigEndian.AppendUint32(buf, rec.Params.Memory)
	buf = binary.BigEndian.AppendUint32(buf, rec.Params.Iterations)
	buf = append(buf, rec.Params.Parallelism, byte(len(rec.Salt)))
	buf = append(buf, rec.Salt...)
	buf = append(buf, rec.Nonce...)
	buf = append(buf, rec.Ciphertext...)
	return buf, nil
}

func decodeSealed(payload []byte) (*seal.Record, error) {
	// suite + params + saltLen, then at least nonce + tag.
	if len(payload) < 11 {
		return nil, fmt.Errorf("%w: sealed payload truncated", types.ErrMalformedPayload)
	}

	suite := aead.Suite(payload[0])
	if !suite.Valid() {
		return nil, fmt.Errorf("%w: unknown cipher suite 0x%02x", types.ErrMalformedPayload, payload[0])
	}

	params := kdf.Params{
		Memory:      binary.BigEndian.Uint32(payload[1:5]),
		Iterations:  binary.BigEndian.Uint32(payload[5:9]),
		Parallelism: payload[9],
	}
	saltLen := int(payload[10])

	rest := payload[11:]
	if len(rest) < saltLen+aead.NonceSize+aead.Overhead {
		return nil, fmt.Errorf("%w: sealed payload shorter than its salt and nonce", types.ErrMalformedPayload)
	}

	rec := &seal.Record{
		Suite:      suite,
		Params:     params,
		Salt:       append([]byte(nil), rest[:saltLen]...),
		Nonce:      append([]byte(nil), rest[saltLen:saltLen+aead.NonceSize]...),
		Ciphertext: append([]byte(nil), rest[saltLen+aead.NonceSize:]...),
	}
	return rec, nil
}

// Share payload:
//
//	index(1) | threshold(1) | total(1) | secretLen(2) | tag(4) | values
func encodeShare(share *shamir.Share) ([]byte, error) {
	if err := share.Validate(); err != nil {
		return nil, err
	}
	if len(share.Values) > 0xFFFF {
		return nil, fmt.Errorf("%w: secret length exceeds 65535", types.ErrInvalidInput)
	}

	buf := make([]byte, 0, 5+shamir.TagSize+len(share.Values))
	buf = append(buf, share.Index, share.Threshold, share.Total)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(share.Values)))
	buf = append(buf, share.Tag[:]...)
	buf = append(buf, share.Values...)
	return buf, nil
}

func decodeShare(payload []byte) (*shamir.Share, error) {
	if len(payload) < 5+shamir.TagSize {
		return nil, fmt.Errorf("%w: share payload truncated", types.ErrMalformedPayload)
	}

	secretLen := int(binary.BigEndian.Uint16(payload[3:5]))
	if len(payload) != 5+shamir.TagSize+secretLen {
		return nil, fmt.Errorf("%w: share payload length %d does not match declared secret length %d",
			types.ErrMalformedPayload, len(payload), secretLen)
	}

	share := &shamir.Share{
		Index:     payload[0],
		Threshold: payload[1],
		Total:     payload[2],
		Tag:       [shamir.TagSize]byte(payload[5 : 5+shamir.TagSize]),
		Values:    append([]byte(nil), payload[5+shamir.TagSize:]...),
	}
	if err := share.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedPayload, err)
	}
	return share, nil
}

// Layered payload: two length-prefixed sealed payloads in storage
// order. Nothing marks which blob is real.
func encodeLayered(pair *seal.Layered) ([]byte, error) {
	if pair == nil || pair.A == nil || pair.B == nil {
		return nil, fmt.Errorf("%w: layered record requires two sealed records", types.ErrInvalidInput)
	}

	var buf []byte
	for _, rec := range []*seal.Record{pair.A, pair.B} {
		blob, err := encodeSealed(rec)
		if err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(blob)))
		buf = append(buf, blob...)
	}
	return buf, nil
}

func decodeLayered(payload []byte) (*seal.Layered, error) {
	var blobs [2]*seal.Record
	for i := range blobs {
		if len(payload) < 4 {
			return nil, fmt.Errorf("%w: layered payload truncated", types.ErrMalformedPayload)
		}
		blobLen := int(binary.BigEndian.Uint32(payload[:4]))
		payload = payload[4:]
		if len(payload) < blobLen {
			return nil, fmt.Errorf("%w: layered blob length %d exceeds remaining payload",
				types.ErrMalformedPayload, blobLen)
		}
		rec, err := decodeSealed(payload[:blobLen])
		if err != nil {
			return nil, err
		}
		blobs[i] = rec
		payload = payload[blobLen:]
	}
	if len(payload) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after layered payload",
			types.ErrMalformedPayload, len(payload))
	}
	return &seal.Layered{A: blobs[0], B: blobs[1]}, nil
}
