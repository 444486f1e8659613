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
	"fmt"
	"io"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/kdf"
	"github.com/jeremyhahn/go-qrvault/pkg/crypto/rand"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// Layered is a plausible-deniability pair: two independently sealed
// records stored in order, with no field indicating which is the real
// one. Given ciphertext alone, a layered record differs from a single
// record only by length.
type Layered struct {
	// A is the first sealed record in storage order.
	A *Record

	// B is the second sealed record in storage order.
	B *Record
}

// BuildLayered combines two independently sealed records into one
// layered record. The records must be sealed under different passwords;
// which one is "real" is known only to the holder.
func BuildLayered(a, b *Record) (*Layered, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: layered record requires two sealed records", types.ErrInvalidInput)
	}
	return &Layered{A: a, B: b}, nil
}

// EncryptLayered seals two plaintexts under their own passwords and
// combines them. The storage order of the two blobs is randomized so
// that position carries no information about which secret came first.
func EncryptLayered(random io.Reader, plaintextA, passwordA, plaintextB, passwordB []byte, params kdf.Params) (*Layered, error) {
	recA, err := Encrypt(random, plaintextA, passwordA, params)
	if err != nil {
		return nil, err
	}
	recB, err := Encrypt(random, plaintextB, passwordB, params)
	if err != nil {
		return nil, err
	}

	flip, err := randomBit(random)
	if err != nil {
		return nil, err
	}
	if flip {
		recA, recB = recB, recA
	}
	return BuildLayered(recA, recB)
}

// OpenLayered attempts decryption of both blobs with the given password
// and returns the plaintext of whichever succeeds.
//
// Both attempts always execute through the identical code path
// regardless of outcome, so timing does not reveal which layer (if
// either) matched. On success the caller learns nothing about whether
// the other blob is decryptable with a different password. If neither
// blob opens, OpenLayered returns types.ErrAuthenticationFailed.
func OpenLayered(layered *Layered, password []byte) ([]byte, error) {
	if layered == nil || layered.A == nil || layered.B == nil {
		return nil, fmt.Errorf("%w: layered record cannot be nil", types.ErrInvalidInput)
	}

	ptA, errA := Decrypt(layered.A, password)
	ptB, errB := Decrypt(layered.B, password)

	switch {
	case errA == nil:
		// The two passwords are independent; if both somehow matched,
		// release only the first blob's plaintext.
		if errB == nil {
			types.Zeroize(ptB)
		}
		return ptA, nil
	case errB == nil:
		return ptB, nil
	default:
		return nil, types.ErrAuthenticationFailed
	}
}

func randomBit(random io.Reader) (bool, error) {
	b, err := rand.Bytes(random, 1)
	if err != nil {
		return false, err
	}
	return b[0]&1 == 1, nil
}
