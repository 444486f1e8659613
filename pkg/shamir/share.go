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

package shamir

import (
	"crypto/sha256"
	"fmt"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// TagSize is the size of the secret integrity tag carried by every
// share: the first 4 bytes of SHA-256 over the original secret. The tag
// lets reconstruction detect a wrong-but-structurally-valid combination
// of shares instead of silently returning garbage. 4 bytes is an
// error-detection code, not an authenticator; authenticity comes from
// the AEAD layer.
const TagSize = 4

// Share is one point of a split secret. A single share carries no
// information about the secret: fewer than Threshold shares yield no
// statistical advantage over guessing.
type Share struct {
	// Index is the x-coordinate the polynomials were evaluated at,
	// 1..255. Never zero.
	Index byte

	// Threshold is the minimum number of shares required to
	// reconstruct.
	Threshold byte

	// Total is the number of shares produced by the split.
	Total byte

	// Values holds one y-value per byte offset of the secret;
	// len(Values) is the secret length.
	Values []byte

	// Tag is the truncated SHA-256 of the original secret, identical
	// across all shares of one split.
	Tag [TagSize]byte
}

// fingerprint is the metadata every share of one split has in common.
type fingerprint struct {
	threshold    byte
	total        byte
	secretLength int
	tag          [TagSize]byte
}

func (s *Share) fingerprint() fingerprint {
	return fingerprint{
		threshold:    s.Threshold,
		total:        s.Total,
		secretLength: len(s.Values),
		tag:          s.Tag,
	}
}

// Validate checks the share's own metadata for consistency.
func (s *Share) Validate() error {
	if s.Index == 0 {
		return fmt.Errorf("%w: share index cannot be zero", types.ErrInvalidParameters)
	}
	if s.Threshold < 2 {
		return fmt.Errorf("%w: share threshold %d below minimum 2", types.ErrInvalidParameters, s.Threshold)
	}
	if s.Total < s.Threshold {
		return fmt.Errorf("%w: share total %d below threshold %d", types.ErrInvalidParameters, s.Total, s.Threshold)
	}
	if s.Index > s.Total {
		return fmt.Errorf("%w: share index %d exceeds total %d", types.ErrInvalidParameters, s.Index, s.Total)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("%w: share has no values", types.ErrInvalidParameters)
	}
	return nil
}

// String identifies the share without exposing its field values.
func (s *Share) String() string {
	return fmt.Sprintf("Share{Index: %d, Threshold: %d/%d, SecretLength: %d}",
		s.Index, s.Threshold, s.Total, len(s.Values))
}

// secretTag computes the integrity tag over a secret.
func secretTag(secret []byte) (tag [TagSize]byte) {
	sum := sha256.Sum256(secret)
	copy(tag[:], sum[:TagSize])
	return tag
}
