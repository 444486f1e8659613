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

// Package shamir implements Shamir's Secret Sharing over GF(256).
//
// A secret is split into n shares such that any threshold t of them
// reconstruct it exactly, while t-1 shares are information-theoretically
// useless. Each byte of the secret is the constant term of its own
// random polynomial of degree t-1; share i holds the evaluations of all
// those polynomials at x = i.
//
// All arithmetic uses the AES field GF(2^8) with the irreducible
// polynomial x^8 + x^4 + x^3 + x + 1 (0x11B); see gf256.go. Every share
// embeds a truncated SHA-256 tag of the original secret so that
// reconstruction from a wrong-but-consistent share set fails loudly
// instead of returning a plausible wrong secret.
package shamir

import (
	"fmt"
	"io"

	"github.com/jeremyhahn/go-qrvault/pkg/crypto/rand"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

const (
	// MinThreshold is the smallest meaningful threshold.
	MinThreshold = 2

	// MaxShares is the largest share count; indices are nonzero field
	// elements, of which GF(256) has 255.
	MaxShares = 255
)

// Split divides secret into total shares with the given reconstruction
// threshold. The random source supplies the polynomial coefficients;
// pass nil for the default crypto/rand source.
//
// Requires 2 <= threshold <= total <= 255 and a non-empty secret.
func Split(random io.Reader, secret []byte, threshold, total int) ([]Share, error) {
	if threshold < MinThreshold {
		return nil, fmt.Errorf("%w: threshold must be at least %d, got %d",
			types.ErrInvalidParameters, MinThreshold, threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("%w: total shares (%d) must be >= threshold (%d)",
			types.ErrInvalidParameters, total, threshold)
	}
	if total > MaxShares {
		return nil, fmt.Errorf("%w: total shares must be <= %d, got %d",
			types.ErrInvalidParameters, MaxShares, total)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: secret cannot be empty", types.ErrInvalidInput)
	}

	tag := secretTag(secret)
	shares := make([]Share, total)
	for i := range shares {
		shares[i] = Share{
			Index:     byte(i + 1),
			Threshold: byte(threshold),
			Total:     byte(total),
			Values:    make([]byte, len(secret)),
			Tag:       tag,
		}
	}

	coeffs := make([]byte, threshold)
	defer types.Zeroize(coeffs)

	for byteIdx := 0; byteIdx < len(secret); byteIdx++ {
		// Degree t-1 polynomial with the secret byte as constant term
		// and fresh random coefficients for every offset.
		coeffs[0] = secret[byteIdx]
		if err := rand.Fill(random, coeffs[1:]); err != nil {
			return nil, err
		}
		for i := range shares {
			shares[i].Values[byteIdx] = evaluatePolynomial(coeffs, shares[i].Index)
		}
	}

	return shares, nil
}

// Reconstruct recovers the secret from at least threshold shares of the
// same split. Shares must agree on (threshold, total, secret length,
// tag) and carry pairwise-distinct indices.
//
// Any t correct shares from one split recover the exact original
// secret. After interpolation the integrity tag is recomputed over the
// recovered bytes; a mismatch zeroes the buffer and returns
// types.ErrReconstructionFailed rather than accepting a wrong secret.
//
// The caller owns the returned secret and must zero it with
// types.Zeroize once it is no longer needed.
func Reconstruct(shares []Share) ([]byte, error) {
	if err := checkShareSet(shares); err != nil {
		return nil, err
	}

	threshold := int(shares[0].Threshold)
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: need %d shares, got %d",
			types.ErrInsufficientShares, threshold, len(shares))
	}

	// Interpolation needs exactly t points; extras are redundant.
	shares = shares[:threshold]

	xs := make([]byte, threshold)
	ys := make([]byte, threshold)
	for i := range shares {
		xs[i] = shares[i].Index
	}
	defer types.Zeroize(ys)

	secretLen := len(shares[0].Values)
	secret := make([]byte, secretLen)
	for byteIdx := 0; byteIdx < secretLen; byteIdx++ {
		for i := range shares {
			ys[i] = shares[i].Values[byteIdx]
		}
		secret[byteIdx] = interpolateAtZero(xs, ys)
	}

	if secretTag(secret) != shares[0].Tag {
		types.Zeroize(secret)
		return nil, fmt.Errorf("%w: recovered secret does not match the tag embedded in the shares",
			types.ErrReconstructionFailed)
	}

	return secret, nil
}

// Report summarizes a consistency check over a set of shares.
type Report struct {
	// Count is the number of distinct-index shares inspected.
	Count int

	// Threshold and Total are the split parameters shared by the set.
	Threshold int
	Total     int

	// SecretLength is the length of the secret the shares encode.
	SecretLength int

	// Ready is true when enough distinct shares are present to
	// reconstruct.
	Ready bool
}

// Validate performs the consistency checks of Reconstruct without
// interpolating, for early feedback while shares are still being
// collected.
func Validate(shares []Share) (*Report, error) {
	if err := checkShareSet(shares); err != nil {
		return nil, err
	}
	first := shares[0]
	return &Report{
		Count:        len(shares),
		Threshold:    int(first.Threshold),
		Total:        int(first.Total),
		SecretLength: len(first.Values),
		Ready:        len(shares) >= int(first.Threshold),
	}, nil
}

// checkShareSet verifies per-share validity, metadata agreement, and
// index uniqueness.
func checkShareSet(shares []Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("%w: no shares provided", types.ErrInsufficientShares)
	}

	want := shares[0].fingerprint()
	seen := make(map[byte]bool, len(shares))
	for i := range shares {
		if err := shares[i].Validate(); err != nil {
			return fmt.Errorf("share %d: %w", i, err)
		}
		if shares[i].fingerprint() != want {
			return fmt.Errorf("%w: share %d does not match the set's parameters",
				types.ErrMismatchedShares, i)
		}
		if seen[shares[i].Index] {
			return fmt.Errorf("%w: duplicate share index %d",
				types.ErrMismatchedShares, shares[i].Index)
		}
		seen[shares[i].Index] = true
	}
	return nil
}
