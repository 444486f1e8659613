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
	"bytes"
	"errors"
	"testing"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

func TestSplitParameterValidation(t *testing.T) {
	secret := []byte("test secret")

	tests := []struct {
		name      string
		secret    []byte
		threshold int
		total     int
		want      error
	}{
		{"threshold below minimum", secret, 1, 5, types.ErrInvalidParameters},
		{"zero threshold", secret, 0, 5, types.ErrInvalidParameters},
		{"threshold above total", secret, 6, 5, types.ErrInvalidParameters},
		{"total above 255", secret, 3, 256, types.ErrInvalidParameters},
		{"empty secret", nil, 3, 5, types.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(nil, tt.secret, tt.threshold, tt.total)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSplitShareShape(t *testing.T) {
	secret := []byte("abandon ability able about")
	shares, err := Split(nil, secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("expected 5 shares, got %d", len(shares))
	}

	tag := secretTag(secret)
	for i, share := range shares {
		if share.Index != byte(i+1) {
			t.Errorf("share %d has index %d", i, share.Index)
		}
		if share.Threshold != 3 || share.Total != 5 {
			t.Errorf("share %d has parameters %d/%d", i, share.Threshold, share.Total)
		}
		if len(share.Values) != len(secret) {
			t.Errorf("share %d has %d values, want %d", i, len(share.Values), len(secret))
		}
		if share.Tag != tag {
			t.Errorf("share %d carries a different integrity tag", i)
		}
		if bytes.Equal(share.Values, secret) {
			t.Errorf("share %d leaks the raw secret", i)
		}
	}
}

// TestReconstructConcreteScenario is the canonical workflow: a 3-of-5
// split of a seed phrase fragment, reconstructed from shares {1,3,5},
// with {1,2} insufficient.
func TestReconstructConcreteScenario(t *testing.T) {
	secret := []byte("abandon ability able about")
	shares, err := Split(nil, secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	subset := []Share{shares[0], shares[2], shares[4]}
	got, err := Reconstruct(subset)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("reconstructed %q, want %q", got, secret)
	}

	_, err = Reconstruct([]Share{shares[0], shares[1]})
	if !errors.Is(err, types.ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestReconstructAllSubsets(t *testing.T) {
	secret := []byte("threshold subsets")
	shares, err := Split(nil, secret, 2, 4)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Every 2-of-4 subset must recover the exact secret.
	for i := 0; i < len(shares); i++ {
		for j := i + 1; j < len(shares); j++ {
			got, err := Reconstruct([]Share{shares[i], shares[j]})
			if err != nil {
				t.Fatalf("Reconstruct {%d,%d} failed: %v", i+1, j+1, err)
			}
			if !bytes.Equal(got, secret) {
				t.Fatalf("subset {%d,%d} reconstructed wrong secret", i+1, j+1)
			}
		}
	}
}

func TestReconstructMoreThanThreshold(t *testing.T) {
	secret := []byte("extra shares are fine")
	shares, err := Split(nil, secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	got, err := Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatal("reconstruction with all shares returned wrong secret")
	}
}

func TestReconstructSingleByteSecret(t *testing.T) {
	secret := []byte{0x7F}
	shares, err := Split(nil, secret, 2, 2)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	got, err := Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatal("single-byte round trip failed")
	}
}

func TestReconstructTamperedShare(t *testing.T) {
	secret := []byte("tamper detection")
	shares, err := Split(nil, secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Flip one byte of one share's field values; the combination
	// remains structurally valid but must fail the integrity tag.
	shares[1].Values[4] ^= 0x01

	_, err = Reconstruct([]Share{shares[0], shares[1], shares[2]})
	if !errors.Is(err, types.ErrReconstructionFailed) {
		t.Fatalf("expected ErrReconstructionFailed, got %v", err)
	}
}

func TestReconstructMixedSplits(t *testing.T) {
	a, err := Split(nil, []byte("first secret"), 2, 3)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	b, err := Split(nil, []byte("other secret"), 2, 3)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Shares from different splits with distinct indices: the tags
	// disagree, so the set is rejected before interpolation.
	_, err = Reconstruct([]Share{a[0], b[1]})
	if !errors.Is(err, types.ErrMismatchedShares) {
		t.Fatalf("expected ErrMismatchedShares, got %v", err)
	}
}

func TestReconstructDuplicateIndices(t *testing.T) {
	shares, err := Split(nil, []byte("dup"), 2, 3)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	_, err = Reconstruct([]Share{shares[0], shares[0]})
	if !errors.Is(err, types.ErrMismatchedShares) {
		t.Fatalf("expected ErrMismatchedShares, got %v", err)
	}
}

func TestReconstructNoShares(t *testing.T) {
	_, err := Reconstruct(nil)
	if !errors.Is(err, types.ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	secret := []byte("validate me")
	shares, err := Split(nil, secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	report, err := Validate(shares[:2])
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Ready {
		t.Fatal("2 of 3 shares reported ready")
	}
	if report.Threshold != 3 || report.Total != 5 {
		t.Fatalf("report has parameters %d/%d", report.Threshold, report.Total)
	}
	if report.SecretLength != len(secret) {
		t.Fatalf("report secret length %d, want %d", report.SecretLength, len(secret))
	}

	report, err = Validate(shares[:3])
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !report.Ready {
		t.Fatal("3 of 3 shares not reported ready")
	}
}

func TestValidateMismatch(t *testing.T) {
	a, _ := Split(nil, []byte("one"), 2, 3)
	b, _ := Split(nil, []byte("two"), 2, 3)

	_, err := Validate([]Share{a[0], b[1]})
	if !errors.Is(err, types.ErrMismatchedShares) {
		t.Fatalf("expected ErrMismatchedShares, got %v", err)
	}
}

// TestSplitDeterministicSource pins the share derivation to the random
// source: the same source bytes must produce identical shares.
func TestSplitDeterministicSource(t *testing.T) {
	secret := []byte("deterministic")

	src := func() *bytes.Reader {
		seed := make([]byte, len(secret)*2)
		for i := range seed {
			seed[i] = byte(i*7 + 1)
		}
		return bytes.NewReader(seed)
	}

	a, err := Split(src(), secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	b, err := Split(src(), secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	for i := range a {
		if !bytes.Equal(a[i].Values, b[i].Values) {
			t.Fatalf("share %d differs across identical sources", i+1)
		}
	}
}
