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

package mnemonic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

const twelveWords = "abandon ability able about above absent absorb abstract absurd abuse access accident"

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abandon ability able", Normalize("  Abandon\tABILITY\n able  "))
	assert.Equal(t, "", Normalize("   "))
}

func TestInspectStandardPhrase(t *testing.T) {
	report, err := Inspect(twelveWords)
	require.NoError(t, err)

	assert.Equal(t, 12, report.WordCount)
	assert.True(t, report.StandardLength)
	assert.Empty(t, report.InvalidWords)
	assert.True(t, report.Valid())
}

func TestInspectNonStandardLength(t *testing.T) {
	report, err := Inspect("abandon ability able about")
	require.NoError(t, err)

	assert.Equal(t, 4, report.WordCount)
	assert.False(t, report.StandardLength)
	assert.Empty(t, report.InvalidWords)
	assert.False(t, report.Valid())
}

func TestInspectEmpty(t *testing.T) {
	_, err := Inspect("   ")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestInspectShortWord(t *testing.T) {
	_, err := Inspect("abandon x able")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestInspectTypoSuggestions(t *testing.T) {
	report, err := Inspect("abandon abiliti able")
	require.NoError(t, err)

	require.Contains(t, report.InvalidWords, "abiliti")
	assert.Contains(t, report.InvalidWords["abiliti"], "ability")
}

func TestInspectCaseInsensitive(t *testing.T) {
	report, err := Inspect("ABANDON Ability aBLe")
	require.NoError(t, err)
	assert.Empty(t, report.InvalidWords)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(twelveWords))

	// Non-standard counts pass Validate; only unknown words are fatal.
	require.NoError(t, Validate("abandon ability able about"))

	err := Validate("abandon abiliti able")
	require.ErrorIs(t, err, types.ErrInvalidInput)
	assert.True(t, strings.Contains(err.Error(), "abiliti"))
}

func TestEditDistanceOne(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"ability", "ability", true},
		{"ability", "abiliti", true},
		{"abilit", "ability", true},
		{"ability", "abilityy", true},
		{"ability", "absorb", false},
		{"ab", "ability", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistanceOne(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
