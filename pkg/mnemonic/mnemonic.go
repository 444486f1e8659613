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

// Package mnemonic validates BIP39 seed phrases before they are sealed
// or split. Validation is advisory hardening against transcription
// mistakes: the vault itself treats secrets as opaque bytes, and callers
// sealing non-mnemonic material skip this package entirely.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// StandardWordCounts are the BIP39 phrase lengths.
var StandardWordCounts = []int{12, 15, 18, 21, 24}

// maxSuggestions caps typo suggestions per invalid word.
const maxSuggestions = 3

// Report summarizes a phrase inspection.
type Report struct {
	// WordCount is the number of whitespace-separated words.
	WordCount int

	// StandardLength reports whether WordCount is a BIP39 phrase length.
	StandardLength bool

	// InvalidWords maps each word missing from the BIP39 English word
	// list to close matches that may be the intended word.
	InvalidWords map[string][]string
}

// Valid reports whether the phrase passed every check.
func (r *Report) Valid() bool {
	return r.StandardLength && len(r.InvalidWords) == 0
}

// Normalize lowercases a phrase and collapses runs of whitespace into
// single spaces. Sealing the normalized form keeps payloads canonical
// across retyped input.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Inspect checks a phrase against the BIP39 English word list and the
// standard phrase lengths without rejecting it. Callers decide whether
// a non-standard report is fatal.
func Inspect(phrase string) (*Report, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: seed phrase cannot be empty", types.ErrInvalidInput)
	}

	report := &Report{
		WordCount:      len(words),
		StandardLength: standardLength(len(words)),
		InvalidWords:   map[string][]string{},
	}

	wordlist := bip39.GetWordList()
	known := make(map[string]struct{}, len(wordlist))
	for _, w := range wordlist {
		known[w] = struct{}{}
	}

	for _, word := range words {
		if len(word) < 2 {
			return nil, fmt.Errorf("%w: word %q is too short, check your input", types.ErrInvalidInput, word)
		}
		lower := strings.ToLower(word)
		if _, ok := known[lower]; !ok {
			report.InvalidWords[word] = suggestions(lower, wordlist)
		}
	}
	return report, nil
}

// Validate runs Inspect and rejects phrases with invalid words. A
// non-standard word count alone is not fatal; the original material may
// predate BIP39.
func Validate(phrase string) error {
	report, err := Inspect(phrase)
	if err != nil {
		return err
	}
	if len(report.InvalidWords) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("words not in the BIP39 word list:")
	for word, matches := range report.InvalidWords {
		fmt.Fprintf(&sb, " %q", word)
		if len(matches) > 0 {
			fmt.Fprintf(&sb, " (did you mean %s?)", strings.Join(matches, ", "))
		}
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidInput, sb.String())
}

func standardLength(n int) bool {
	for _, c := range StandardWordCounts {
		if n == c {
			return true
		}
	}
	return false
}

// suggestions returns word list entries within edit distance 1, or
// sharing a 4-letter prefix, of the given word.
func suggestions(word string, wordlist []string) []string {
	var out []string
	for _, candidate := range wordlist {
		if editDistanceOne(word, candidate) || prefixMatch(word, candidate) {
			out = append(out, candidate)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func prefixMatch(word, candidate string) bool {
	const n = 4
	return len(word) >= n && len(candidate) >= n && word[:n] == candidate[:n]
}

// editDistanceOne reports whether a and b differ by at most one
// substitution, insertion, or deletion.
func editDistanceOne(a, b string) bool {
	if a == b {
		return true
	}
	switch {
	case len(a) == len(b):
		diff := 0
		for i := range a {
			if a[i] != b[i] {
				diff++
				if diff > 1 {
					return false
				}
			}
		}
		return true
	case len(a)+1 == len(b):
		return oneInsertion(a, b)
	case len(b)+1 == len(a):
		return oneInsertion(b, a)
	default:
		return false
	}
}

// oneInsertion reports whether long is short with exactly one extra byte.
func oneInsertion(short, long string) bool {
	i, j := 0, 0
	skipped := false
	for i < len(short) && j < len(long) {
		if short[i] == long[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return true
}
