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

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-qrvault/pkg/mnemonic"
	"github.com/jeremyhahn/go-qrvault/pkg/shamir"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintPayload prints one encoded payload with its kind.
func (p *Printer) PrintPayload(kind, payload string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"kind":    kind,
			"payload": payload,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, payload)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShares prints the payloads of a threshold split.
func (p *Printer) PrintShares(threshold, total int, payloads []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"threshold": threshold,
			"total":     total,
			"shares":    payloads,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Split complete: any %d of %d shares recover the secret\n", threshold, total)
		for i, payload := range payloads {
			fmt.Fprintf(p.writer, "\nShare %d:\n%s\n", i+1, payload)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints recovered plaintext. The caller zeroes the
// original buffer; stdout is the intended sink here.
func (p *Printer) PrintSecret(secret []byte) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"secret": string(secret),
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, string(secret))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShareReport prints a share set validation report.
func (p *Printer) PrintShareReport(report *shamir.Report) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"count":         report.Count,
			"threshold":     report.Threshold,
			"total":         report.Total,
			"secret_length": report.SecretLength,
			"ready":         report.Ready,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Shares:        %d\n", report.Count)
		fmt.Fprintf(p.writer, "Threshold:     %d of %d\n", report.Threshold, report.Total)
		fmt.Fprintf(p.writer, "Secret length: %d bytes\n", report.SecretLength)
		if report.Ready {
			fmt.Fprintln(p.writer, "Status:        ready to reconstruct")
		} else {
			fmt.Fprintf(p.writer, "Status:        need %d more share(s)\n", report.Threshold-report.Count)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintPhraseReport prints a seed phrase inspection report.
func (p *Printer) PrintPhraseReport(report *mnemonic.Report) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"word_count":      report.WordCount,
			"standard_length": report.StandardLength,
			"invalid_words":   report.InvalidWords,
			"valid":           report.Valid(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Words: %d\n", report.WordCount)
		if !report.StandardLength {
			fmt.Fprintf(p.writer, "Warning: %d words is not a standard phrase length (12, 15, 18, 21, or 24)\n",
				report.WordCount)
		}
		for word, matches := range report.InvalidWords {
			fmt.Fprintf(p.writer, "Invalid word: %q", word)
			if len(matches) > 0 {
				fmt.Fprintf(p.writer, " (did you mean %s?)", strings.Join(matches, ", "))
			}
			fmt.Fprintln(p.writer)
		}
		if report.Valid() {
			fmt.Fprintln(p.writer, "Phrase OK")
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintKeyList prints stored payload keys.
func (p *Printer) PrintKeyList(keys []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"keys": keys,
		})
	case OutputFormatText:
		if len(keys) == 0 {
			fmt.Fprintln(p.writer, "No payloads stored")
			return nil
		}
		for _, key := range keys {
			fmt.Fprintf(p.writer, "  - %s\n", key)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"error": err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %s\n", err.Error())
		return nil
	}
}

// printJSON marshals and prints indented JSON
func (p *Printer) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(p.writer, string(data))
	return nil
}
