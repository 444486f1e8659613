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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-qrvault/pkg/metrics"
	"github.com/jeremyhahn/go-qrvault/pkg/mnemonic"
	"github.com/jeremyhahn/go-qrvault/pkg/qrwire"
	"github.com/jeremyhahn/go-qrvault/pkg/shamir"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// validateCmd groups consistency checks
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate shares or seed phrases without recovering anything",
}

// validateSharesCmd checks a set of share payloads for consistency
var validateSharesCmd = &cobra.Command{
	Use:   "shares <share-file ...>",
	Short: "Check share payloads for consistency",
	Long: `Validate shares decodes the given share payloads and reports
whether they belong to the same split and whether enough are present
to reconstruct. The secret is never recovered.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()

		shares := make([]shamir.Share, 0, len(args))
		for i, path := range args {
			record, err := readPayload(path)
			if err != nil {
				handleError(err)
			}
			wire, ok := record.(qrwire.ShamirShare)
			if !ok {
				handleError(fmt.Errorf("%w: payload %d is not a Shamir share", types.ErrInvalidInput, i+1))
			}
			shares = append(shares, wire.Share)
		}

		start := time.Now()
		report, err := shamir.Validate(shares)
		if err != nil {
			metrics.RecordOperation(metrics.OpValidate, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpValidate, metrics.StatusSuccess, time.Since(start).Seconds())

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintShareReport(report); err != nil {
			handleError(err)
		}
	},
}

var validatePhraseIn string

// validatePhraseCmd inspects a BIP39 seed phrase
var validatePhraseCmd = &cobra.Command{
	Use:   "phrase",
	Short: "Inspect a BIP39 seed phrase for transcription errors",
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()

		phrase, err := readInput(validatePhraseIn)
		if err != nil {
			handleError(err)
		}
		defer types.Zeroize(phrase)

		report, err := mnemonic.Inspect(string(phrase))
		if err != nil {
			handleError(err)
		}

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintPhraseReport(report); err != nil {
			handleError(err)
		}
	},
}

func init() {
	validatePhraseCmd.Flags().StringVarP(&validatePhraseIn, "in", "i", "-", "phrase input file (- for stdin)")
	validateCmd.AddCommand(validateSharesCmd)
	validateCmd.AddCommand(validatePhraseCmd)
}
