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

var (
	splitIn        string
	splitOutPrefix string
	splitStoreKey  string
	splitThreshold int
	splitTotal     int
	splitMnemonic  bool
)

// splitCmd splits a secret into Shamir threshold shares
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into Shamir threshold shares",
	Long: `Split divides a secret into N shares such that any K of them
recover it and any K-1 reveal nothing. Each share is printed as its
own base64 payload; give each custodian exactly one.

With --out-prefix the shares are written to <prefix>-1 .. <prefix>-N
instead of stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		secret, err := readInput(splitIn)
		if err != nil {
			handleError(err)
		}
		defer types.Zeroize(secret)

		if splitMnemonic {
			if err := mnemonic.Validate(string(secret)); err != nil {
				handleError(err)
			}
		}

		printVerbose("splitting %d bytes into %d shares, threshold %d",
			len(secret), splitTotal, splitThreshold)

		start := time.Now()
		shares, err := shamir.Split(nil, secret, splitThreshold, splitTotal)
		if err != nil {
			metrics.RecordOperation(metrics.OpSplit, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpSplit, metrics.StatusSuccess, time.Since(start).Seconds())

		payloads := make([]string, len(shares))
		raws := make([][]byte, len(shares))
		for i, share := range shares {
			raw, err := qrwire.Encode(qrwire.ShamirShare{Share: share})
			if err != nil {
				handleError(err)
			}
			raws[i] = raw
			payloads[i] = encodePayloadText(raw)
		}

		if splitStoreKey != "" {
			backend, err := newBackend(cfg)
			if err != nil {
				handleError(err)
			}
			defer backend.Close()
			for i, raw := range raws {
				key := fmt.Sprintf("shares/%s/%d", splitStoreKey, i+1)
				if err := backend.Put(key, raw, nil); err != nil {
					handleError(err)
				}
			}
			printVerbose("stored %d shares under shares/%s/", len(raws), splitStoreKey)
		}

		if splitOutPrefix != "" {
			for i, payload := range payloads {
				path := fmt.Sprintf("%s-%d", splitOutPrefix, i+1)
				if err := writePayload(path, payload); err != nil {
					handleError(err)
				}
			}
			return
		}

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintShares(splitThreshold, splitTotal, payloads); err != nil {
			handleError(err)
		}
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitIn, "in", "i", "-", "secret input file (- for stdin)")
	splitCmd.Flags().StringVar(&splitOutPrefix, "out-prefix", "", "write shares to <prefix>-1 .. <prefix>-N")
	splitCmd.Flags().StringVar(&splitStoreKey, "store", "", "also store shares under this label")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "k", 3, "shares required to reconstruct")
	splitCmd.Flags().IntVarP(&splitTotal, "shares", "n", 5, "total shares to create")
	splitCmd.Flags().BoolVar(&splitMnemonic, "mnemonic", false, "validate the input as a BIP39 seed phrase")
}
