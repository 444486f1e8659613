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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-qrvault/pkg/metrics"
	"github.com/jeremyhahn/go-qrvault/pkg/qrwire"
	"github.com/jeremyhahn/go-qrvault/pkg/seal"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var (
	layerRealIn            string
	layerDecoyIn           string
	layerRealPasswordFile  string
	layerDecoyPasswordFile string
	layerOut               string
	layerStoreKey          string
)

// layerCmd creates a deniable two-password payload
var layerCmd = &cobra.Command{
	Use:   "layer",
	Short: "Create a layered payload with real and decoy contents",
	Long: `Layer seals two secrets under two different passwords into one
payload. Opening with either password yields that secret; the encoded
bytes carry no indication that a second secret exists or which record
it lives in.

The passwords come from --real-password-file and --decoy-password-file
or the QRVAULT_REAL_PASSWORD and QRVAULT_DECOY_PASSWORD environment
variables. Use two unrelated passwords.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		realSecret, err := readInput(layerRealIn)
		if err != nil {
			handleError(err)
		}
		defer types.Zeroize(realSecret)

		decoySecret, err := readInput(layerDecoyIn)
		if err != nil {
			handleError(err)
		}
		defer types.Zeroize(decoySecret)

		realPassword, err := readPassword(layerRealPasswordFile, "QRVAULT_REAL_PASSWORD")
		if err != nil {
			handleError(err)
		}
		defer realPassword.Clear()

		decoyPassword, err := readPassword(layerDecoyPasswordFile, "QRVAULT_DECOY_PASSWORD")
		if err != nil {
			handleError(err)
		}
		defer decoyPassword.Clear()

		start := time.Now()
		pair, err := seal.EncryptLayered(nil, realSecret, realPassword.Bytes(),
			decoySecret, decoyPassword.Bytes(), cfg.KDFParams())
		if err != nil {
			metrics.RecordOperation(metrics.OpSeal, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpSeal, metrics.StatusSuccess, time.Since(start).Seconds())

		raw, err := qrwire.Encode(qrwire.Layered{Pair: pair})
		if err != nil {
			handleError(err)
		}
		payload := encodePayloadText(raw)

		if layerStoreKey != "" {
			backend, err := newBackend(cfg)
			if err != nil {
				handleError(err)
			}
			defer backend.Close()
			if err := backend.Put("sealed/"+layerStoreKey, raw, nil); err != nil {
				handleError(err)
			}
		}

		if layerOut != "" {
			if err := writePayload(layerOut, payload); err != nil {
				handleError(err)
			}
			return
		}

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintPayload("layered", payload); err != nil {
			handleError(err)
		}
	},
}

func init() {
	layerCmd.Flags().StringVar(&layerRealIn, "real-in", "", "real secret input file")
	layerCmd.Flags().StringVar(&layerDecoyIn, "decoy-in", "", "decoy secret input file")
	layerCmd.Flags().StringVar(&layerRealPasswordFile, "real-password-file", "", "file containing the real password")
	layerCmd.Flags().StringVar(&layerDecoyPasswordFile, "decoy-password-file", "", "file containing the decoy password")
	layerCmd.Flags().StringVar(&layerOut, "out", "", "write payload to file instead of stdout")
	layerCmd.Flags().StringVar(&layerStoreKey, "store", "", "also store the payload under this label")
	_ = layerCmd.MarkFlagRequired("real-in")
	_ = layerCmd.MarkFlagRequired("decoy-in")
}
