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
	"github.com/jeremyhahn/go-qrvault/pkg/mnemonic"
	"github.com/jeremyhahn/go-qrvault/pkg/qrwire"
	"github.com/jeremyhahn/go-qrvault/pkg/seal"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var (
	sealIn           string
	sealOut          string
	sealPasswordFile string
	sealStoreKey     string
	sealMnemonic     bool
)

// sealCmd encrypts a secret under a single password
var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Encrypt a secret into a QR payload",
	Long: `Seal encrypts a secret with a password-derived key and prints the
encoded payload as base64 text ready for QR rendering.

The password is read from --password-file or the QRVAULT_PASSWORD
environment variable. With --mnemonic the input is validated against
the BIP39 word list before sealing.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		secret, err := readInput(sealIn)
		if err != nil {
			handleError(err)
		}
		defer types.Zeroize(secret)

		if sealMnemonic {
			if err := mnemonic.Validate(string(secret)); err != nil {
				handleError(err)
			}
		}

		password, err := readPassword(sealPasswordFile, "QRVAULT_PASSWORD")
		if err != nil {
			handleError(err)
		}
		defer password.Clear()

		params := cfg.KDFParams()
		printVerbose("sealing %d bytes with Argon2id (%d KiB, %d iterations)",
			len(secret), params.Memory, params.Iterations)

		start := time.Now()
		rec, err := seal.EncryptSuite(nil, cfg.CipherSuite(), secret, password.Bytes(), params)
		if err != nil {
			metrics.RecordOperation(metrics.OpSeal, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpSeal, metrics.StatusSuccess, time.Since(start).Seconds())

		raw, err := qrwire.Encode(qrwire.Single{Sealed: rec})
		if err != nil {
			handleError(err)
		}
		payload := encodePayloadText(raw)

		if sealStoreKey != "" {
			backend, err := newBackend(cfg)
			if err != nil {
				handleError(err)
			}
			defer backend.Close()
			if err := backend.Put("sealed/"+sealStoreKey, raw, nil); err != nil {
				handleError(err)
			}
			printVerbose("stored payload at sealed/%s", sealStoreKey)
		}

		if sealOut != "" {
			if err := writePayload(sealOut, payload); err != nil {
				handleError(err)
			}
			return
		}

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintPayload("sealed", payload); err != nil {
			handleError(err)
		}
	},
}

func init() {
	sealCmd.Flags().StringVarP(&sealIn, "in", "i", "-", "secret input file (- for stdin)")
	sealCmd.Flags().StringVar(&sealOut, "out", "", "write payload to file instead of stdout")
	sealCmd.Flags().StringVar(&sealPasswordFile, "password-file", "", "file containing the password")
	sealCmd.Flags().StringVar(&sealStoreKey, "store", "", "also store the payload under this label")
	sealCmd.Flags().BoolVar(&sealMnemonic, "mnemonic", false, "validate the input as a BIP39 seed phrase")
}
