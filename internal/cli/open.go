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
	"github.com/jeremyhahn/go-qrvault/pkg/qrwire"
	"github.com/jeremyhahn/go-qrvault/pkg/seal"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var (
	openIn           string
	openPasswordFile string
	openStoreKey     string
)

// openCmd decrypts a sealed or layered payload
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Decrypt a QR payload",
	Long: `Open decodes a base64 payload and decrypts it with the given
password. Layered payloads open transparently: whichever of the two
records the password unlocks is printed, and nothing distinguishes
the cases.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		password, err := readPassword(openPasswordFile, "QRVAULT_PASSWORD")
		if err != nil {
			handleError(err)
		}
		defer password.Clear()

		var record qrwire.Record
		if openStoreKey != "" {
			backend, err := newBackend(cfg)
			if err != nil {
				handleError(err)
			}
			defer backend.Close()
			raw, err := backend.Get(openStoreKey)
			if err != nil {
				handleError(err)
			}
			record, err = qrwire.Decode(raw)
			if err != nil {
				handleError(err)
			}
		} else {
			record, err = readPayload(openIn)
			if err != nil {
				handleError(err)
			}
		}

		start := time.Now()
		var secret []byte
		switch r := record.(type) {
		case qrwire.Single:
			secret, err = seal.Decrypt(r.Sealed, password.Bytes())
		case qrwire.Layered:
			secret, err = seal.OpenLayered(r.Pair, password.Bytes())
		case qrwire.ShamirShare:
			err = fmt.Errorf("%w: payload is a Shamir share, use reconstruct", types.ErrInvalidInput)
		default:
			err = fmt.Errorf("%w: unsupported payload", types.ErrInvalidInput)
		}
		if err != nil {
			metrics.RecordOperation(metrics.OpOpen, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpOpen, metrics.StatusSuccess, time.Since(start).Seconds())
		defer types.Zeroize(secret)

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintSecret(secret); err != nil {
			handleError(err)
		}
	},
}

func init() {
	openCmd.Flags().StringVarP(&openIn, "in", "i", "-", "payload input file (- for stdin)")
	openCmd.Flags().StringVar(&openPasswordFile, "password-file", "", "file containing the password")
	openCmd.Flags().StringVar(&openStoreKey, "from-store", "", "read the payload from storage by label")
}
