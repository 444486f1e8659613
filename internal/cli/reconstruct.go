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
	"github.com/jeremyhahn/go-qrvault/pkg/shamir"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

var reconstructStoreKey string

// reconstructCmd recovers a secret from Shamir share payloads
var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [share-file ...]",
	Short: "Recover a secret from Shamir share payloads",
	Long: `Reconstruct reads share payloads from the given files (or from
storage with --from-store), collects them until the threshold is
reached, and prints the recovered secret. Extra share files beyond
the threshold are ignored.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		var raws [][]byte
		switch {
		case reconstructStoreKey != "":
			backend, err := newBackend(cfg)
			if err != nil {
				handleError(err)
			}
			defer backend.Close()
			keys, err := backend.List("shares/" + reconstructStoreKey + "/")
			if err != nil {
				handleError(err)
			}
			for _, key := range keys {
				raw, err := backend.Get(key)
				if err != nil {
					handleError(err)
				}
				raws = append(raws, raw)
			}
		case len(args) > 0:
			for _, path := range args {
				text, err := readInput(path)
				if err != nil {
					handleError(err)
				}
				raws = append(raws, text)
			}
		default:
			handleError(fmt.Errorf("%w: no share payloads given", types.ErrInvalidInput))
		}

		session, err := shamir.NewSession()
		if err != nil {
			handleError(err)
		}
		printVerbose("session %s collecting shares", session.ID())

		start := time.Now()
		for i, raw := range raws {
			var record qrwire.Record
			var err error
			if reconstructStoreKey != "" {
				record, err = qrwire.Decode(raw)
			} else {
				record, err = decodePayloadText(string(raw))
			}
			if err != nil {
				handleError(err)
			}

			wire, ok := record.(qrwire.ShamirShare)
			if !ok {
				handleError(fmt.Errorf("%w: payload %d is not a Shamir share", types.ErrInvalidInput, i+1))
			}

			if err := session.AddShare(wire.Share); err != nil {
				metrics.RecordOperation(metrics.OpReconstruct, metrics.StatusError, time.Since(start).Seconds())
				handleError(err)
			}
			metrics.RecordShareCollected()
			if session.State() == shamir.StateReady {
				printVerbose("threshold reached after %d share(s)", i+1)
				break
			}
		}

		secret, err := session.Finalize()
		if err != nil {
			metrics.RecordOperation(metrics.OpReconstruct, metrics.StatusError, time.Since(start).Seconds())
			handleError(err)
		}
		metrics.RecordOperation(metrics.OpReconstruct, metrics.StatusSuccess, time.Since(start).Seconds())
		defer types.Zeroize(secret)

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintSecret(secret); err != nil {
			handleError(err)
		}
	},
}

func init() {
	reconstructCmd.Flags().StringVar(&reconstructStoreKey, "from-store", "", "read shares from storage by label")
}
