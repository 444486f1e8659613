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

	"github.com/spf13/cobra"
)

var listPrefix string

// listCmd lists stored payload labels
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored payloads",
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions()
		cfg, err := loadConfig(opts)
		if err != nil {
			handleError(err)
		}

		backend, err := newBackend(cfg)
		if err != nil {
			handleError(err)
		}
		defer backend.Close()

		keys, err := backend.List(listPrefix)
		if err != nil {
			handleError(err)
		}

		printer := NewPrinter(opts.OutputFormat, os.Stdout)
		if err := printer.PrintKeyList(keys); err != nil {
			handleError(err)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "only list keys with this prefix")
}
