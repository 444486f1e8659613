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

var (
	// Global configuration
	globalOptions *Options
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qrvault",
	Short: "go-qrvault CLI - Offline secret backup via QR payloads",
	Long: `go-qrvault CLI encrypts secrets with password-derived keys and
produces compact checksummed payloads suitable for QR code rendering.

Secrets can be sealed under a single password, split into Shamir
threshold shares for distributed custody, or stored as a layered
record that opens to different contents under two passwords.

Payloads are printed and stored as base64 text; pipe them to any QR
renderer. Passwords are read from files or environment variables,
never from an interactive prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize global options
	globalOptions = NewOptions()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalOptions.ConfigFile, "config", "",
		"config file (default is $HOME/.qrvault/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalOptions.DataDir, "data-dir", "",
		"directory for stored payloads (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&globalOptions.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&globalOptions.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(reconstructCmd)
	rootCmd.AddCommand(layerCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
}

// getOptions returns the global CLI options
func getOptions() *Options {
	return globalOptions
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(globalOptions.OutputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}

// printVerbose logs a debug message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if globalOptions.Verbose {
		newLogger(globalOptions).Debugf(format, args...)
	}
}
