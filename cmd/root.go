// =============================================================================
// Invoice Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (invoicegen)
//   ├── generateCmd (invoicegen generate)
//   ├── preflightCmd (invoicegen preflight)
//   └── versionCmd (invoicegen version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "invoicegen",

	Short: "Invoice Generator - Turn billing transaction exports into per-client invoices",

	Long: `Invoice Generator is a CLI tool that reads a spreadsheet export of billing
transactions, validates the dataset, groups rows by client document, and
produces one filled invoice spreadsheet per client from a PF- or PJ-specific
XLSX template. Each invoice can additionally be exported to PDF and sent to
the default printer.

Key Features:
  - Preflight validation gate: nothing is written until the dataset passes
  - Per-client-type templates with merged-cell aware filling
  - Comma-decimal numeric handling throughout
  - Per-invoice status records for PDF export and print outcomes

Example Usage:
  invoicegen generate                    # Run the full pipeline
  invoicegen generate --config ./my.yaml # Use a custom configuration file
  invoicegen preflight                   # Validate the dataset without generating`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
