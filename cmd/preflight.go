// =============================================================================
// Invoice Generator - Preflight Command
// =============================================================================
//
// This file defines the 'preflight' command, which runs the validation gate
// against the configured dataset and templates without producing any invoice.
// Useful for checking a new export before committing to a run.
//
// COMMAND USAGE:
//   invoicegen preflight
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/pipeline"
)

// preflightCmd represents the 'preflight' command.
var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Validate the dataset and templates without generating invoices",
	Long: `The preflight command runs every check the generate command would run
before writing anything: file and template existence, required columns,
client type values, group keys, numeric quality of the installment fields,
template sheets, and the invoice explosion guard.

On success it prints the precheck report; on failure it prints the first
failing check's message and exits non-zero.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreflight()
	},
}

func init() {
	rootCmd.AddCommand(preflightCmd)
}

// runPreflight loads the configuration and runs only the validation gate.
func runPreflight() error {
	settings, err := config.LoadSettings(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	runner := pipeline.New(settings, pipeline.NewLogger(verbose))

	report, _, err := runner.Preflight()
	if err != nil {
		return err
	}

	fmt.Printf("[PRECHECK] Rows: %d\n", report.Rows)
	fmt.Printf("[PRECHECK] Invoices: %d (PF=%d, PJ=%d)\n",
		report.InvoicesTotal, report.InvoicesPF, report.InvoicesPJ)
	fmt.Printf("[PRECHECK] Input: %s\n", report.InputPath)
	fmt.Printf("[PRECHECK] Template PF: %s\n", report.TemplatePF)
	fmt.Printf("[PRECHECK] Template PJ: %s\n", report.TemplatePJ)
	fmt.Printf("[PRECHECK] Output: %s\n", report.OutputRoot)

	return nil
}
