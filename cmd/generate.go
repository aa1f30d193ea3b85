// =============================================================================
// Invoice Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full pipeline:
// read the dataset, validate it, and produce one invoice per client.
//
// COMMAND USAGE:
//   invoicegen generate [flags]
//
// FLAGS:
//   --no-pdf    : Skip the PDF export step for this run
//   --no-print  : Skip the print step for this run
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read and normalize the input dataset
//   3. Preflight checks (before anything is written)
//   4. For each client group:
//      a. Derive the invoice header
//      b. Assemble the line items
//      c. Fill and save the client-type template
//      d. Export to PDF / print, recording each outcome
//   5. Write the run summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/pipeline"
)

// noPDF disables PDF export for this run, overriding the configuration.
var noPDF bool

// noPrint disables printing for this run, overriding the configuration.
var noPrint bool

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one invoice per client from the input dataset",
	Long: `The generate command reads the configured transaction export, validates it,
groups rows by client document, and fills the PF or PJ invoice template once
per client.

Nothing is written before the preflight checks pass: a failing check stops
the run with zero invoices produced. After the gate, a PDF export or print
failure is recorded in the invoice's status.txt and processing continues;
the filled spreadsheet for that client is still produced.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(
		&noPDF,
		"no-pdf",
		false,
		"Skip PDF export for this run",
	)

	generateCmd.Flags().BoolVar(
		&noPrint,
		"no-print",
		false,
		"Skip printing for this run",
	)
}

// runGenerate loads the configuration and executes the pipeline.
func runGenerate() error {
	startTime := time.Now()

	fmt.Println("=== Invoice Generator ===")
	fmt.Println("Loading configuration...")

	settings, err := config.LoadSettings(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if noPDF {
		settings.SkipPDFExport = true
	}
	if noPrint {
		settings.PrintInvoices = false
	}

	runner := pipeline.New(settings, pipeline.NewLogger(verbose))

	summary, err := runner.Run()
	if err != nil {
		return err
	}

	// =========================================================================
	// PRINT SUMMARY
	// =========================================================================

	okPDF, okPrint := 0, 0
	for _, r := range summary.Results {
		if r.PDFStatus == "PDF_OK" {
			okPDF++
		}
		if r.PrintStatus == "PRINT_OK" {
			okPrint++
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Rows processed:  %d\n", summary.Report.Rows)
	fmt.Printf("Invoices:        %d (PF=%d, PJ=%d)\n",
		summary.Report.InvoicesTotal, summary.Report.InvoicesPF, summary.Report.InvoicesPJ)
	fmt.Printf("PDF exports OK:  %d\n", okPDF)
	fmt.Printf("Prints OK:       %d\n", okPrint)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	return nil
}
