// =============================================================================
// Invoice Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Invoice Generator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   invoicegen generate      - Generate one invoice per client from the dataset
//   invoicegen preflight     - Validate the dataset without generating invoices
//   invoicegen version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline logic (not for external import)
//   - pkg/           : Shared utilities
//   - templates/     : PF and PJ invoice template workbooks
//
// =============================================================================

package main

import (
	"github.com/cardosorpa/invoice-generator/cmd"
)

func main() {
	cmd.Execute()
}
