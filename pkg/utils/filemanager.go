// =============================================================================
// Invoice Generator - File Manager Utility
// =============================================================================
//
// This module provides the file-layout utilities for the pipeline:
//   - Per-invoice folder naming and creation
//   - Status record writing (one per invoice, two outcome lines)
//   - Run summary naming (timestamp + run id) and writing
//
// OUTPUT LAYOUT:
//   <output_root>/<CLIENT_TYPE>/FATURA_<doc>/fatura_<doc>.xlsx
//   <output_root>/<CLIENT_TYPE>/FATURA_<doc>/fatura_<doc>.pdf   (when exported)
//   <output_root>/<CLIENT_TYPE>/FATURA_<doc>/status.txt
//   <output_root>/run_<timestamp>_<id>.txt
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// INVOICE FOLDERS
// =============================================================================

// InvoiceFolder returns the per-invoice output directory for a client type
// and document id.
func InvoiceFolder(outputRoot, clientType, document string) string {
	return filepath.Join(outputRoot, clientType, "FATURA_"+document)
}

// InvoiceFile returns the path of the filled spreadsheet inside an invoice
// folder.
func InvoiceFile(folder, document string) string {
	return filepath.Join(folder, fmt.Sprintf("fatura_%s.xlsx", document))
}

// InvoicePDF returns the path of the exported PDF inside an invoice folder.
// The base name must match the spreadsheet's so the PDF converter lands on
// the expected path.
func InvoicePDF(folder, document string) string {
	return filepath.Join(folder, fmt.Sprintf("fatura_%s.pdf", document))
}

// EnsureDir creates a directory and all missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// STATUS RECORDS
// =============================================================================

// WriteStatus writes the per-invoice status record: one line per recorded
// outcome, newline-terminated.
func WriteStatus(folder string, lines []string) error {
	content := strings.Join(lines, "\n") + "\n"
	path := filepath.Join(folder, "status.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write status file %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// NewRunID returns a short unique identifier for one pipeline run.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// RunSummaryPath returns the path of the run summary file inside the output
// root, named with the run timestamp and id.
func RunSummaryPath(outputRoot, runID string, startedAt time.Time) string {
	name := fmt.Sprintf("run_%s_%s.txt", startedAt.Format("20060102_150405"), runID)
	return filepath.Join(outputRoot, name)
}

// WriteRunSummary persists the run summary text, creating the output root if
// needed.
func WriteRunSummary(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write run summary %s: %w", path, err)
	}
	return nil
}
