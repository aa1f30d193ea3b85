// =============================================================================
// Invoice Generator - Pipeline Orchestrator
// =============================================================================
//
// This module runs the whole flow for one dataset:
//   1. Read the input workbook
//   2. Normalize the dataset
//   3. Preflight checks (the gate - nothing is written before this passes)
//   4. Transform rows and group them by client
//   5. Per group: derive the header, assemble items, fill and save the
//      template, export to PDF, print, write the status record
//   6. Write the run summary
//
// CONCURRENCY:
//   Groups are processed sequentially. There is no cross-group dependency -
//   each group touches only its own invoice folder - so this is a
//   simplification, not a requirement.
//
// FAILURE SEMANTICS:
//   - Preflight failures and template open/fill/save failures are fatal: the
//     run stops and the error surfaces to the caller unmodified.
//   - An invalid client type mid-run is fatal too; it means the dataset
//     drifted after preflight.
//   - PDF export and print failures are recorded in the invoice's status
//     record and the run continues; the spreadsheet output is still good.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/dataset"
	"github.com/cardosorpa/invoice-generator/internal/export"
	"github.com/cardosorpa/invoice-generator/internal/invoice"
	"github.com/cardosorpa/invoice-generator/internal/preflight"
	"github.com/cardosorpa/invoice-generator/internal/template"
	"github.com/cardosorpa/invoice-generator/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result is the outcome of producing one invoice.
type Result struct {
	// Document is the client document id (the group key).
	Document string

	// ClientType is the client's PF/PJ classification.
	ClientType invoice.ClientType

	// OutputFile is the path of the filled spreadsheet.
	OutputFile string

	// PDFStatus and PrintStatus are the recorded collaborator outcomes,
	// exactly as written to the status record.
	PDFStatus   string
	PrintStatus string

	// Items is the number of line items written.
	Items int

	// DroppedItems is the number of rows beyond the item cap that produced
	// no line item.
	DroppedItems int
}

// Summary is the outcome of a whole run.
type Summary struct {
	// RunID identifies this run in logs and the summary file name.
	RunID string

	// Report is the preflight report the run started from.
	Report *preflight.Report

	// Results holds one entry per produced invoice, in processing order.
	Results []Result

	// StartedAt and Elapsed frame the run.
	StartedAt time.Time
	Elapsed   time.Duration
}

// Status markers written to the per-invoice status record.
const (
	statusPDFOK        = "PDF_OK"
	statusPDFSkipped   = "PDF_SKIPPED"
	statusPrintOK      = "PRINT_OK"
	statusPrintSkipped = "PRINT_SKIPPED"
)

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes the pipeline for one configuration.
type Runner struct {
	settings *config.Settings
	logger   Logger
}

// New creates a Runner.
func New(settings *config.Settings, logger Logger) *Runner {
	if logger == nil {
		logger = NewLogger(false)
	}
	return &Runner{settings: settings, logger: logger}
}

// Preflight reads and normalizes the input dataset and runs the validation
// gate, without producing any invoice. The returned dataset is the
// normalized one the checks ran against.
func (r *Runner) Preflight() (*preflight.Report, *dataset.Dataset, error) {
	ds, err := dataset.Read(r.settings.InputFile, r.settings.SheetInput)
	if err != nil {
		return nil, nil, err
	}
	r.logger.Debug("read %d rows from %s", len(ds.Rows), r.settings.InputFile)

	normalized := dataset.Normalize(ds, r.settings.GroupByColumn)
	r.logger.Debug("%d rows after normalization", len(normalized.Rows))

	report, err := preflight.Run(normalized, r.settings)
	if err != nil {
		return nil, nil, err
	}
	return report, normalized, nil
}

// Run executes the full pipeline and returns the run summary.
func (r *Runner) Run() (*Summary, error) {
	startedAt := time.Now()
	runID := utils.NewRunID()
	r.logger.Info("starting run %s", runID)

	report, normalized, err := r.Preflight()
	if err != nil {
		return nil, err
	}
	r.logger.Info("preflight passed: %d rows, %d invoices (PF=%d, PJ=%d)",
		report.Rows, report.InvoicesTotal, report.InvoicesPF, report.InvoicesPJ)

	rows := dataset.TransformAll(normalized, r.settings.ItemQtyColumn, r.settings.ItemUnitColumn)
	groups := dataset.GroupRows(rows, r.settings.GroupByColumn)

	summary := &Summary{
		RunID:     runID,
		Report:    report,
		StartedAt: startedAt,
	}

	for _, group := range groups {
		result, err := r.processGroup(group)
		if err != nil {
			r.logger.Error("✗ invoice %s: %v", group.Key, err)
			return nil, err
		}

		if result.DroppedItems > 0 {
			r.logger.Warn("invoice %s: %d rows beyond the %d item cap were dropped",
				result.Document, result.DroppedItems, r.settings.MaxItems)
		}
		r.logger.Info("✓ invoice %s (%s): %d items -> %s [%s, %s]",
			result.Document, result.ClientType, result.Items,
			result.OutputFile, result.PDFStatus, result.PrintStatus)

		summary.Results = append(summary.Results, result)
	}

	summary.Elapsed = time.Since(startedAt)

	summaryPath := utils.RunSummaryPath(r.settings.OutputDir, runID, startedAt)
	if err := utils.WriteRunSummary(summaryPath, summary.Text()); err != nil {
		// The invoices themselves are fine; losing the summary file is only
		// worth a warning.
		r.logger.Warn("failed to write run summary: %v", err)
	} else {
		r.logger.Info("run summary written to %s", summaryPath)
	}

	return summary, nil
}

// processGroup produces one invoice for a client group. A non-nil error is
// fatal to the run; export and print failures are folded into the result
// instead.
func (r *Runner) processGroup(group dataset.Group) (Result, error) {
	first := group.Rows[0].Record

	clientType, err := invoice.ParseClientType(first[r.settings.ClientTypeColumn])
	if err != nil {
		return Result{}, fmt.Errorf("invoice %s: %w", group.Key, err)
	}

	templatePath, _ := r.settings.TemplateForType(string(clientType))

	header := invoice.DeriveHeader(group, r.settings, time.Now())
	items, dropped := invoice.AssembleItems(group, r.settings, r.settings.MaxItems)

	folder := utils.InvoiceFolder(r.settings.OutputDir, string(clientType), group.Key)
	if err := utils.EnsureDir(folder); err != nil {
		return Result{}, err
	}
	outputFile := utils.InvoiceFile(folder, group.Key)

	filler, err := template.Open(templatePath, r.settings.SheetTemplate)
	if err != nil {
		return Result{}, err
	}
	defer filler.Close()

	if err := filler.Fill(header, items, r.settings); err != nil {
		return Result{}, err
	}
	if err := filler.Save(outputFile); err != nil {
		return Result{}, err
	}

	result := Result{
		Document:     group.Key,
		ClientType:   clientType,
		OutputFile:   outputFile,
		Items:        len(items),
		DroppedItems: dropped,
	}

	// PDF export: single attempt, failure recorded, run continues.
	if !r.settings.SkipPDFExport {
		pdfFile := utils.InvoicePDF(folder, group.Key)
		if err := export.ExportPDF(outputFile, pdfFile); err != nil {
			result.PDFStatus = fmt.Sprintf("PDF_FAIL: %v", err)
		} else {
			result.PDFStatus = statusPDFOK
		}
	} else {
		result.PDFStatus = statusPDFSkipped
	}

	// Printing: same isolation.
	if r.settings.PrintInvoices {
		if err := export.Print(outputFile); err != nil {
			result.PrintStatus = fmt.Sprintf("PRINT_FAIL: %v", err)
		} else {
			result.PrintStatus = statusPrintOK
		}
	} else {
		result.PrintStatus = statusPrintSkipped
	}

	if err := utils.WriteStatus(folder, []string{result.PDFStatus, result.PrintStatus}); err != nil {
		return Result{}, err
	}

	return result, nil
}

// =============================================================================
// SUMMARY RENDERING
// =============================================================================

// Text renders the run summary as written to the summary file.
func (s *Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s started %s\n", s.RunID, s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "rows: %d\n", s.Report.Rows)
	fmt.Fprintf(&b, "invoices: %d (PF=%d, PJ=%d)\n",
		s.Report.InvoicesTotal, s.Report.InvoicesPF, s.Report.InvoicesPJ)
	fmt.Fprintf(&b, "elapsed: %s\n\n", s.Elapsed.Round(time.Millisecond))

	for _, r := range s.Results {
		fmt.Fprintf(&b, "%s/FATURA_%s: %d items", r.ClientType, r.Document, r.Items)
		if r.DroppedItems > 0 {
			fmt.Fprintf(&b, " (%d dropped)", r.DroppedItems)
		}
		fmt.Fprintf(&b, " [%s, %s]\n", r.PDFStatus, r.PrintStatus)
	}

	return b.String()
}
