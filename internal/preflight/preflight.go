// =============================================================================
// Invoice Generator - Preflight Validator
// =============================================================================
//
// Preflight is the gate in front of the pipeline: it validates the
// environment, the configuration targets, and the dataset BEFORE any invoice
// document is opened for writing. Each check fails fast with its own error
// class and a message carrying the offending path, value set, or count, so a
// failing run is actionable without opening the data.
//
// CHECKS, IN ORDER:
//    1. Input dataset file exists
//    2. Both client-type templates exist
//    3. Output root directory can be created
//    4. Dataset is non-empty
//    5. All required columns are present (missing ones reported as a set)
//    6. Client-type values are a subset of {PF, PJ} (empties tolerated here)
//    7. No row has an empty group key
//    8. Installment value and count parse as numbers on every row
//    9. Installment count >= 1 and installment value >= 0 on every row
//   10. Both templates contain the configured template sheet
//   11. Distinct group keys <= the explosion guard limit
//
// On success a PreflightReport is returned with the row count and the
// per-type invoice counts, precomputed here so the rest of the pipeline never
// re-derives them.
//
// ERROR HANDLING:
//   Each check class has a sentinel error, wrapped in a CheckError carrying
//   the human-readable details. Callers can errors.Is against the sentinel
//   and still print the full message. The first failing check aborts; no
//   partial report is produced.
//
// =============================================================================

package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/dataset"
)

// decimalOne is the lower bound for installment counts.
var decimalOne = decimal.NewFromInt(1)

// =============================================================================
// ERROR CLASSES
// =============================================================================

// Sentinel errors, one per check class. They let callers and tests branch on
// the failure class without string matching.
var (
	ErrInputNotFound        = errors.New("input file not found")
	ErrTemplateNotFound     = errors.New("template file not found")
	ErrOutputDir            = errors.New("output directory cannot be created")
	ErrEmptyDataset         = errors.New("input dataset has no rows")
	ErrMissingColumns       = errors.New("required columns missing")
	ErrInvalidClientTypes   = errors.New("invalid client type values")
	ErrEmptyGroupKeys       = errors.New("rows with empty group key")
	ErrNonNumeric           = errors.New("non-numeric values")
	ErrValueOutOfRange      = errors.New("numeric value out of range")
	ErrTemplateSheetMissing = errors.New("template sheet missing")
	ErrTooManyInvoices      = errors.New("invoice count exceeds limit")
)

// CheckError wraps a sentinel error with the human-readable details of the
// specific failure.
type CheckError struct {
	Err     error
	Details string
}

func (e *CheckError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// fail builds a CheckError for a check class.
func fail(sentinel error, format string, args ...interface{}) error {
	return &CheckError{Err: sentinel, Details: fmt.Sprintf(format, args...)}
}

// =============================================================================
// REPORT
// =============================================================================

// Report summarizes a dataset that passed every check. It is produced once,
// surfaced to the caller for logging, and never mutated.
type Report struct {
	// InputPath is the resolved path of the input dataset.
	InputPath string

	// TemplatePF and TemplatePJ are the resolved template paths.
	TemplatePF string
	TemplatePJ string

	// OutputRoot is the resolved output root directory.
	OutputRoot string

	// Rows is the number of data rows after normalization.
	Rows int

	// InvoicesTotal is the number of distinct group keys, i.e. the number of
	// invoices the run will produce.
	InvoicesTotal int

	// InvoicesPF and InvoicesPJ are the distinct group keys restricted to
	// rows of each client type.
	InvoicesPF int
	InvoicesPJ int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Run executes every preflight check against a normalized dataset and the
// configured environment.
//
// PARAMETERS:
//   - ds: The normalized dataset (canonical column names).
//   - settings: The resolved application settings.
//
// RETURNS:
//   - The report with precomputed counts, when every check passes.
//   - The first failing check's error otherwise; the caller treats it as
//     fatal and produces no output.
func Run(ds *dataset.Dataset, settings *config.Settings) (*Report, error) {
	// ===== Check 1: input file exists =====
	inputPath := resolve(settings.InputFile)
	if _, err := os.Stat(settings.InputFile); err != nil {
		return nil, fail(ErrInputNotFound, "%s", inputPath)
	}

	// ===== Check 2: both templates exist =====
	templatePF := resolve(settings.TemplatePF)
	if _, err := os.Stat(settings.TemplatePF); err != nil {
		return nil, fail(ErrTemplateNotFound, "PF template %s", templatePF)
	}
	templatePJ := resolve(settings.TemplatePJ)
	if _, err := os.Stat(settings.TemplatePJ); err != nil {
		return nil, fail(ErrTemplateNotFound, "PJ template %s", templatePJ)
	}

	// ===== Check 3: output root can be created =====
	outputRoot := resolve(settings.OutputDir)
	if err := os.MkdirAll(settings.OutputDir, 0755); err != nil {
		return nil, fail(ErrOutputDir, "%s: %v", outputRoot, err)
	}

	// ===== Check 4: dataset is non-empty =====
	if len(ds.Rows) == 0 {
		return nil, fail(ErrEmptyDataset, "input file %s has no rows to process", inputPath)
	}

	// ===== Check 5: required columns present =====
	if err := checkRequiredColumns(ds, settings); err != nil {
		return nil, err
	}

	// ===== Check 6: client types are a subset of {PF, PJ} =====
	if err := checkClientTypes(ds, settings.ClientTypeColumn); err != nil {
		return nil, err
	}

	// ===== Check 7: no empty group keys =====
	if err := checkGroupKeys(ds, settings.GroupByColumn); err != nil {
		return nil, err
	}

	// ===== Checks 8 and 9: numeric quality of installment fields =====
	if err := checkNumericColumns(ds, settings); err != nil {
		return nil, err
	}

	// ===== Check 10: template sheet exists in both templates =====
	for _, tpl := range []struct {
		label string
		path  string
	}{
		{"PF", settings.TemplatePF},
		{"PJ", settings.TemplatePJ},
	} {
		if err := checkTemplateSheet(tpl.path, tpl.label, settings.SheetTemplate); err != nil {
			return nil, err
		}
	}

	// ===== Check 11 and counts: distinct group keys =====
	total, pf, pj := countInvoices(ds, settings.GroupByColumn, settings.ClientTypeColumn)
	if total > settings.MaxInvoices {
		return nil, fail(ErrTooManyInvoices,
			"%d distinct values of '%s' exceed the limit of %d; check the grouping column and the input file",
			total, settings.GroupByColumn, settings.MaxInvoices)
	}

	return &Report{
		InputPath:     inputPath,
		TemplatePF:    templatePF,
		TemplatePJ:    templatePJ,
		OutputRoot:    outputRoot,
		Rows:          len(ds.Rows),
		InvoicesTotal: total,
		InvoicesPF:    pf,
		InvoicesPJ:    pj,
	}, nil
}

// =============================================================================
// INDIVIDUAL CHECKS
// =============================================================================

// checkRequiredColumns verifies that every column the flow reads is present
// after normalization. All missing columns are reported together.
func checkRequiredColumns(ds *dataset.Dataset, settings *config.Settings) error {
	required := []string{
		settings.GroupByColumn,
		settings.ClientTypeColumn,
		settings.ClientNameColumn,
		settings.MonthRefColumn,
		settings.CardNumberColumn,
		settings.EstablishmentColumn,
		settings.PurchaseValueColumn,
		settings.InstallmentCountColumn,
		settings.InstallmentValueColumn,
	}

	var missing []string
	for _, col := range required {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fail(ErrMissingColumns, "%s", strings.Join(missing, ", "))
	}
	return nil
}

// checkClientTypes collects the distinct normalized client-type values that
// are neither PF, PJ, nor empty. Empty values are tolerated here; a row that
// actually needs its client type fails later, per row.
func checkClientTypes(ds *dataset.Dataset, column string) error {
	bad := make(map[string]struct{})
	for _, row := range ds.Rows {
		value := strings.ToUpper(strings.TrimSpace(row[column]))
		if value == "" || value == "PF" || value == "PJ" {
			continue
		}
		bad[value] = struct{}{}
	}
	if len(bad) > 0 {
		values := make([]string, 0, len(bad))
		for v := range bad {
			values = append(values, v)
		}
		sort.Strings(values)
		return fail(ErrInvalidClientTypes, "column '%s' contains %s (accepted: PF, PJ)",
			column, strings.Join(values, ", "))
	}
	return nil
}

// checkGroupKeys counts rows whose group key is empty after trimming.
// Normalization removes such rows, so this only fires when preflight is run
// against a dataset that skipped normalization.
func checkGroupKeys(ds *dataset.Dataset, column string) error {
	empty := 0
	for _, row := range ds.Rows {
		if strings.TrimSpace(row[column]) == "" {
			empty++
		}
	}
	if empty > 0 {
		return fail(ErrEmptyGroupKeys, "%d rows have no '%s' value", empty, column)
	}
	return nil
}

// checkNumericColumns verifies the strict numeric rules on the installment
// fields: both columns must parse on every row (comma decimal separator
// allowed), the count must be at least 1 and the value must not be negative.
// Parse failures are reported as a count per column, not as a row list.
func checkNumericColumns(ds *dataset.Dataset, settings *config.Settings) error {
	badValues, badCounts := 0, 0
	countBelowOne, valueNegative := 0, 0

	for _, row := range ds.Rows {
		value, ok := dataset.ParseDecimal(row[settings.InstallmentValueColumn])
		if !ok {
			badValues++
		} else if value.IsNegative() {
			valueNegative++
		}

		count, ok := dataset.ParseDecimal(row[settings.InstallmentCountColumn])
		if !ok {
			badCounts++
		} else if count.LessThan(decimalOne) {
			countBelowOne++
		}
	}

	if badValues > 0 {
		return fail(ErrNonNumeric, "%d rows in column '%s' are not numeric",
			badValues, settings.InstallmentValueColumn)
	}
	if badCounts > 0 {
		return fail(ErrNonNumeric, "%d rows in column '%s' are not numeric",
			badCounts, settings.InstallmentCountColumn)
	}
	if countBelowOne > 0 {
		return fail(ErrValueOutOfRange, "%d rows have '%s' less than 1",
			countBelowOne, settings.InstallmentCountColumn)
	}
	if valueNegative > 0 {
		return fail(ErrValueOutOfRange, "%d rows have negative '%s'",
			valueNegative, settings.InstallmentValueColumn)
	}
	return nil
}

// checkTemplateSheet opens a template workbook and verifies the configured
// sheet exists, naming the available sheets otherwise.
func checkTemplateSheet(path, label, sheet string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fail(ErrTemplateNotFound, "%s template %s cannot be opened: %v", label, resolve(path), err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if name == sheet {
			return nil
		}
	}
	return fail(ErrTemplateSheetMissing,
		"%s template '%s' has no sheet '%s' (available sheets: %s)",
		label, filepath.Base(path), sheet, strings.Join(f.GetSheetList(), ", "))
}

// countInvoices computes the distinct group keys overall and per client type.
func countInvoices(ds *dataset.Dataset, groupColumn, typeColumn string) (total, pf, pj int) {
	all := make(map[string]struct{})
	pfKeys := make(map[string]struct{})
	pjKeys := make(map[string]struct{})

	for _, row := range ds.Rows {
		key := strings.TrimSpace(row[groupColumn])
		all[key] = struct{}{}

		switch strings.ToUpper(strings.TrimSpace(row[typeColumn])) {
		case "PF":
			pfKeys[key] = struct{}{}
		case "PJ":
			pjKeys[key] = struct{}{}
		}
	}
	return len(all), len(pfKeys), len(pjKeys)
}

// =============================================================================
// HELPERS
// =============================================================================

// resolve returns the absolute form of a path for error messages and the
// report, falling back to the raw path when resolution fails.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
