// =============================================================================
// Invoice Generator - Dataset Reader
// =============================================================================
//
// This module reads the raw transaction export from an XLSX workbook. The
// first row of the configured input sheet is treated as the header row; every
// following row becomes a Record mapping column name to the cell's text value.
//
// All values are read as text. Numeric interpretation happens later, in the
// row transformer and in preflight, each with its own rules.
//
// =============================================================================

package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Record is one input row as a mapping from column name to text value.
type Record map[string]string

// Dataset is an ordered sequence of records read from one worksheet.
type Dataset struct {
	// Columns are the column names, in sheet order.
	Columns []string

	// Rows are the data rows, in sheet order.
	Rows []Record

	// SourceFile is the path the dataset was read from.
	SourceFile string
}

// HasColumn reports whether the dataset carries the given column name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// =============================================================================
// READER
// =============================================================================

// Read loads the input workbook and returns its rows as a Dataset.
//
// PARAMETERS:
//   - path: The path to the input XLSX file.
//   - sheet: The name of the worksheet holding the data.
//
// RETURNS:
//   - The dataset with raw (not yet normalized) column names.
//   - An error naming the resolved path if the file cannot be opened, or
//     listing the available sheets if the worksheet is missing.
func Read(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		return nil, fmt.Errorf("failed to open input file %s: %w", abs, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet '%s' not found in %s (available sheets: %s)",
			sheet, filepath.Base(path), strings.Join(f.GetSheetList(), ", "))
	}

	ds := &Dataset{SourceFile: path}
	if len(rows) == 0 {
		return ds, nil
	}

	// First row is the header row.
	ds.Columns = append(ds.Columns, rows[0]...)

	for _, row := range rows[1:] {
		record := make(Record, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(row) {
				record[col] = row[i]
			} else {
				// excelize trims trailing empty cells from each row.
				record[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, record)
	}

	return ds, nil
}
