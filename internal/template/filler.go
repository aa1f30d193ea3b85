// =============================================================================
// Invoice Generator - Template Filler
// =============================================================================
//
// This module populates a copy of a client-type template workbook with one
// invoice's header and line items, then persists it to the output path.
//
// MERGED-CELL HANDLING:
//   In the XLSX format only the top-left anchor of a merged range holds a
//   value; writes to any other cell of the range are lost. The filler builds
//   an index from every address inside a merged range to that range's anchor
//   once per opened document, and routes every write through it. This makes
//   the per-write cost a single map lookup instead of a scan over all merged
//   ranges.
//
// FILL SEQUENCE:
//   1. Write the header cells (document, name, date, total, month reference,
//      card number, monthly total).
//   2. Clear the full item window (max_items rows x 4 columns) so no stale
//      values survive from the template file on disk.
//   3. Write the line items into successive rows from the configured start
//      row.
//   4. Ensure the output directory exists and save the filled workbook.
//
// =============================================================================

package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/invoice"
)

// =============================================================================
// FILLER
// =============================================================================

// Filler is an open template workbook plus its merged-cell anchor index.
// Each invoice opens its own Filler; template files on disk are never
// modified in place.
type Filler struct {
	file  *excelize.File
	sheet string

	// anchors maps every address inside a merged range to the range's
	// top-left anchor address. Addresses outside any merged range are not
	// present in the map.
	anchors map[string]string
}

// Open opens a template workbook and prepares it for filling.
//
// PARAMETERS:
//   - path: The template file path.
//   - sheet: The sheet to fill.
//
// RETURNS:
//   - The prepared filler.
//   - An error if the file cannot be opened, or one naming the available
//     sheets when the requested sheet is absent.
func Open(path, sheet string) (*Filler, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", path, err)
	}

	found := false
	for _, name := range f.GetSheetList() {
		if name == sheet {
			found = true
			break
		}
	}
	if !found {
		available := strings.Join(f.GetSheetList(), ", ")
		f.Close()
		return nil, fmt.Errorf("sheet '%s' not found in template '%s' (available sheets: %s)",
			sheet, filepath.Base(path), available)
	}

	anchors, err := buildAnchorIndex(f, sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to index merged cells in %s: %w", filepath.Base(path), err)
	}

	return &Filler{file: f, sheet: sheet, anchors: anchors}, nil
}

// Close releases the underlying workbook.
func (fl *Filler) Close() error {
	return fl.file.Close()
}

// buildAnchorIndex enumerates the sheet's merged ranges once and maps every
// contained address to the range's anchor.
func buildAnchorIndex(f *excelize.File, sheet string) (map[string]string, error) {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	anchors := make(map[string]string)
	for _, rng := range merged {
		anchor := rng.GetStartAxis()
		startCol, startRow, err := excelize.CellNameToCoordinates(anchor)
		if err != nil {
			return nil, err
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(rng.GetEndAxis())
		if err != nil {
			return nil, err
		}

		for col := startCol; col <= endCol; col++ {
			for row := startRow; row <= endRow; row++ {
				name, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return nil, err
				}
				anchors[name] = anchor
			}
		}
	}
	return anchors, nil
}

// setCell writes a value at an address, redirecting to the merged-range
// anchor when the address lies inside a merged range.
func (fl *Filler) setCell(address string, value interface{}) error {
	address = strings.ToUpper(strings.TrimSpace(address))
	if anchor, ok := fl.anchors[address]; ok {
		address = anchor
	}
	return fl.file.SetCellValue(fl.sheet, address, value)
}

// =============================================================================
// FILLING
// =============================================================================

// Fill writes one invoice's header and items into the open template.
//
// The item window is cleared across all four item columns before any item is
// written, so re-filled templates never keep stale rows beyond what this run
// writes.
func (fl *Filler) Fill(header invoice.Header, items []invoice.LineItem, settings *config.Settings) error {
	// Header cells.
	headerCells := []struct {
		address string
		value   interface{}
	}{
		{settings.CellDoc, header.Document},
		{settings.CellName, header.Name},
		{settings.CellDate, header.IssueDate},
		{settings.CellTotal, header.Total.InexactFloat64()},
		{settings.CellMonthRef, header.MonthRef},
		{settings.CellCardNumber, header.CardNumber},
		{settings.CellMonthlySum, header.MonthlyTotal.InexactFloat64()},
	}
	for _, cell := range headerCells {
		if err := fl.setCell(cell.address, cell.value); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell.address, err)
		}
	}

	// Clear the item window before writing.
	itemColumns := []string{
		settings.ColItemDesc,
		settings.ColItemQty,
		settings.ColItemUnit,
		settings.ColItemTotal,
	}
	for i := 0; i < settings.MaxItems; i++ {
		row := settings.ItemsStartRow + i
		for _, col := range itemColumns {
			if err := fl.setCell(fmt.Sprintf("%s%d", col, row), nil); err != nil {
				return fmt.Errorf("failed to clear item cell %s%d: %w", col, row, err)
			}
		}
	}

	// Write the items, at most MaxItems of them.
	for i, item := range items {
		if i == settings.MaxItems {
			break
		}
		row := settings.ItemsStartRow + i

		writes := []struct {
			col   string
			value interface{}
		}{
			{settings.ColItemDesc, item.Description},
			{settings.ColItemQty, item.Quantity},
			{settings.ColItemUnit, item.UnitValue.InexactFloat64()},
			{settings.ColItemTotal, item.TotalValue.InexactFloat64()},
		}
		for _, w := range writes {
			if err := fl.setCell(fmt.Sprintf("%s%d", w.col, row), w.value); err != nil {
				return fmt.Errorf("failed to write item cell %s%d: %w", w.col, row, err)
			}
		}
	}

	return nil
}

// Save ensures the output directory exists and persists the filled workbook.
func (fl *Filler) Save(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := fl.file.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", outputPath, err)
	}
	return nil
}
