package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a single-sheet test workbook with the given rows.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados.xlsx")
	writeWorkbook(t, path, "Dados", [][]interface{}{
		{"documento_cliente", "nome_cliente", "valor_parcela"},
		{"111", "Ana", "10,50"},
		{"222", "Beto"}, // short row: trailing cell missing
	})

	ds, err := Read(path, "Dados")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if ds.SourceFile != path {
		t.Errorf("SourceFile = %q, want %q", ds.SourceFile, path)
	}
	if len(ds.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(ds.Columns))
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(ds.Rows))
	}
	if ds.Rows[0]["valor_parcela"] != "10,50" {
		t.Errorf("Rows[0][valor_parcela] = %q, want 10,50", ds.Rows[0]["valor_parcela"])
	}
	// Short rows are padded so every record carries every column.
	if v, ok := ds.Rows[1]["valor_parcela"]; !ok || v != "" {
		t.Errorf("short row padding: got (%q, %v), want (\"\", true)", v, ok)
	}
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := Read(path, "Dados")
	if err == nil {
		t.Fatal("Read() should fail for a missing file")
	}
	// The message names the resolved path so the operator can see exactly
	// what was looked for.
	if !strings.Contains(err.Error(), "missing.xlsx") {
		t.Errorf("error should name the input file, got %v", err)
	}
}

func TestReadMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados.xlsx")
	writeWorkbook(t, path, "Planilha1", [][]interface{}{
		{"documento_cliente"},
	})

	_, err := Read(path, "Dados")
	if err == nil {
		t.Fatal("Read() should fail for a missing sheet")
	}
	if !strings.Contains(err.Error(), "Planilha1") {
		t.Errorf("error should list available sheets, got %v", err)
	}
}

func TestReadEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados.xlsx")
	writeWorkbook(t, path, "Dados", nil)

	ds, err := Read(path, "Dados")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(ds.Columns) != 0 || len(ds.Rows) != 0 {
		t.Errorf("empty sheet should yield an empty dataset, got %d cols / %d rows",
			len(ds.Columns), len(ds.Rows))
	}
}
