package dataset

import "testing"

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Documento_Cliente", "documento_cliente"},
		{"  VALOR_PARCELA  ", "valor_parcela"},
		{"nome_cliente", "nome_cliente"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.input); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	ds := &Dataset{
		SourceFile: "dados.xlsx",
		Columns:    []string{" Documento_Cliente ", "Nome_Cliente"},
		Rows: []Record{
			{" Documento_Cliente ": "  111  ", "Nome_Cliente": "Ana"},
			{" Documento_Cliente ": "", "Nome_Cliente": ""},        // all empty
			{" Documento_Cliente ": "   ", "Nome_Cliente": "Beto"}, // no group key
			{" Documento_Cliente ": "222", "Nome_Cliente": "Caio"},
		},
	}

	out := Normalize(ds, "documento_cliente")

	if out.SourceFile != "dados.xlsx" {
		t.Errorf("SourceFile = %q, want dados.xlsx", out.SourceFile)
	}
	wantCols := []string{"documento_cliente", "nome_cliente"}
	if len(out.Columns) != len(wantCols) {
		t.Fatalf("got %d columns, want %d", len(out.Columns), len(wantCols))
	}
	for i, want := range wantCols {
		if out.Columns[i] != want {
			t.Errorf("Columns[%d] = %q, want %q", i, out.Columns[i], want)
		}
	}

	// The all-empty row and the row without a group key are dropped.
	if len(out.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(out.Rows))
	}
	// The surviving group key is trimmed.
	if out.Rows[0]["documento_cliente"] != "111" {
		t.Errorf("Rows[0] key = %q, want 111", out.Rows[0]["documento_cliente"])
	}
	if out.Rows[1]["nome_cliente"] != "Caio" {
		t.Errorf("Rows[1] name = %q, want Caio", out.Rows[1]["nome_cliente"])
	}

	// The input dataset is untouched.
	if ds.Columns[0] != " Documento_Cliente " || len(ds.Rows) != 4 {
		t.Error("Normalize modified its input")
	}
}

func TestHasColumn(t *testing.T) {
	ds := &Dataset{Columns: []string{"a", "b"}}
	if !ds.HasColumn("a") || ds.HasColumn("c") {
		t.Error("HasColumn lookup wrong")
	}
}
