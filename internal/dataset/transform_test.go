package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain integer", "3", "3", true},
		{"dot decimal", "10.5", "10.5", true},
		{"comma decimal", "10,5", "10.5", true},
		{"thousands with comma decimal", "1.250,50", "1250.5", true},
		{"surrounding whitespace", " 7 ", "7", true},
		{"zero", "0", "0", true},
		{"negative comma decimal", "-2,5", "-2.5", true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"text", "abc", "", false},
		{"lone comma", ",", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDecimal(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// Normalizing an already-normalized value must be a no-op: re-parsing a
// parsed value's dot-decimal rendering yields the same number.
func TestParseDecimalIdempotent(t *testing.T) {
	for _, input := range []string{"10,5", "1.250,50", "3", "0,01", "42.75"} {
		first, ok := ParseDecimal(input)
		if !ok {
			t.Fatalf("ParseDecimal(%q) failed", input)
		}
		second, ok := ParseDecimal(first.String())
		if !ok {
			t.Fatalf("re-parse of %q (from %q) failed", first.String(), input)
		}
		if !first.Equal(second) {
			t.Errorf("re-parse of %q: %s != %s", input, second, first)
		}
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name      string
		record    Record
		wantQty   string
		wantUnit  string
		wantTotal string
	}{
		{
			name:      "comma decimals",
			record:    Record{"quantidade": "2", "valor_unitario": "10,50"},
			wantQty:   "2",
			wantUnit:  "10.5",
			wantTotal: "21",
		},
		{
			name:      "missing quantity coerces to zero",
			record:    Record{"valor_unitario": "5"},
			wantQty:   "0",
			wantUnit:  "5",
			wantTotal: "0",
		},
		{
			name:      "unparsable unit coerces to zero",
			record:    Record{"quantidade": "3", "valor_unitario": "n/a"},
			wantQty:   "3",
			wantUnit:  "0",
			wantTotal: "0",
		},
		{
			name:      "blank values coerce to zero",
			record:    Record{"quantidade": "  ", "valor_unitario": ""},
			wantQty:   "0",
			wantUnit:  "0",
			wantTotal: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Transform(tt.record, "quantidade", "valor_unitario")
			if row.Qty.String() != tt.wantQty {
				t.Errorf("Qty = %s, want %s", row.Qty, tt.wantQty)
			}
			if row.Unit.String() != tt.wantUnit {
				t.Errorf("Unit = %s, want %s", row.Unit, tt.wantUnit)
			}
			if row.LineTotal.String() != tt.wantTotal {
				t.Errorf("LineTotal = %s, want %s", row.LineTotal, tt.wantTotal)
			}
		})
	}
}

func TestGroupRows(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"documento_cliente", "quantidade", "valor_unitario"},
		Rows: []Record{
			{"documento_cliente": "222", "quantidade": "1", "valor_unitario": "5"},
			{"documento_cliente": "111", "quantidade": "2", "valor_unitario": "3"},
			{"documento_cliente": "222", "quantidade": "4", "valor_unitario": "1"},
		},
	}

	rows := TransformAll(ds, "quantidade", "valor_unitario")
	groups := GroupRows(rows, "documento_cliente")

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// Keys appear in first-seen order, not sorted.
	if groups[0].Key != "222" || groups[1].Key != "111" {
		t.Errorf("group order = [%s %s], want [222 111]", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Rows) != 2 || len(groups[1].Rows) != 1 {
		t.Errorf("group sizes = [%d %d], want [2 1]", len(groups[0].Rows), len(groups[1].Rows))
	}
	// Row order inside a group follows dataset order.
	if groups[0].Rows[0].Qty.String() != "1" || groups[0].Rows[1].Qty.String() != "4" {
		t.Errorf("rows within group 222 out of order")
	}
}
