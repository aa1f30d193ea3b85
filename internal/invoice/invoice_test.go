package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/dataset"
)

func TestParseClientType(t *testing.T) {
	tests := []struct {
		input   string
		want    ClientType
		wantErr bool
	}{
		{"PF", ClientTypePF, false},
		{"PJ", ClientTypePJ, false},
		{" pf ", ClientTypePF, false},
		{"pj", ClientTypePJ, false},
		{"XX", "", true},
		{"", "", true},
		{"PFJ", "", true},
	}

	for _, tt := range tests {
		got, err := ParseClientType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClientType(%q) should fail", tt.input)
			} else if !errors.Is(err, ErrInvalidClientType) {
				t.Errorf("ParseClientType(%q) error = %v, want ErrInvalidClientType", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClientType(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClientType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// makeGroup builds a transformed group from raw records using the default
// column names.
func makeGroup(t *testing.T, key string, records []dataset.Record) dataset.Group {
	t.Helper()
	settings := config.DefaultSettings()
	rows := make([]dataset.TransformedRow, len(records))
	for i, rec := range records {
		rec[settings.GroupByColumn] = key
		rows[i] = dataset.Transform(rec, settings.ItemQtyColumn, settings.ItemUnitColumn)
	}
	return dataset.Group{Key: key, Rows: rows}
}

func TestDeriveHeaderMonthlySumPresent(t *testing.T) {
	settings := config.DefaultSettings()
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	group := makeGroup(t, "12345678900", []dataset.Record{
		{
			"nome_cliente":      "Ana Souza",
			"mes_fatura":        "03/2025",
			"numero_cartao":     "**** 1234",
			"soma_total_mensal": "1.250,50",
			"quantidade":        "2",
			"valor_unitario":    "10",
		},
		{
			// Only the first row's monthly sum counts.
			"soma_total_mensal": "999",
			"quantidade":        "1",
			"valor_unitario":    "1",
		},
	})

	h := DeriveHeader(group, settings, now)

	if h.Document != "12345678900" {
		t.Errorf("Document = %q", h.Document)
	}
	if h.Name != "Ana Souza" {
		t.Errorf("Name = %q", h.Name)
	}
	if h.IssueDate != "15/03/2025" {
		t.Errorf("IssueDate = %q, want 15/03/2025", h.IssueDate)
	}
	if h.MonthRef != "03/2025" {
		t.Errorf("MonthRef = %q", h.MonthRef)
	}
	if h.CardNumber != "**** 1234" {
		t.Errorf("CardNumber = %q", h.CardNumber)
	}
	// The declared monthly sum wins over the computed row totals.
	if h.MonthlyTotal.StringFixed(2) != "1250.50" {
		t.Errorf("MonthlyTotal = %s, want 1250.50", h.MonthlyTotal)
	}
	if !h.Total.Equal(h.MonthlyTotal) {
		t.Errorf("Total = %s, want MonthlyTotal %s", h.Total, h.MonthlyTotal)
	}
}

func TestDeriveHeaderMonthlySumBlank(t *testing.T) {
	settings := config.DefaultSettings()

	// Column present but blank: the total is zero, not the row sum.
	group := makeGroup(t, "111", []dataset.Record{
		{"soma_total_mensal": "", "quantidade": "2", "valor_unitario": "10"},
	})

	h := DeriveHeader(group, settings, time.Now())
	if !h.MonthlyTotal.IsZero() {
		t.Errorf("MonthlyTotal = %s, want 0", h.MonthlyTotal)
	}
}

func TestDeriveHeaderFallbackSum(t *testing.T) {
	settings := config.DefaultSettings()

	// No monthly-sum column at all: sum the computed line totals.
	group := makeGroup(t, "111", []dataset.Record{
		{"quantidade": "2", "valor_unitario": "10,50"},
		{"quantidade": "1", "valor_unitario": "0,25"},
	})

	h := DeriveHeader(group, settings, time.Now())
	if h.MonthlyTotal.StringFixed(2) != "21.25" {
		t.Errorf("MonthlyTotal = %s, want 21.25", h.MonthlyTotal)
	}
}

func TestAssembleItems(t *testing.T) {
	settings := config.DefaultSettings()

	group := makeGroup(t, "111", []dataset.Record{
		{
			"estabelecimento": "Mercado Central",
			"valor_compra":    "1.250,50",
			"qtd_parcelas":    "3",
			"valor_parcela":   "416,83",
		},
	})

	items, dropped := AssembleItems(group, settings, settings.MaxItems)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.Description != "Mercado Central | Compra: R$ 1250.50 | 3x" {
		t.Errorf("Description = %q", item.Description)
	}
	if item.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", item.Quantity)
	}
	if item.UnitValue.StringFixed(2) != "416.83" {
		t.Errorf("UnitValue = %s", item.UnitValue)
	}
	if !item.TotalValue.Equal(item.UnitValue) {
		t.Errorf("TotalValue = %s, want UnitValue %s", item.TotalValue, item.UnitValue)
	}
}

func TestAssembleItemsDefaults(t *testing.T) {
	settings := config.DefaultSettings()

	// Missing purchase fields: value 0, one installment, zero item values.
	group := makeGroup(t, "111", []dataset.Record{
		{"estabelecimento": "Loja X"},
	})

	items, _ := AssembleItems(group, settings, settings.MaxItems)
	if items[0].Description != "Loja X | Compra: R$ 0.00 | 1x" {
		t.Errorf("Description = %q", items[0].Description)
	}
	if !items[0].UnitValue.IsZero() || !items[0].TotalValue.IsZero() {
		t.Errorf("values = %s/%s, want 0/0", items[0].UnitValue, items[0].TotalValue)
	}
}

func TestAssembleItemsTruncation(t *testing.T) {
	settings := config.DefaultSettings()

	records := make([]dataset.Record, 5)
	for i := range records {
		records[i] = dataset.Record{"estabelecimento": "Loja", "valor_parcela": "1"}
	}
	group := makeGroup(t, "111", records)

	items, dropped := AssembleItems(group, settings, 3)
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}
