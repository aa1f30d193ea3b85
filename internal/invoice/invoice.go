// =============================================================================
// Invoice Generator - Invoice Domain Types
// =============================================================================
//
// This package holds the invoice domain model shared by the pipeline and the
// template filler:
//   - ClientType: the PF/PJ classification selecting the template
//   - Header: the per-client invoice header
//   - LineItem: one row of the invoice's item table
//
// The header deriver and the item assembler both live here; each consumes a
// dataset.Group and nothing else, so they are trivially testable.
//
// =============================================================================

package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardosorpa/invoice-generator/internal/config"
	"github.com/cardosorpa/invoice-generator/internal/dataset"
)

// =============================================================================
// CLIENT TYPE
// =============================================================================

// ClientType is the enumerated client category. It selects which template
// document an invoice is produced from.
type ClientType string

const (
	// ClientTypePF is a natural-person client (pessoa física).
	ClientTypePF ClientType = "PF"

	// ClientTypePJ is a legal-entity client (pessoa jurídica).
	ClientTypePJ ClientType = "PJ"
)

// ErrInvalidClientType is returned when a row carries a client type other
// than PF or PJ. Reaching this mid-run means the dataset drifted after
// preflight, so callers treat it as fatal.
var ErrInvalidClientType = errors.New("invalid client type")

// ParseClientType normalizes a raw client-type value (trim, upper-case) and
// maps it onto the enumeration.
func ParseClientType(value string) (ClientType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PF":
		return ClientTypePF, nil
	case "PJ":
		return ClientTypePJ, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidClientType, strings.TrimSpace(value))
	}
}

// =============================================================================
// INVOICE HEADER
// =============================================================================

// Header is the derived invoice header for one client group.
// It is computed once per group and never mutated.
type Header struct {
	// Document is the client document id (the group key).
	Document string

	// Name is the client's display name, or "" if the column is missing.
	Name string

	// IssueDate is the generation date formatted as dd/mm/yyyy.
	IssueDate string

	// MonthRef is the reference month, or "" if the column is missing.
	MonthRef string

	// CardNumber is the (masked) card number, or "" if the column is missing.
	CardNumber string

	// Total is the invoice total. It always equals MonthlyTotal, never the
	// sum of the emitted line items.
	Total decimal.Decimal

	// MonthlyTotal is the monthly aggregate, rounded to 2 decimal places.
	MonthlyTotal decimal.Decimal
}

// DeriveHeader computes the invoice header for a client group.
//
// The monthly total comes from the monthly-sum column when the dataset has
// it: the group's first-row value is parsed with comma-as-decimal handling,
// and a blank or unparsable value becomes zero, never an error. When the
// column is absent the total falls back to the sum of the group's computed
// line totals. Either way the result is rounded to 2 decimal places.
func DeriveHeader(group dataset.Group, settings *config.Settings, now time.Time) Header {
	first := group.Rows[0].Record

	header := Header{
		Document:  group.Key,
		IssueDate: now.Format("02/01/2006"),
	}

	if value, ok := first[settings.ClientNameColumn]; ok {
		header.Name = strings.TrimSpace(value)
	}
	if value, ok := first[settings.MonthRefColumn]; ok {
		header.MonthRef = strings.TrimSpace(value)
	}
	if value, ok := first[settings.CardNumberColumn]; ok {
		header.CardNumber = strings.TrimSpace(value)
	}

	monthly := decimal.Zero
	if raw, ok := first[settings.MonthlySumColumn]; ok {
		// Column present: its value wins, even over the row sums.
		if parsed, parsedOK := dataset.ParseDecimal(raw); parsedOK {
			monthly = parsed
		}
	} else {
		for _, row := range group.Rows {
			monthly = monthly.Add(row.LineTotal)
		}
	}
	header.MonthlyTotal = monthly.Round(2)
	header.Total = header.MonthlyTotal

	return header
}

// =============================================================================
// LINE ITEMS
// =============================================================================

// LineItem is one row of the invoice's item table.
type LineItem struct {
	// Description is the composed line description:
	// "<establishment> | Compra: R$ <purchase value> | <installments>x".
	Description string

	// Quantity is fixed at 1 in this flow.
	Quantity int

	// UnitValue is the installment value taken from the raw row.
	UnitValue decimal.Decimal

	// TotalValue equals UnitValue. Items are re-derived from the raw
	// installment fields, not from the transformer's computed line total.
	TotalValue decimal.Decimal
}

// AssembleItems builds the line items for a client group, in row order,
// keeping at most maxItems of them. The second return is the number of rows
// that were dropped by the cap; callers surface it so truncated invoices are
// detectable.
func AssembleItems(group dataset.Group, settings *config.Settings, maxItems int) ([]LineItem, int) {
	items := make([]LineItem, 0, min(len(group.Rows), maxItems))

	for _, row := range group.Rows {
		if len(items) == maxItems {
			break
		}
		items = append(items, assembleItem(row.Record, settings))
	}

	dropped := len(group.Rows) - len(items)
	return items, dropped
}

// assembleItem builds a single line item from a raw record. All three
// numeric fields use the lenient coercion rules: missing purchase value and
// installment value default to 0, missing installment count defaults to 1,
// and unparsable text falls back to the same defaults.
func assembleItem(record dataset.Record, settings *config.Settings) LineItem {
	purchase := decimal.Zero
	if d, ok := dataset.ParseDecimal(orDefault(record[settings.PurchaseValueColumn], "0")); ok {
		purchase = d
	}

	installments := 1
	if d, ok := dataset.ParseDecimal(orDefault(record[settings.InstallmentCountColumn], "1")); ok {
		installments = int(d.IntPart())
	}

	installmentValue := decimal.Zero
	if d, ok := dataset.ParseDecimal(orDefault(record[settings.InstallmentValueColumn], "0")); ok {
		installmentValue = d
	}

	establishment := strings.TrimSpace(record[settings.EstablishmentColumn])

	return LineItem{
		Description: fmt.Sprintf("%s | Compra: R$ %s | %dx",
			establishment, purchase.StringFixed(2), installments),
		Quantity:   1,
		UnitValue:  installmentValue,
		TotalValue: installmentValue,
	}
}

// orDefault substitutes a default for blank text.
func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
