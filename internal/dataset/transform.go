// =============================================================================
// Invoice Generator - Row Transformer and Grouper
// =============================================================================
//
// The row transformer derives the numeric fields of each record: quantity,
// unit value, and the computed per-row total (quantity x unit value). The
// input uses comma as the decimal separator; values are normalized to dot
// before parsing. Unparsable text becomes zero rather than an error: by the
// time rows reach this stage, preflight has already rejected datasets with
// broken numbers, and this lenient path is only the fallback behind that gate.
//
// The grouper partitions transformed rows into per-client groups, keyed by
// the group-by column, in first-seen order, preserving row order inside each
// group.
//
// Money and quantity arithmetic uses shopspring/decimal throughout so that
// sums of many rows never accumulate binary-float drift.
//
// =============================================================================

package dataset

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// ParseDecimal parses a text value that may use comma as the decimal
// separator. When a comma is present, dots are taken as thousands separators
// and removed first, so "1.250,50" parses as 1250.50. The boolean return
// reports whether the value parsed; callers decide whether a failure is an
// error (preflight) or a zero (transformer).
func ParseDecimal(value string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(value)
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	if v == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// coerceOrZero applies the transformer's lenient rule: missing or blank
// becomes "0", comma becomes dot, and anything unparsable becomes zero.
func coerceOrZero(value string) decimal.Decimal {
	if strings.TrimSpace(value) == "" {
		value = "0"
	}
	d, ok := ParseDecimal(value)
	if !ok {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// TRANSFORMED ROW
// =============================================================================

// TransformedRow is a normalized record plus its derived numeric fields.
type TransformedRow struct {
	// Record is the underlying normalized row.
	Record Record

	// Qty is the coerced quantity (>= 0, zero on unparsable input).
	Qty decimal.Decimal

	// Unit is the coerced unit value (zero on unparsable input).
	Unit decimal.Decimal

	// LineTotal is Qty x Unit.
	LineTotal decimal.Decimal
}

// Transform derives the numeric fields for a single record. Each row is
// independent; the transform carries no cross-row state.
func Transform(record Record, qtyColumn, unitColumn string) TransformedRow {
	qty := coerceOrZero(record[qtyColumn])
	unit := coerceOrZero(record[unitColumn])
	return TransformedRow{
		Record:    record,
		Qty:       qty,
		Unit:      unit,
		LineTotal: qty.Mul(unit),
	}
}

// TransformAll applies Transform to every row of a normalized dataset,
// preserving row order.
func TransformAll(ds *Dataset, qtyColumn, unitColumn string) []TransformedRow {
	rows := make([]TransformedRow, len(ds.Rows))
	for i, record := range ds.Rows {
		rows[i] = Transform(record, qtyColumn, unitColumn)
	}
	return rows
}

// =============================================================================
// GROUPER
// =============================================================================

// Group is one client's rows: the group key (client document id) and the
// rows belonging to it, in dataset order.
type Group struct {
	// Key is the group-by column value shared by all rows in the group.
	Key string

	// Rows are the client's transformed rows, input order preserved.
	Rows []TransformedRow
}

// GroupRows partitions transformed rows into groups keyed by the group-by
// column, in first-seen order of the keys.
func GroupRows(rows []TransformedRow, groupByColumn string) []Group {
	byKey := make(map[string][]TransformedRow)
	var order []string

	for _, row := range rows {
		key := row.Record[groupByColumn]
		if _, exists := byKey[key]; !exists {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], row)
	}

	groups := make([]Group, len(order))
	for i, key := range order {
		groups[i] = Group{Key: key, Rows: byKey[key]}
	}
	return groups
}
