// =============================================================================
// Invoice Generator - Dataset Normalizer
// =============================================================================
//
// Best-effort cleanup applied to the raw dataset before anything else looks
// at it:
//   1. Column names are trimmed and lower-cased.
//   2. Rows whose fields are all empty are dropped.
//   3. The group-key value is trimmed; rows left with an empty key are dropped.
//
// This stage never raises an error. Stricter data-quality rules live in the
// preflight validator.
//
// =============================================================================

package dataset

import "strings"

// CanonicalName returns the canonical form of a column name: trimmed and
// lower-cased. Dataset headers and configured column names go through the
// same function so lookups never miss on case or stray whitespace.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize returns a copy of the dataset with canonical column names, empty
// rows removed, and the group-key column trimmed. Rows without a group key
// are removed as well; every surviving row is guaranteed to have a non-empty
// value in groupByColumn.
//
// The input dataset is not modified.
func Normalize(ds *Dataset, groupByColumn string) *Dataset {
	groupByColumn = CanonicalName(groupByColumn)

	out := &Dataset{SourceFile: ds.SourceFile}

	// Canonicalize the header row, keeping sheet order.
	rename := make(map[string]string, len(ds.Columns))
	for _, col := range ds.Columns {
		canon := CanonicalName(col)
		rename[col] = canon
		out.Columns = append(out.Columns, canon)
	}

	for _, row := range ds.Rows {
		record := make(Record, len(row))
		empty := true
		for col, value := range row {
			record[rename[col]] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		key := strings.TrimSpace(record[groupByColumn])
		record[groupByColumn] = key
		if key == "" {
			continue
		}

		out.Rows = append(out.Rows, record)
	}

	return out
}
