package builtin

import (
	"strings"

	"addretl/pkg/records"
)

// Lowercase normalizes the case of text columns: every column that holds at
// least one string value has all of its string entries lowercased. Columns
// that contain no strings (all nil, or already coerced to numbers) are left
// untouched. Non-string cells inside a text column pass through unchanged.
//
// Lowercase is idempotent.
type Lowercase struct {
	// Columns is the ordered column list to consider.
	Columns []string
}

// Apply mutates records in place and returns the same slice.
func (l Lowercase) Apply(in []records.Record) []records.Record {
	for _, col := range l.Columns {
		if !anyString(in, col) {
			continue
		}
		for _, r := range in {
			if s, ok := r[col].(string); ok {
				r[col] = strings.ToLower(s)
			}
		}
	}
	return in
}

// anyString reports whether col holds a string value in at least one record.
func anyString(in []records.Record, col string) bool {
	for _, r := range in {
		if _, ok := r[col].(string); ok {
			return true
		}
	}
	return false
}
