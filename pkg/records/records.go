// Package records defines the dynamic row model shared by the parser,
// transformer, and storage layers. A Record is a mutable map from a cleaned
// column name to a cell value (string, int64, float64, or nil for missing).
// Column order is not carried by the Record itself; pipelines pass an ordered
// []string of column names alongside record slices.
package records

// Record is one row of the in-memory table.
type Record map[string]any

// HasAny reports whether at least one of the named fields holds a non-nil
// value in r.
func (r Record) HasAny(fields []string) bool {
	for _, f := range fields {
		if v, ok := r[f]; ok && v != nil {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
