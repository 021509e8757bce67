package builtin

import (
	"strconv"

	"addretl/pkg/records"
)

// Coerce converts string cells to typed values per the Kinds map
// (column -> "integer" | "real"; anything else is left as text). Cells that
// fail to convert are left as strings, so a stray non-numeric value degrades
// the column rather than dropping the row.
//
// The pipeline derives Kinds from the data itself (ddl.InferKinds) right
// before the sink, so typed columns arrive in the database as numbers instead
// of digit strings.
type Coerce struct {
	Kinds map[string]string
}

// Apply mutates records in place and returns the same slice.
func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Kinds) == 0 {
		return in
	}
	for _, r := range in {
		for col, kind := range c.Kinds {
			s, ok := r[col].(string)
			if !ok {
				continue
			}
			switch kind {
			case "integer":
				if n, err := strconv.ParseInt(s, 10, 64); err == nil {
					r[col] = n
				}
			case "real":
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					r[col] = f
				}
			}
		}
	}
	return in
}
