package ddl

import (
	"strconv"
	"strings"

	"addretl/pkg/records"
)

// InferKinds examines the in-memory values of every column and returns a
// logical kind per column name: "integer", "real", or "text".
//
// A column is integer when every non-nil value is (or parses as) a base-10
// int64, real when every non-nil value is numeric but not all integral, and
// text otherwise. Columns with no non-nil values default to text. Typed cells
// produced by an earlier coercion (int64, float64) count as their own kind.
func InferKinds(recs []records.Record, columns []string) map[string]string {
	out := make(map[string]string, len(columns))
	for _, col := range columns {
		out[col] = inferColumnKind(recs, col)
	}
	return out
}

func inferColumnKind(recs []records.Record, col string) string {
	sawValue := false
	allInt := true
	for _, r := range recs {
		v, ok := r[col]
		if !ok || v == nil {
			continue
		}
		sawValue = true
		switch t := v.(type) {
		case int64:
			// already integer
		case float64:
			allInt = false
		case string:
			if isInt(t) {
				continue
			}
			allInt = false
			if !isFloat(t) {
				return "text"
			}
		default:
			return "text"
		}
	}
	if !sawValue {
		return "text"
	}
	if allInt {
		return "integer"
	}
	return "real"
}

// isInt requires a signed base-10 integer that fits in int64.
func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// isFloat accepts decimal or scientific notation floats.
func isFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
