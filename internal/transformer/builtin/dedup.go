// Package builtin contains the reusable record transformers wired into the
// pipeline's normalization stage.
package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"addretl/pkg/records"
)

// DeDup removes duplicate records by full-row equality over Columns, keeping
// the first occurrence and preserving input order.
//
// A row's identity is an xxh3 hash of its cells joined in column order, with
// nil cells and type boundaries encoded so that ("a", nil) and ("a", "") hash
// differently. Hash collisions are accepted as a non-issue at the table sizes
// this job handles.
//
// Run DeDup before Lowercase: the dedup pass operates on the rows exactly as
// parsed, so "A" and "a" are distinct rows.
type DeDup struct {
	// Columns is the full ordered column list; every column participates in
	// row identity.
	Columns []string
}

// Apply returns a new slice containing only the first occurrence of each row.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Columns) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := in[:0]
	var b strings.Builder
	for _, r := range in {
		b.Reset()
		for _, col := range d.Columns {
			switch t := r[col].(type) {
			case nil:
				b.WriteByte(0x00)
			case string:
				b.WriteByte('s')
				b.WriteString(t)
			default:
				b.WriteByte('v')
				b.WriteString(fmt.Sprint(t))
			}
			b.WriteByte(0x1f) // field separator
		}
		h := xxh3.HashString(b.String())
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}
