// Package ddl contains SQLite-specific helpers for generating DDL from the
// generic ddl table model.
package ddl

import (
	"strings"

	gddl "addretl/internal/ddl"
)

// FromKinds builds a SQLite TableDef from an ordered column list and the
// logical kinds inferred for them. Every column is nullable; the sink stores
// whatever survived normalization, nulls included.
func FromKinds(table string, columns []string, kinds map[string]string) gddl.TableDef {
	td := gddl.TableDef{FQN: table, Columns: make([]gddl.ColumnDef, 0, len(columns))}
	for _, c := range columns {
		td.Columns = append(td.Columns, gddl.ColumnDef{
			Name:     c,
			SQLType:  MapType(kinds[c]),
			Nullable: true,
		})
	}
	return td
}

// MapType maps a logical column kind (from ddl.InferKinds) into a SQLite
// column type. SQLite uses type affinities, so the mapping stays with the
// canonical ones.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER" // 0/1
	case "float", "double", "real":
		return "REAL"
	case "numeric", "decimal":
		return "NUMERIC"
	case "blob", "bytes":
		return "BLOB"
	default:
		return "TEXT"
	}
}
