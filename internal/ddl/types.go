// Package ddl defines a small, backend-agnostic model for table definitions
// and infers logical column kinds from in-memory record values. Backend
// packages (internal/storage/sqlite/ddl, internal/storage/postgres/ddl) map
// the logical kinds onto their dialect and render the CREATE TABLE text.
package ddl

// ColumnDef describes a single column in a table definition.
//
// Name is the logical column name; quoting happens at render time. SQLType is
// the dialect type chosen by the backend's MapType.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the table name (dotted FQN accepted) and an ordered column
// list.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
