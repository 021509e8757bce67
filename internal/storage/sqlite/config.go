package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or plain file path, e.g.
	//   "file:out.db?cache=shared"
	//   "db.sqlite"
	DSN string

	// Table is the target table name for inserts, e.g. "mock_data".
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}
