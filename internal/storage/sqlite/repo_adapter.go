// This file wires the SQLite backend into the storage factory. Registration
// happens in init so callers only blank-import the package.
package sqlite

import (
	"context"
	"fmt"

	"addretl/internal/storage"
	sqliteddl "addretl/internal/storage/sqlite/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace it to avoid touching a real database file.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository, adding a Close method
// backed by the cleanup function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	// Create-or-replace bootstrap: drop then create, two statements because
	// database/sql drivers are not required to run multi-statement strings.
	storage.RegisterDDL("sqlite",
		func(ctx context.Context, repo storage.Repository, table string, columns []string, kinds map[string]string) error {
			td := sqliteddl.FromKinds(table, columns, kinds)
			drop, err := sqliteddl.BuildDropTableSQL(td)
			if err != nil {
				return fmt.Errorf("render drop: %w", err)
			}
			create, err := sqliteddl.BuildCreateTableSQL(td)
			if err != nil {
				return fmt.Errorf("render create: %w", err)
			}
			if err := repo.Exec(ctx, drop); err != nil {
				return err
			}
			return repo.Exec(ctx, create)
		})
}
