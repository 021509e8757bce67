// This file wires the Postgres backend into the storage factory.
package postgres

import (
	"context"
	"fmt"

	"addretl/internal/storage"
	pgddl "addretl/internal/storage/postgres/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository.
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
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("postgres",
		func(ctx context.Context, repo storage.Repository, table string, columns []string, kinds map[string]string) error {
			td := pgddl.FromKinds(table, columns, kinds)
			drop, err := pgddl.BuildDropTableSQL(td)
			if err != nil {
				return fmt.Errorf("render drop: %w", err)
			}
			create, err := pgddl.BuildCreateTableSQL(td)
			if err != nil {
				return fmt.Errorf("render create: %w", err)
			}
			if err := repo.Exec(ctx, drop); err != nil {
				return err
			}
			return repo.Exec(ctx, create)
		})
}
