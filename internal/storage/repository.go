// Package storage contains the storage-agnostic sink contract and the
// factory that backends register themselves with. The pipeline depends only
// on this package; concrete backends are pulled in by blank-importing
// internal/storage/all (or an individual backend) from the wiring layer.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config carries everything a backend needs to open a repository.
type Config struct {
	// Kind selects the backend, e.g. "sqlite" or "postgres".
	Kind string

	// DSN is the backend connection string (a file path for SQLite).
	DSN string

	// Table is the destination table name; dotted FQNs are accepted.
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}

// Repository is the minimal sink interface used by the pipeline.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns order) into the
	// configured table and returns the number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec runs an arbitrary SQL statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connection.
	Close()
}

// Factory opens a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factMu    sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a storage kind. Backends
// call this from init.
func Register(kind string, f Factory) {
	factMu.Lock()
	defer factMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. An unknown kind usually means the
// backend package was not blank-imported by the wiring layer.
func New(ctx context.Context, cfg Config) (Repository, error) {
	factMu.RLock()
	f, ok := factories[cfg.Kind]
	factMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (backend not imported?)", cfg.Kind)
	}
	return f(ctx, cfg)
}
