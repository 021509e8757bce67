package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper renders and applies the dialect-specific create-or-replace
// DDL for a destination table. columns is the ordered column list and kinds
// maps each column to its logical kind ("integer", "real", "text"); the
// backend maps kinds onto dialect types. Backends register their
// implementation per kind at init time, next to their Repository factory.
type DDLBootstrapper func(ctx context.Context, repo Repository, table string, columns []string, kinds map[string]string) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL installs (or replaces) the DDLBootstrapper for a storage kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTableReplace applies create-or-replace DDL for the destination table
// using the bootstrapper registered for kind. Previous table contents are
// lost; the sink has full-overwrite semantics by contract.
func EnsureTableReplace(ctx context.Context, kind string, repo Repository, table string, columns []string, kinds map[string]string) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL bootstrapper for kind %q", kind)
	}
	if err := fn(ctx, repo, table, columns, kinds); err != nil {
		return fmt.Errorf("storage: bootstrap %s DDL: %w", kind, err)
	}
	return nil
}
