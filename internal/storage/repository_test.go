package storage

import (
	"context"
	"strings"
	"testing"
)

// fakeRepo records Exec statements for bootstrap assertions.
type fakeRepo struct {
	execs []string
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}
func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return nil
}
func (f *fakeRepo) Close() {}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "no_such_backend"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "no_such_backend") {
		t.Fatalf("error should name the kind: %v", err)
	}
}

func TestRegisterAndNew(t *testing.T) {
	repo := &fakeRepo{}
	Register("test_backend", func(ctx context.Context, cfg Config) (Repository, error) {
		return repo, nil
	})

	got, err := New(context.Background(), Config{Kind: "test_backend"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got != Repository(repo) {
		t.Fatal("factory result not returned")
	}
}

func TestEnsureTableReplace_UnknownKind(t *testing.T) {
	err := EnsureTableReplace(context.Background(), "no_such_backend", &fakeRepo{}, "t", []string{"a"}, nil)
	if err == nil {
		t.Fatal("expected error for unregistered DDL kind")
	}
}

func TestEnsureTableReplace_DispatchesToBootstrapper(t *testing.T) {
	repo := &fakeRepo{}
	RegisterDDL("test_backend", func(ctx context.Context, r Repository, table string, columns []string, kinds map[string]string) error {
		if err := r.Exec(ctx, "DROP "+table); err != nil {
			return err
		}
		return r.Exec(ctx, "CREATE "+table)
	})

	if err := EnsureTableReplace(context.Background(), "test_backend", repo, "mock_data", []string{"id"}, map[string]string{"id": "integer"}); err != nil {
		t.Fatalf("EnsureTableReplace: %v", err)
	}
	if len(repo.execs) != 2 || repo.execs[0] != "DROP mock_data" || repo.execs[1] != "CREATE mock_data" {
		t.Fatalf("unexpected statements: %v", repo.execs)
	}
}
