package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"addretl/internal/config"
	"addretl/internal/storage"
)

// fakeRepo captures DDL statements and copied rows in place of a database.
type fakeRepo struct {
	execs   []string
	columns []string
	rows    [][]any
	closed  bool
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	f.columns = columns
	f.rows = rows
	return int64(len(rows)), nil
}
func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return nil
}
func (f *fakeRepo) Close() { f.closed = true }

func testSpec(input, review string) config.Pipeline {
	return config.Pipeline{
		Job:    "test_job",
		Source: config.Source{Kind: "file", File: config.SourceFile{Path: input}},
		Parser: config.Parser{
			Kind:    "csv",
			Options: config.Options{"has_header": true, "trim_space": true},
		},
		Address: config.Address{Column: "address", ReviewPath: review},
		Transform: []config.Transform{
			{Kind: "dedupe"},
			{Kind: "lowercase"},
		},
		Storage: config.Storage{
			Kind: "sqlite",
			DB:   config.DBConfig{DSN: "unused.sqlite", Table: "mock_data"},
		},
	}
}

const fixtureCSV = `Id,Address
1,"{'address': {'streeet': '9 Oak Lane', 'city': 'DERRY', 'post code': '11111', 'country': 'Ireland'}}"
1,"{'address': {'streeet': '9 Oak Lane', 'city': 'DERRY', 'post code': '11111', 'country': 'Ireland'}}"
3,"{'address': {'city': 'Loja', 'post code': 38-422}"
4,junk
5,
`

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mock_dataset.csv")
	review := filepath.Join(dir, "broken_addresses.csv")
	if err := os.WriteFile(input, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := &fakeRepo{}
	orig := newRepositoryFn
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		if cfg.Kind != "sqlite" || cfg.Table != "mock_data" {
			t.Errorf("unexpected repo config: %+v", cfg)
		}
		return repo, nil
	}
	t.Cleanup(func() { newRepositoryFn = orig })

	if err := run(context.Background(), testSpec(input, review)); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Columns: cleaned originals plus the four derived address columns.
	wantCols := []string{"id", "address", "street", "city", "post_code", "address_country"}
	if !reflect.DeepEqual(repo.columns, wantCols) {
		t.Fatalf("columns = %v, want %v", repo.columns, wantCols)
	}

	// 5 input rows: one duplicate removed, two malformed excluded => 2 good.
	if len(repo.rows) != 2 {
		t.Fatalf("copied %d rows, want 2: %v", len(repo.rows), repo.rows)
	}

	// Row 1: repaired, lowercased, id coerced to integer.
	row := repo.rows[0]
	if row[0] != int64(1) {
		t.Fatalf("id = %v (%T), want int64(1)", row[0], row[0])
	}
	if row[2] != "9 oak lane" || row[3] != "derry" || row[4] != "11111" || row[5] != "ireland" {
		t.Fatalf("derived cells wrong: %v", row)
	}

	// Row 3: truncated brace and bare postcode repaired; absent fields null.
	row = repo.rows[1]
	if row[0] != int64(3) || row[3] != "loja" || row[4] != "38-422" {
		t.Fatalf("repaired row wrong: %v", row)
	}
	if row[2] != nil || row[5] != nil {
		t.Fatalf("absent fields should be nil: %v", row)
	}

	// DDL: drop then create against the destination table.
	if len(repo.execs) != 2 {
		t.Fatalf("execs = %v, want drop+create", repo.execs)
	}
	if !strings.HasPrefix(repo.execs[0], `DROP TABLE IF EXISTS "mock_data"`) {
		t.Fatalf("first statement should drop: %s", repo.execs[0])
	}
	if !strings.HasPrefix(repo.execs[1], `CREATE TABLE "mock_data"`) {
		t.Fatalf("second statement should create: %s", repo.execs[1])
	}
	if !strings.Contains(repo.execs[1], `"id" INTEGER`) || !strings.Contains(repo.execs[1], `"street" TEXT`) {
		t.Fatalf("create DDL types wrong: %s", repo.execs[1])
	}

	if !repo.closed {
		t.Fatal("repository was not closed")
	}

	// Review file: the two malformed source rows, original columns only.
	f, err := os.Open(review)
	if err != nil {
		t.Fatalf("open review: %v", err)
	}
	defer f.Close()
	got, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read review: %v", err)
	}
	want := [][]string{
		{"id", "address"},
		{"4", "junk"},
		{"5", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("review file = %v, want %v", got, want)
	}
}

func TestRun_DigitPostCodesStayText(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mock_dataset.csv")
	review := filepath.Join(dir, "broken_addresses.csv")
	// Every postcode is all digits; one carries a leading zero.
	fixture := `Id,Address
1,"{'address': {'city': 'Boston', 'post code': '01234'}}"
2,"{'address': {'city': 'Dallas', 'post code': '75201'}}"
`
	if err := os.WriteFile(input, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := &fakeRepo{}
	orig := newRepositoryFn
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return repo, nil
	}
	t.Cleanup(func() { newRepositoryFn = orig })

	if err := run(context.Background(), testSpec(input, review)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(repo.rows) != 2 {
		t.Fatalf("copied %d rows, want 2", len(repo.rows))
	}
	// post_code is column index 4 (id, address, street, city, post_code, ...).
	if got := repo.rows[0][4]; got != "01234" {
		t.Fatalf("post_code = %v (%T), want string \"01234\" with leading zero intact", got, got)
	}
	if !strings.Contains(repo.execs[1], `"post_code" TEXT`) {
		t.Fatalf("post_code must be TEXT in DDL: %s", repo.execs[1])
	}
	// The id column is not an address field and still coerces to integer.
	if got := repo.rows[0][0]; got != int64(1) {
		t.Fatalf("id = %v (%T), want int64(1)", got, got)
	}
}

func TestRun_MissingAddressColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("id,name\n1,ada\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(context.Background(), testSpec(input, filepath.Join(dir, "review.csv")))
	if err == nil || !strings.Contains(err.Error(), "address") {
		t.Fatalf("expected address-column error, got %v", err)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), testSpec(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "review.csv")))
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestBuildTransformers_UnknownKind(t *testing.T) {
	_, err := buildTransformers([]config.Transform{{Kind: "explode"}}, []string{"a"})
	if err == nil {
		t.Fatal("expected error for unknown transform kind")
	}
}

func TestBuildParser_UnknownKind(t *testing.T) {
	if _, err := buildParser(config.Parser{Kind: "parquet"}); err == nil {
		t.Fatal("expected error for unknown parser kind")
	}
}
