// This file contains the batch execution logic: source → CSV parse →
// address repair/expansion → transform chain → partition → DDL → COPY.
//
// The run is deliberately sequential. The dataset is small enough to hold in
// memory, and several stages (dedupe keep-first, review-file ordering) depend
// on stable row order; a single pass keeps those guarantees trivial.
package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"addretl/internal/config"
	"addretl/internal/datasource/file"
	"addretl/internal/ddl"
	"addretl/internal/parser"
	"addretl/internal/parser/address"
	csvparser "addretl/internal/parser/csv"
	"addretl/internal/storage"
	"addretl/internal/transformer"
	"addretl/internal/transformer/builtin"
	"addretl/pkg/records"
)

// headRows is how many leading rows of the expanded address columns are
// echoed to the log for a quick visual sanity check.
const headRows = 5

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	openSourceFn = openSource

	ensureTableFn = storage.EnsureTableReplace
)

// run executes the full batch: parse the source, expand the address column,
// normalize, split good from bad, and replace the destination table with the
// good rows. Malformed address rows were already written to the review file
// by the expansion stage; rows whose expanded address fields are all null are
// counted and excluded from the sink.
func run(ctx context.Context, spec config.Pipeline) error {
	src, err := openSourceFn(ctx, spec)
	if err != nil {
		return fmt.Errorf("source open: %w", err)
	}

	p, err := buildParser(spec.Parser)
	if err != nil {
		src.Close()
		return err
	}

	recs, columns, skipped, err := p.Parse(src)
	src.Close()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	log.Printf("parsed %d rows (%d skipped), columns=%v", len(recs), skipped, columns)

	if !hasColumn(columns, spec.Address.Column) {
		return fmt.Errorf("address column %q not found after header cleaning (have %v)", spec.Address.Column, columns)
	}

	// Expand reports the malformed count and writes the review file itself;
	// malformed rows stay in recs until the partition below.
	columns, _, err = address.Expand(address.NewParser(), recs, columns, spec.Address.Column, spec.Address.ReviewPath)
	if err != nil {
		return fmt.Errorf("expand address: %w", err)
	}
	logHead(recs, address.DerivedColumns)

	chain, err := buildTransformers(spec.Transform, columns)
	if err != nil {
		return err
	}
	recs = chain.Apply(recs)

	good, bad := builtin.Partition{AnyOf: address.DerivedColumns}.Split(recs)
	log.Printf("data ready: %d good rows, %d bad rows", len(good), len(bad))

	kinds := ddl.InferKinds(good, columns)
	// The expanded address fields are strings by contract: a digits-only
	// post_code column must stay TEXT so values like "01234" keep their
	// leading zero.
	for _, c := range address.DerivedColumns {
		kinds[c] = "text"
	}
	good = builtin.Coerce{Kinds: kinds}.Apply(good)

	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:    spec.Storage.Kind,
		DSN:     spec.Storage.DB.DSN,
		Table:   spec.Storage.DB.Table,
		Columns: columns,
	})
	if err != nil {
		return fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close()

	if err := ensureTableFn(ctx, spec.Storage.Kind, repo, spec.Storage.DB.Table, columns, kinds); err != nil {
		return err
	}

	n, err := repo.CopyFrom(ctx, columns, toRows(good, columns))
	if err != nil {
		return fmt.Errorf("copy to %s: %w", spec.Storage.DB.Table, err)
	}
	log.Printf("inserted %d rows into %s", n, spec.Storage.DB.Table)

	return nil
}

// openSource maps source configuration into a concrete reader.
func openSource(ctx context.Context, spec config.Pipeline) (io.ReadCloser, error) {
	switch spec.Source.Kind {
	case "file":
		return file.NewLocal(spec.Source.File.Path).Open(ctx)
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", spec.Source.Kind)
	}
}

// buildParser maps parser configuration into a concrete parser implementation.
func buildParser(p config.Parser) (parser.Parser, error) {
	switch p.Kind {
	case "csv":
		opt := csvparser.Options{
			HasHeader: p.Options.Bool("has_header", true),
			Comma:     p.Options.Rune("comma", ','),
			TrimSpace: p.Options.Bool("trim_space", true),
			HeaderMap: p.Options.StringMap("header_map"),
		}
		return csvparser.NewParser(opt), nil
	default:
		return nil, fmt.Errorf("unsupported parser.kind=%s", p.Kind)
	}
}

// buildTransformers constructs the transformer chain from configuration.
// Both built-in transforms operate on the full column list: row identity for
// dedupe spans every column, and lowercasing applies to every column that
// holds strings.
func buildTransformers(ts []config.Transform, columns []string) (transformer.Chain, error) {
	c := transformer.Chain{}
	for _, t := range ts {
		switch t.Kind {
		case "dedupe":
			c = append(c, builtin.DeDup{Columns: columns})
		case "lowercase":
			c = append(c, builtin.Lowercase{Columns: columns})
		default:
			return nil, fmt.Errorf("unsupported transformer.kind=%s", t.Kind)
		}
	}
	return c, nil
}

// toRows flattens records into positional rows aligned with columns, the
// shape CopyFrom expects.
func toRows(recs []records.Record, columns []string) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = r[c]
		}
		rows[i] = row
	}
	return rows
}

// logHead echoes the named columns of the first few rows.
func logHead(recs []records.Record, columns []string) {
	n := headRows
	if len(recs) < n {
		n = len(recs)
	}
	for i := 0; i < n; i++ {
		vals := make([]any, len(columns))
		for j, c := range columns {
			vals[j] = recs[i][c]
		}
		log.Printf("head[%d]: %v", i, vals)
	}
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
