// Package main runs the address-normalization batch job: it loads the mock
// dataset CSV, repairs and expands the embedded address column, normalizes
// the records, and replaces the destination table with the good rows.
//
// The job is a fixed one-shot batch; its run parameters are compile-time
// constants below rather than flags or environment variables. Changing the
// input, sink, or review location means editing the constants and rebuilding.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"addretl/internal/config"

	// register all backends with the storage factory.
	_ "addretl/internal/storage/all"
)

const (
	jobName = "mock_address_normalize"

	inputPath  = "data/mock_dataset.csv"
	reviewPath = "broken_addresses.csv"

	addressColumn = "address"

	storageKind = "sqlite"
	storageDSN  = "db.sqlite"
	tableName   = "mock_data"
)

func main() {
	p := config.Pipeline{
		Job: jobName,
		Source: config.Source{
			Kind: "file",
			File: config.SourceFile{Path: inputPath},
		},
		Parser: config.Parser{
			Kind: "csv",
			Options: config.Options{
				"has_header": true,
				"trim_space": true,
			},
		},
		Address: config.Address{
			Column:     addressColumn,
			ReviewPath: reviewPath,
		},
		Transform: []config.Transform{
			{Kind: "dedupe"},
			{Kind: "lowercase"},
		},
		Storage: config.Storage{
			Kind: storageKind,
			DB: config.DBConfig{
				DSN:   storageDSN,
				Table: tableName,
			},
		},
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Fatalf("configuration is invalid: job=%s", p.Job)
	}

	log.Printf("pipeline: job=%s source=%s parser=%s storage=%s table=%s",
		p.Job, p.Source.Kind, p.Parser.Kind, p.Storage.Kind, p.Storage.DB.Table)

	start := time.Now()
	if err := run(context.Background(), p); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
}
