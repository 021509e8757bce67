package config

import (
	"strings"
	"testing"
)

func validPipeline() Pipeline {
	return Pipeline{
		Job:    "test_job",
		Source: Source{Kind: "file", File: SourceFile{Path: "data/in.csv"}},
		Parser: Parser{Kind: "csv"},
		Address: Address{
			Column:     "address",
			ReviewPath: "broken.csv",
		},
		Transform: []Transform{{Kind: "dedupe"}, {Kind: "lowercase"}},
		Storage: Storage{
			Kind: "sqlite",
			DB:   DBConfig{DSN: "db.sqlite", Table: "mock_data"},
		},
	}
}

func countSeverity(issues []Issue, s IssueSeverity) int {
	n := 0
	for _, i := range issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

func TestValidatePipeline_Valid(t *testing.T) {
	issues := ValidatePipeline(validPipeline())
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidatePipeline_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Pipeline)
		path   string
	}{
		{"empty_job", func(p *Pipeline) { p.Job = "" }, "job"},
		{"empty_source_kind", func(p *Pipeline) { p.Source.Kind = "" }, "source.kind"},
		{"file_source_without_path", func(p *Pipeline) { p.Source.File.Path = " " }, "source.file.path"},
		{"empty_parser_kind", func(p *Pipeline) { p.Parser.Kind = "" }, "parser.kind"},
		{"empty_address_column", func(p *Pipeline) { p.Address.Column = "" }, "address.column"},
		{"empty_review_path", func(p *Pipeline) { p.Address.ReviewPath = "" }, "address.review_path"},
		{"unknown_transform", func(p *Pipeline) { p.Transform = []Transform{{Kind: "explode"}} }, "transform[0].kind"},
		{"empty_storage_kind", func(p *Pipeline) { p.Storage.Kind = "" }, "storage.kind"},
		{"empty_dsn", func(p *Pipeline) { p.Storage.DB.DSN = "" }, "storage.db.dsn"},
		{"empty_table", func(p *Pipeline) { p.Storage.DB.Table = "" }, "storage.db.table"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPipeline()
			tc.mutate(&p)
			issues := ValidatePipeline(p)
			found := false
			for _, iss := range issues {
				if iss.Severity == SeverityError && iss.Path == tc.path {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error at %s, got %v", tc.path, issues)
			}
		})
	}
}

func TestValidatePipeline_UnknownKindsWarn(t *testing.T) {
	p := validPipeline()
	p.Source.Kind = "s3"
	p.Parser.Kind = "parquet"
	p.Storage.Kind = "mssql"

	issues := ValidatePipeline(p)
	if countSeverity(issues, SeverityError) != 0 {
		t.Fatalf("unknown kinds should warn, not error: %v", issues)
	}
	if countSeverity(issues, SeverityWarning) != 3 {
		t.Fatalf("expected 3 warnings, got %v", issues)
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "storage.db.table", Message: "missing"}
	got := iss.Error()
	if !strings.Contains(got, "storage.db.table") || !strings.Contains(got, "missing") {
		t.Fatalf("Error() = %q", got)
	}
}
