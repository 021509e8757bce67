// Package csv parses CSV input into dynamic records with cleaned column
// names. Header cells are normalized to snake_case ASCII identifiers and
// duplicate columns are dropped (first occurrence wins), so downstream stages
// can address cells by stable keys.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"addretl/pkg/records"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps raw header names to canonical keys, bypassing the
	// default cleaning for those headers. Only applies when HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// skipLogLimit caps per-row skip logging so a badly corrupted file cannot
// flood the console.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the parsed rows, the ordered
// list of cleaned column names (duplicates already removed), and the number
// of rows skipped due to parse errors or field-count mismatches.
//
// Cells are stored as string values; empty cells become nil so missing data
// is distinguishable from empty text downstream.
func (p *Parser) Parse(r io.Reader) ([]records.Record, []string, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is enforced per row against the header; lazy quotes keep one bad
	// cell from aborting the whole read.
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var (
		headers  []string // cleaned, deduplicated column names
		keep     []int    // source field index for each kept column
		rawWidth int      // expected field count per data row
		skipped  int
		out      []records.Record
	)

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		rawWidth = len(h)
		cleaned := cleanHeaders(h, p.opt)
		seen := make(map[string]struct{}, len(cleaned))
		for i, name := range cleaned {
			if _, dup := seen[name]; dup {
				// Duplicate cleaned name: keep the first column, drop this one.
				continue
			}
			seen[name] = struct{}{}
			headers = append(headers, name)
			keep = append(keep, i)
		}
	}

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if headers == nil {
			// Headerless input: synthesize col_N names from the first row.
			rawWidth = len(row)
			headers = make([]string, len(row))
			keep = make([]int, len(row))
			for i := range row {
				headers[i] = fmt.Sprintf("col_%d", i)
				keep[i] = i
			}
		}

		if len(row) != rawWidth {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: incorrect number of fields (expected %d, got %d)", line, rawWidth, len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(headers))
		for j, src := range keep {
			val := row[src]
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[j]] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, headers, skipped, nil
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
