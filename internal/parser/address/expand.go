package address

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"addretl/pkg/records"
)

// DerivedColumns are the columns Expand adds to every record, in output
// order. The country column is prefixed to avoid clashing with an input
// column of the same name.
var DerivedColumns = []string{"street", "city", "post_code", "address_country"}

// sampleLimit caps how many malformed cell samples are logged per run.
const sampleLimit = 3

// sampleWidth truncates logged samples so one pathological cell cannot
// dominate the console.
const sampleWidth = 120

// Expand parses the address cell of every record and materializes the four
// derived columns on each record (nil where absent or failed).
//
// Rows whose parse produced no fields at all are the malformed set: their
// count and up to three truncated samples are logged, and the original rows
// (original columns only, pre-derived) are written to reviewPath. The review
// file is overwritten each run; when no rows are malformed any stale file
// from a previous run is removed.
//
// Expand mutates recs in place and returns the extended column list plus the
// malformed-row count.
func Expand(p *Parser, recs []records.Record, columns []string, addressCol, reviewPath string) ([]string, int, error) {
	results := make([]Result, len(recs))
	var malformed []int
	for i, rec := range recs {
		results[i] = p.Parse(rec[addressCol])
		if results[i].Fields.Empty() {
			malformed = append(malformed, i)
		}
	}

	log.Printf("malformed address rows: %d", len(malformed))
	if len(malformed) > 0 {
		log.Printf("first %d malformed address samples:", min(sampleLimit, len(malformed)))
		for _, idx := range malformed[:min(sampleLimit, len(malformed))] {
			log.Printf("row %d: %s", idx, truncate(sampleCell(recs[idx][addressCol]), sampleWidth))
		}
		if err := writeReviewFile(reviewPath, recs, columns, malformed); err != nil {
			return nil, 0, fmt.Errorf("write review file: %w", err)
		}
		log.Printf("all malformed rows saved to %q", reviewPath)
	} else {
		log.Printf("no malformed addresses detected")
		// A leftover file from an earlier run would misreport this run.
		if err := os.Remove(reviewPath); err != nil && !os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("remove stale review file: %w", err)
		}
	}

	for i, rec := range recs {
		f := results[i].Fields
		rec["street"] = strOrNil(f.Street)
		rec["city"] = strOrNil(f.City)
		rec["post_code"] = strOrNil(f.PostCode)
		rec["address_country"] = strOrNil(f.Country)
	}

	out := make([]string, 0, len(columns)+len(DerivedColumns))
	out = append(out, columns...)
	out = append(out, DerivedColumns...)
	return out, len(malformed), nil
}

// writeReviewFile saves the malformed rows, original columns only, as CSV.
// The file is created or truncated wholesale; there is no append across runs.
func writeReviewFile(path string, recs []records.Record, columns []string, idxs []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, i := range idxs {
		for j, col := range columns {
			row[j] = cellString(recs[i][col])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// sampleCell renders a cell for the malformed-sample log; an absent cell is
// marked explicitly instead of printing a bare nil.
func sampleCell(v any) string {
	if v == nil {
		return "<missing>"
	}
	return fmt.Sprint(v)
}

// cellString renders a cell for CSV output; nil becomes the empty string.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
