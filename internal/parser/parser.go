// Package parser defines the contract shared by input-format parsers.
package parser

import (
	"io"

	"addretl/pkg/records"
)

// Parser turns a raw byte stream into records plus the ordered list of
// cleaned column names. skipped counts rows dropped by soft parse failures.
type Parser interface {
	Parse(r io.Reader) (recs []records.Record, columns []string, skipped int, err error)
}
