// Package transformer defines the record-transform contract and the ordered
// chain used by the pipeline's normalization stage.
package transformer

import "addretl/pkg/records"

// Transformer rewrites or filters a batch of records. Implementations may
// mutate records in place and may return a slice with fewer elements.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

// Apply runs every transformer in order over in.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
