package builtin

import "addretl/pkg/records"

// Partition splits records into good rows (at least one of the AnyOf fields
// is non-nil) and bad rows (all absent). Every input record lands in exactly
// one of the two outputs and relative order is preserved.
//
// Partition is not a Transformer: the pipeline needs both halves, so it
// exposes Split instead of Apply.
type Partition struct {
	AnyOf []string
}

// Split performs the partition.
func (p Partition) Split(in []records.Record) (good, bad []records.Record) {
	for _, r := range in {
		if r.HasAny(p.AnyOf) {
			good = append(good, r)
		} else {
			bad = append(bad, r)
		}
	}
	return good, bad
}
