// Package datasource defines the contract for opening raw input data. The
// pipeline reads its CSV through this interface so tests can substitute
// in-memory sources.
package datasource

import (
	"context"
	"io"
)

// Source provides a readable stream of raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
