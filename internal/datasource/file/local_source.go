// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a data source that reads a single file from local disk.
type Local struct{ path string }

// NewLocal returns a Local bound to path. The file is not touched until Open.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading.
//
// A context that is already canceled short-circuits without touching the
// filesystem. Filesystem errors are wrapped with the path while remaining
// inspectable via errors.Is (e.g. os.ErrNotExist for a missing input file,
// which is fatal for the pipeline).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
