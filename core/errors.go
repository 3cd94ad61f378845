package core

import (
	"io/fs"

	"github.com/jmgilman/go/vfs/errors"
)

// ErrClosed is wrapped by errors returned from calls on a closed Stream.
// Re-exported from io/fs for convenience.
var ErrClosed = fs.ErrClosed

// ClosedError returns the error reported by op on a closed stream.
func ClosedError(op, name string) error {
	return errors.WithOp(errors.Wrap(ErrClosed, errors.CodeFailure, "stream is closed"), op, name)
}
