package errors

import (
	"io"
	"io/fs"
	"syscall"
)

// FromOS translates an error returned by the os, io/fs or syscall packages
// into a StorageError. Errors that already carry a StorageError are returned
// with op and path filled in. fallback is used for errors with no closer
// match. Returns nil if err is nil.
//
// Example:
//
//	f, err := os.Open(path)
//	if err != nil {
//	    return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_read", path)
//	}
func FromOS(err error, fallback ErrorCode, op, path string) StorageError {
	if err == nil {
		return nil
	}

	var se StorageError
	if As(err, &se) {
		return WithOp(err, op, path)
	}

	code := fallback
	message := "operation failed"
	switch {
	case Is(err, fs.ErrNotExist):
		code, message = CodeNotFound, "path does not exist"
	case Is(err, fs.ErrExist):
		code, message = CodeAlreadyExists, "path already exists"
	case Is(err, fs.ErrPermission):
		code, message = CodePermissionDenied, "permission denied"
	case Is(err, syscall.ENOTDIR), Is(err, syscall.EISDIR):
		code, message = CodeInvalidFile, "wrong kind of file system entry"
	case Is(err, syscall.ENAMETOOLONG):
		code, message = CodeInvalidPath, "path too long"
	case Is(err, syscall.ENOMEM):
		code, message = CodeNotEnoughMemory, "out of memory"
	case Is(err, io.EOF), Is(err, io.ErrUnexpectedEOF):
		code, message = CodeEndOfStream, "end of stream"
	}

	return WithOp(Wrap(err, code, message), op, path)
}
