package errors

import "fmt"

// Wrap wraps an error with a code and message while preserving the original
// error. The wrapped error is accessible via Unwrap() and compatible with
// errors.Is and errors.As.
//
// If err already carries a StorageError, its classification is preserved and
// its operation and path are reported by the wrapper. Returns nil if err is nil.
//
// Example:
//
//	if err := unix.Fsync(fd); err != nil {
//	    return errors.Wrap(err, errors.CodeWriteFault, "failed to flush")
//	}
func Wrap(err error, code ErrorCode, message string) StorageError {
	if err == nil {
		return nil
	}

	wrapped := &storageError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
		cause:          err,
	}
	var inner StorageError
	if As(err, &inner) {
		wrapped.classification = inner.Classification()
	}
	return wrapped
}

// Wrapf wraps an error with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) StorageError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single
// operation. The context map is copied. Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeFailure, "copy failed", map[string]interface{}{
//	    "source": src,
//	    "target": dst,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) StorageError {
	if err == nil {
		return nil
	}
	wrapped, _ := Wrap(err, code, message).(*storageError)
	wrapped.context = copyContext(ctx)
	return wrapped
}
