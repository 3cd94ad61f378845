// Package errors provides the status taxonomy shared by every storage
// operation.
//
// Storage operations never panic and never terminate the process; failure is
// reported exclusively through a returned error. A nil error means success.
// Every non-nil error produced by this module is a StorageError carrying an
// ErrorCode that identifies the outcome kind, a classification used for retry
// decisions, and optional operation/path/context metadata. The package keeps
// full compatibility with the standard library errors package (errors.Is,
// errors.As, errors.Unwrap).
//
// # Status Taxonomy
//
// The minimum outcome set is:
//
//   - CodeFailure: generic environment failure (open, lock contention, rename)
//   - CodeNotFound: the path does not exist
//   - CodeInvalidPath: malformed or unusable path
//   - CodeInvalidFile: the path exists but is the wrong kind of entry
//   - CodeEndOfStream: a read hit the end of the stream before filling the buffer
//   - CodeReadFault / CodeWriteFault: unrecoverable device-level I/O error
//   - CodeNotEnoughMemory: declared size exceeds addressable capacity
//
// It is widened with CodeAlreadyExists, CodePermissionDenied,
// CodeInvalidInput, CodeNotImplemented, CodeInternal and CodeUnknown for
// richer diagnostics. Callers must not rely on finer granularity than the
// minimum set; every widened code maps to one of the three informal classes
// reported by ClassOf.
//
// # Quick Start
//
//	err := errors.New(errors.CodeInvalidPath, "path ascends past its root")
//
//	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
//	    return errors.WithOp(errors.Wrap(err, errors.CodeFailure, "file is locked"), "open_write", path)
//	}
//
//	switch errors.StatusOf(err) {
//	case errors.CodeSuccess:
//	case errors.CodeNotFound:
//	}
//
// # Classification
//
// Errors are classified as retryable or permanent. Everything is permanent by
// default; lock contention on write-open is reported as CodeFailure but marked
// retryable so callers can back off and try again.
//
// # End of Stream
//
// Errors carrying CodeEndOfStream created through EndOfStream wrap io.EOF, so
// errors.Is(err, io.EOF) holds for them.
package errors
