package errors

import (
	"fmt"
	"io"
)

// New creates a new StorageError with the given code and message.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidPath, "path ascends past its root")
func New(code ErrorCode, message string) StorageError {
	return &storageError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new StorageError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeNotEnoughMemory, "file size %d exceeds limit %d", size, limit)
func Newf(code ErrorCode, format string, args ...interface{}) StorageError {
	return New(code, fmt.Sprintf(format, args...))
}

// EndOfStream returns a CodeEndOfStream error that wraps io.EOF.
// n is the number of bytes transferred before the end was reached.
func EndOfStream(n int) StorageError {
	return &storageError{
		code:           CodeEndOfStream,
		classification: ClassificationPermanent,
		message:        fmt.Sprintf("end of stream after %d bytes", n),
		cause:          io.EOF,
	}
}
