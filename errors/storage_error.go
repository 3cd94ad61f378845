package errors

import (
	"fmt"
	"strings"
)

// StorageError extends the standard error interface with the outcome of a
// storage operation.
//
// StorageError provides an error code for the status taxonomy, a
// classification for retry logic, the operation and path that failed,
// contextual metadata, and compatibility with standard library error
// handling (errors.Is, errors.As, errors.Unwrap).
type StorageError interface {
	error

	// Code returns the error code identifying the outcome kind.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Op returns the storage operation that failed, or "" if unset.
	Op() string

	// Path returns the path the operation was applied to, or "" if unset.
	Path() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	Unwrap() error
}

// storageError is the concrete implementation of StorageError.
// It is private to enforce construction through package functions.
type storageError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	op             string
	path           string
	context        map[string]interface{}
	cause          error
}

// Error returns the string representation of the error.
// Format: "[CODE] op path: message: cause", omitting empty parts.
func (e *storageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.code)
	if e.op != "" {
		b.WriteString(" ")
		b.WriteString(e.op)
	}
	if e.path != "" {
		fmt.Fprintf(&b, " %q", e.path)
	}
	if e.op != "" || e.path != "" {
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(e.message)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *storageError) Code() ErrorCode {
	return e.code
}

func (e *storageError) Classification() ErrorClassification {
	return e.classification
}

func (e *storageError) Message() string {
	return e.message
}

// Op returns the recorded operation, falling back to the wrapped error's.
func (e *storageError) Op() string {
	if e.op == "" {
		var inner StorageError
		if e.cause != nil && As(e.cause, &inner) {
			return inner.Op()
		}
	}
	return e.op
}

// Path returns the recorded path, falling back to the wrapped error's.
func (e *storageError) Path() string {
	if e.path == "" {
		var inner StorageError
		if e.cause != nil && As(e.cause, &inner) {
			return inner.Path()
		}
	}
	return e.path
}

// Context returns a copy of the context map, or nil if none is attached.
func (e *storageError) Context() map[string]interface{} {
	return copyContext(e.context)
}

func (e *storageError) Unwrap() error {
	return e.cause
}

// clone returns a shallow copy of e with its own context map.
func (e *storageError) clone() *storageError {
	c := *e
	c.context = copyContext(e.context)
	return &c
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

// asStorage returns a copy of the first StorageError in err's chain.
// Errors from outside the package are converted with CodeUnknown.
func asStorage(err error) *storageError {
	if se, ok := err.(*storageError); ok {
		return se.clone()
	}
	var inner StorageError
	if As(err, &inner) {
		return &storageError{
			code:           inner.Code(),
			classification: inner.Classification(),
			message:        inner.Message(),
			op:             inner.Op(),
			path:           inner.Path(),
			context:        inner.Context(),
			cause:          inner.Unwrap(),
		}
	}
	return &storageError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
