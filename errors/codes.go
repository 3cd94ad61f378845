package errors

// ErrorCode represents a specific outcome kind.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// CodeSuccess is reported by StatusOf for a nil error.
	// It is never carried by an error value.
	CodeSuccess ErrorCode = "SUCCESS"

	// Environment errors.

	// CodeFailure indicates a generic OS or device level failure.
	CodeFailure ErrorCode = "FAILURE"

	// CodeEndOfStream indicates a read reached the end of the stream.
	CodeEndOfStream ErrorCode = "END_OF_STREAM"

	// CodeReadFault indicates an unrecoverable read error.
	CodeReadFault ErrorCode = "READ_FAULT"

	// CodeWriteFault indicates an unrecoverable write error.
	CodeWriteFault ErrorCode = "WRITE_FAULT"

	// CodeNotFound indicates the path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the path already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodePermissionDenied indicates the OS refused access to the path.
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Caller errors.

	// CodeInvalidPath indicates a malformed or unusable path.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeInvalidFile indicates the path names the wrong kind of entry
	// or the file reports an impossible size.
	CodeInvalidFile ErrorCode = "INVALID_FILE"

	// CodeInvalidInput indicates an invalid argument other than a path.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Resource errors.

	// CodeNotEnoughMemory indicates a declared size exceeds what can be allocated.
	CodeNotEnoughMemory ErrorCode = "NOT_ENOUGH_MEMORY"

	// System errors.

	// CodeNotImplemented indicates the backend does not support the operation.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeInternal indicates an internal invariant was broken.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
