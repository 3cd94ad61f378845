package errors

// StatusOf maps an error to its status code. A nil error is CodeSuccess;
// an error without a StorageError in its chain is CodeUnknown.
func StatusOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}
	return GetCode(err)
}

// IsStatus reports whether err carries the given status code.
// IsStatus(nil, CodeSuccess) is true.
func IsStatus(err error, code ErrorCode) bool {
	return StatusOf(err) == code
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return IsStatus(err, CodeNotFound)
}

// IsEndOfStream reports whether err carries CodeEndOfStream.
func IsEndOfStream(err error) bool {
	return IsStatus(err, CodeEndOfStream)
}

// ClassOfError returns the informal class of err's status code.
func ClassOfError(err error) Class {
	return ClassOf(StatusOf(err))
}
