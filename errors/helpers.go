package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost StorageError in err's
// chain. Returns CodeUnknown if the error is nil or not a StorageError.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var se StorageError
	if stderrors.As(err, &se) {
		return se.Code()
	}
	return CodeUnknown
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent if the error is nil or not a StorageError.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var se StorageError
	if stderrors.As(err, &se) {
		return se.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if the error is nil or not a StorageError.
//
// Example:
//
//	for attempt := 0; ; attempt++ {
//	    s, err := backend.OpenWrite(path, false, false)
//	    if !errors.IsRetryable(err) || attempt == maxAttempts {
//	        return s, err
//	    }
//	    time.Sleep(backoff)
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
