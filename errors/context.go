package errors

// WithOp records the operation and path on an error. An empty op or path
// leaves the existing value in place.
//
// If err is not a StorageError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WithOp(err, "open_read", path)
func WithOp(err error, op, path string) StorageError {
	if err == nil {
		return nil
	}
	se := asStorage(err)
	if op != "" {
		se.op = op
	}
	if path != "" {
		se.path = path
	}
	return se
}

// WithContext adds a single context field to an error.
// Existing context fields are preserved.
//
// If err is not a StorageError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContext(err error, key string, value interface{}) StorageError {
	if err == nil {
		return nil
	}
	se := asStorage(err)
	if se.context == nil {
		se.context = make(map[string]interface{}, 1)
	}
	se.context[key] = value
	return se
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not a StorageError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) StorageError {
	if err == nil {
		return nil
	}
	se := asStorage(err)
	if se.context == nil {
		se.context = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		se.context[k] = v
	}
	return se
}

// WithClassification overrides the classification of an error.
//
// This is how lock contention is marked: the code stays CodeFailure and the
// classification becomes ClassificationRetryable.
//
// If err is not a StorageError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) StorageError {
	if err == nil {
		return nil
	}
	se := asStorage(err)
	se.classification = classification
	return se
}
