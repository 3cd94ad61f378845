package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry,
	// such as a write lock held by another process.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// getDefaultClassification returns the default classification for an error code.
// No storage code is retryable on its own; retryable errors are marked
// explicitly with WithClassification at the point the cause is known.
func getDefaultClassification(_ ErrorCode) ErrorClassification {
	return ClassificationPermanent
}

// Class groups error codes into the three informal classes callers reason about.
type Class string

const (
	// ClassNone is reported for CodeSuccess.
	ClassNone Class = "none"

	// ClassCaller covers malformed input: invalid paths, files and arguments.
	ClassCaller Class = "caller"

	// ClassEnvironment covers OS and device level outcomes.
	ClassEnvironment Class = "environment"

	// ClassResource covers allocation limits.
	ClassResource Class = "resource"
)

var codeClasses = map[ErrorCode]Class{
	CodeSuccess: ClassNone,

	CodeInvalidPath:  ClassCaller,
	CodeInvalidFile:  ClassCaller,
	CodeInvalidInput: ClassCaller,

	CodeFailure:          ClassEnvironment,
	CodeEndOfStream:      ClassEnvironment,
	CodeReadFault:        ClassEnvironment,
	CodeWriteFault:       ClassEnvironment,
	CodeNotFound:         ClassEnvironment,
	CodeAlreadyExists:    ClassEnvironment,
	CodePermissionDenied: ClassEnvironment,
	CodeNotImplemented:   ClassEnvironment,
	CodeInternal:         ClassEnvironment,
	CodeUnknown:          ClassEnvironment,

	CodeNotEnoughMemory: ClassResource,
}

// ClassOf returns the informal class of an error code.
// Unknown codes are treated as environment errors.
func ClassOf(code ErrorCode) Class {
	if class, ok := codeClasses[code]; ok {
		return class
	}
	return ClassEnvironment
}
