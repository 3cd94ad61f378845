package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat JSON representation of an error.
// The wrapped error chain is excluded.
type ErrorResponse struct {
	// Code is the status code.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification"`

	// Op is the storage operation that failed.
	Op string `json:"op,omitempty"`

	// Path is the path the operation was applied to.
	Path string `json:"path,omitempty"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON serialization.
// Returns nil if err is nil.
//
// For StorageError instances, extracts code, message, classification, op,
// path and context. For standard errors, uses CodeUnknown,
// ClassificationPermanent, and the error message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	response := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var se StorageError
	if As(err, &se) {
		response.Message = se.Message()
		response.Op = se.Op()
		response.Path = se.Path()
		response.Context = se.Context()
	}
	return response
}

// MarshalJSON implements json.Marshaler for storageError.
func (e *storageError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Op:             e.op,
		Path:           e.path,
		Context:        e.context,
	})
	if err != nil {
		return nil, &storageError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
