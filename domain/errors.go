package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which remote operation family a failure came from
type ErrorKind string

const (
	ErrorKindDetection     ErrorKind = "DetectionError"
	ErrorKindTranslation   ErrorKind = "TranslationError"
	ErrorKindTranscription ErrorKind = "TranscriptionError"
	ErrorKindSynthesis     ErrorKind = "SynthesisError"
	ErrorKindCompletion    ErrorKind = "CompletionError"
)

// ServiceError is the uniform failure envelope for every external call.
// Clients never let a transport or decoding failure escape in any other
// shape; callers branch on Kind with errors.As or KindOf.
type ServiceError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewServiceError creates a ServiceError wrapping an underlying cause
func NewServiceError(kind ErrorKind, detail string, err error) *ServiceError {
	return &ServiceError{
		Kind:   kind,
		Detail: detail,
		Err:    err,
	}
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from an error chain. The second return
// is false when the error did not originate from a service client.
func KindOf(err error) (ErrorKind, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind, true
	}
	return "", false
}
