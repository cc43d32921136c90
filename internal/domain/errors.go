package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"

	// Session specific errors
	ErrNoFileSelected       ErrorCode = "NO_FILE_SELECTED"
	ErrUnsupportedFile      ErrorCode = "UNSUPPORTED_FILE"
	ErrMalformedResponse    ErrorCode = "MALFORMED_RESPONSE"
	ErrNetworkFailure       ErrorCode = "NETWORK_FAILURE"
	ErrIncompleteSubmission ErrorCode = "INCOMPLETE_SUBMISSION"
	ErrInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrStaleResponse        ErrorCode = "STALE_RESPONSE"
)

// User-visible messages shown alongside the session state.
const (
	MsgSelectFile         = "Please select a file to upload."
	MsgGenerating         = "Generating MCQs... please wait."
	MsgGenerated          = "MCQs generated successfully."
	MsgGenerationFailed   = "Failed to generate MCQs."
	MsgConnectionError    = "Connection error. Check backend server."
	MsgFeedbackPending    = "Generating detailed feedback..."
	MsgFeedbackFailed     = "Failed to generate feedback."
	MsgAnswerAllQuestions = "Answer all questions before submitting."
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrNoFileSelectedSentinel       = &DomainError{Code: ErrNoFileSelected}
	ErrUnsupportedFileSentinel      = &DomainError{Code: ErrUnsupportedFile}
	ErrMalformedResponseSentinel    = &DomainError{Code: ErrMalformedResponse}
	ErrNetworkFailureSentinel       = &DomainError{Code: ErrNetworkFailure}
	ErrIncompleteSubmissionSentinel = &DomainError{Code: ErrIncompleteSubmission}
	ErrInvalidTransitionSentinel    = &DomainError{Code: ErrInvalidTransition}
	ErrStaleResponseSentinel        = &DomainError{Code: ErrStaleResponse}
	ErrInvalidInputSentinel         = &DomainError{Code: ErrInvalidInput}
)

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewNoFileSelectedError() *DomainError {
	return NewError(ErrNoFileSelected, MsgSelectFile, nil)
}

func NewUnsupportedFileError(name string) *DomainError {
	return NewError(ErrUnsupportedFile, fmt.Sprintf("Unsupported file: %q (supported: PDF, DOCX, PPTX)", name), nil)
}

func NewMalformedResponseError(message string, err error) *DomainError {
	return NewError(ErrMalformedResponse, message, err)
}

// NewNetworkFailureError wraps a transport error or a non-2xx reply. message is
// the user-visible text; the service's own error text is preferred when present.
func NewNetworkFailureError(message string, err error) *DomainError {
	return NewError(ErrNetworkFailure, message, err)
}

func NewIncompleteSubmissionError(answered, total int) *DomainError {
	return NewError(ErrIncompleteSubmission, fmt.Sprintf("%s (%d of %d answered)", MsgAnswerAllQuestions, answered, total), nil)
}

func NewInvalidTransitionError(action string, state string) *DomainError {
	return NewError(ErrInvalidTransition, fmt.Sprintf("cannot %s while session is %s", action, state), nil)
}

func NewStaleResponseError(operation string) *DomainError {
	return NewError(ErrStaleResponse, fmt.Sprintf("%s response arrived after restart and was discarded", operation), nil)
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects field-level validation failures.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %v", value)}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %v out of range [%d, %d]", value, min, max)}
}
