package validation

import (
	"mime/multipart"
	"strconv"
	"strings"
	"unicode/utf8"

	"quiz-session/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	maxUploadBytes int64
}

// NewValidator creates a new validator instance. maxUploadBytes <= 0 disables the size check.
func NewValidator(maxUploadBytes int64) *Validator {
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// ValidateUpload validates the multipart file of an upload request
func (v *Validator) ValidateUpload(file *multipart.FileHeader) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if file == nil || strings.TrimSpace(file.Filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
		return errors
	}

	if !domain.IsSupportedDocument(file.Filename) {
		errors = append(errors, domain.NewInvalidFormatError("file", file.Filename))
	}
	if file.Size <= 0 {
		errors = append(errors, domain.ValidationError{Field: "file", Message: "is empty"})
	} else if v.maxUploadBytes > 0 && file.Size > v.maxUploadBytes {
		errors = append(errors, domain.NewOutOfRangeError("file", file.Size, 1, int(v.maxUploadBytes)))
	}

	return errors
}

// ValidateOptionsRequest validates generation options. A zero count means "use the default".
func (v *Validator) ValidateOptionsRequest(numQuestions int, userFocus string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if numQuestions != 0 && (numQuestions < domain.MinQuestions || numQuestions > domain.MaxQuestions) {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, domain.MinQuestions, domain.MaxQuestions))
	}
	if n := utf8.RuneCountInString(userFocus); n > domain.MaxUserFocusRunes {
		errors = append(errors, domain.NewOutOfRangeError("user_focus", n, 0, domain.MaxUserFocusRunes))
	}

	return errors
}

// ValidateAnswerIndex parses the question index path parameter
func (v *Validator) ValidateAnswerIndex(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("index")}
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("index", raw)}
	}
	return index, nil
}

// ValidateAnswerRequest validates the chosen option of an answer request.
// A blank option is a legitimate choice; only a missing one is rejected.
func (v *Validator) ValidateAnswerRequest(option *string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if option == nil {
		errors = append(errors, domain.NewMissingFieldError("option"))
	}

	return errors
}
