package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	MinQuestions      = 1
	MaxQuestions      = 50
	MaxUserFocusRunes = 500
)

// SupportedExtensions lists the document types the generation service reads.
var SupportedExtensions = []string{".pdf", ".docx", ".pptx"}

// UploadFile is a study document selected for quiz generation.
type UploadFile struct {
	Name    string
	Content []byte
}

// Validate rejects empty files and unsupported document types.
func (f UploadFile) Validate() error {
	if len(f.Content) == 0 {
		return NewError(ErrUnsupportedFile, fmt.Sprintf("File %q is empty", f.Name), nil)
	}
	if !IsSupportedDocument(f.Name) {
		return NewUnsupportedFileError(f.Name)
	}
	return nil
}

// IsSupportedDocument reports whether name has one of SupportedExtensions, ignoring case.
func IsSupportedDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// GenerationOptions are the optional knobs of a generation request.
// A zero NumQuestions means "use the configured default".
type GenerationOptions struct {
	NumQuestions int    `json:"num_questions"`
	UserFocus    string `json:"user_focus"`
}

// Validate checks the option ranges.
func (o GenerationOptions) Validate() error {
	if o.NumQuestions != 0 && (o.NumQuestions < MinQuestions || o.NumQuestions > MaxQuestions) {
		return NewInvalidInputError(fmt.Sprintf("num_questions must be within [%d, %d], got %d", MinQuestions, MaxQuestions, o.NumQuestions))
	}
	if utf8.RuneCountInString(o.UserFocus) > MaxUserFocusRunes {
		return NewInvalidInputError(fmt.Sprintf("user_focus must be at most %d characters", MaxUserFocusRunes))
	}
	return nil
}

// WithDefaults fills unset fields from defaults.
func (o GenerationOptions) WithDefaults(defaults GenerationOptions) GenerationOptions {
	if o.NumQuestions == 0 {
		o.NumQuestions = defaults.NumQuestions
	}
	if strings.TrimSpace(o.UserFocus) == "" {
		o.UserFocus = defaults.UserFocus
	}
	return o
}
