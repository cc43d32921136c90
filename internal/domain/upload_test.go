package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadFile_Validate(t *testing.T) {
	content := []byte("data")
	for _, name := range []string{"notes.pdf", "Notes.PDF", "essay.docx", "deck.pptx", "dir/sub/File.Docx"} {
		assert.NoError(t, UploadFile{Name: name, Content: content}.Validate(), name)
	}

	for _, name := range []string{"notes.txt", "archive.pdf.zip", "noext", ""} {
		err := UploadFile{Name: name, Content: content}.Validate()
		assert.True(t, errors.Is(err, ErrUnsupportedFileSentinel), name)
	}

	err := UploadFile{Name: "empty.pdf"}.Validate()
	assert.True(t, errors.Is(err, ErrUnsupportedFileSentinel))
	assert.Contains(t, err.Error(), "empty")
}

func TestIsSupportedDocument(t *testing.T) {
	tests := map[string]bool{
		"notes.pdf":       true,
		"Slides.PPTX":     true,
		"essay.Docx":      true,
		"notes.txt":       false,
		"archive.pdf.zip": false,
		"pdf":             false,
		"":                false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsSupportedDocument(name), name)
	}
}

func TestGenerationOptions_Validate(t *testing.T) {
	assert.NoError(t, GenerationOptions{}.Validate())
	assert.NoError(t, GenerationOptions{NumQuestions: 1}.Validate())
	assert.NoError(t, GenerationOptions{NumQuestions: 50, UserFocus: strings.Repeat("é", 500)}.Validate())

	assert.True(t, errors.Is(GenerationOptions{NumQuestions: 51}.Validate(), ErrInvalidInputSentinel))
	assert.True(t, errors.Is(GenerationOptions{NumQuestions: -1}.Validate(), ErrInvalidInputSentinel))
	assert.True(t, errors.Is(GenerationOptions{UserFocus: strings.Repeat("a", 501)}.Validate(), ErrInvalidInputSentinel))
}

func TestGenerationOptions_WithDefaults(t *testing.T) {
	defaults := GenerationOptions{NumQuestions: 10, UserFocus: "biology"}

	assert.Equal(t, defaults, GenerationOptions{}.WithDefaults(defaults))
	assert.Equal(t, GenerationOptions{NumQuestions: 3, UserFocus: "cells"},
		GenerationOptions{NumQuestions: 3, UserFocus: "cells"}.WithDefaults(defaults))
	assert.Equal(t, GenerationOptions{NumQuestions: 3, UserFocus: "biology"},
		GenerationOptions{NumQuestions: 3, UserFocus: "  "}.WithDefaults(defaults))
}
