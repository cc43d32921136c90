package mcqservice

import (
	"errors"
	"testing"

	"quiz-session/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGenerationBody(t *testing.T) {
	t.Run("object keeps key order", func(t *testing.T) {
		resp, err := decodeGenerationBody([]byte(`{"mcqs": {"b": {"options": ["1"], "correct_option": "1"}, "a": {"options": ["2"], "correct_option": "2"}}}`))
		require.NoError(t, err)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "b", resp.Entries[0].Question)
		assert.Equal(t, "a", resp.Entries[1].Question)
	})

	t.Run("duplicate key keeps first position and last value", func(t *testing.T) {
		resp, err := decodeGenerationBody([]byte(`{"mcqs": {
			"q1": {"options": ["old"], "correct_option": "old"},
			"q2": {"options": ["x"], "correct_option": "x"},
			"q1": {"options": ["new"], "correct_option": "new"}
		}}`))
		require.NoError(t, err)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "q1", resp.Entries[0].Question)
		assert.Equal(t, []string{"new"}, resp.Entries[0].Options)
		assert.Equal(t, "q2", resp.Entries[1].Question)
	})

	t.Run("missing fields stay absent", func(t *testing.T) {
		resp, err := decodeGenerationBody([]byte(`{"mcqs": {"q": {"difficulty": "Easy"}}}`))
		require.NoError(t, err)
		require.Len(t, resp.Entries, 1)
		assert.Nil(t, resp.Entries[0].Options)
		assert.Nil(t, resp.Entries[0].CorrectOption)

		_, err = domain.LoadQuiz(resp)
		assert.True(t, errors.Is(err, domain.ErrMalformedResponseSentinel))
	})

	t.Run("explicit list", func(t *testing.T) {
		resp, err := decodeGenerationBody([]byte(`{"mcqs": [
			{"question": "second?", "options": ["a"], "correct_option": "a"},
			{"question": "first?", "options": ["b"], "correct_option": "b", "difficulty": "Hard"}
		]}`))
		require.NoError(t, err)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "second?", resp.Entries[0].Question)
		assert.Equal(t, "Hard", resp.Entries[1].Difficulty)
	})

	malformed := map[string]string{
		"not json":         `<html>`,
		"no mcqs":          `{"questions": {}}`,
		"null mcqs":        `{"mcqs": null}`,
		"scalar mcqs":      `{"mcqs": 42}`,
		"options string":   `{"mcqs": {"q": {"options": "a,b", "correct_option": "a"}}}`,
		"entry not object": `{"mcqs": {"q": "a"}}`,
	}
	for name, body := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := decodeGenerationBody([]byte(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedResponseSentinel))
		})
	}
}
