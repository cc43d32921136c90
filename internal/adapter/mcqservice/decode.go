package mcqservice

import (
	"bytes"
	"encoding/json"
	"fmt"

	"quiz-session/internal/domain"
)

// decodeGenerationBody decodes {"mcqs": ...}. The mcqs value is either an
// object keyed by question text, whose key order is the quiz order, or an
// explicit list of {question, options, correct_option, difficulty}.
func decodeGenerationBody(body []byte) (*domain.GenerationResponse, error) {
	var envelope struct {
		MCQs json.RawMessage `json:"mcqs"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.NewMalformedResponseError("generation response is not valid JSON", err)
	}

	raw := bytes.TrimSpace(envelope.MCQs)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, domain.NewMalformedResponseError("generation response has no mcqs", nil)
	}

	var (
		entries []domain.GenerationEntry
		err     error
	)
	switch raw[0] {
	case '{':
		entries, err = decodeOrderedObject(raw)
	case '[':
		err = json.Unmarshal(raw, &entries)
	default:
		err = fmt.Errorf("mcqs must be an object or a list, got %s", raw[:1])
	}
	if err != nil {
		return nil, domain.NewMalformedResponseError("generation response has malformed mcqs", err)
	}

	return &domain.GenerationResponse{Entries: entries}, nil
}

// decodeOrderedObject walks the object token by token so key order survives.
// A repeated key keeps its first position and takes the last value.
func decodeOrderedObject(raw []byte) ([]domain.GenerationEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var entries []domain.GenerationEntry
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		question, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var entry domain.GenerationEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("question %q: %w", question, err)
		}
		entry.Question = question

		if i, dup := seen[question]; dup {
			entries[i] = entry
			continue
		}
		seen[question] = len(entries)
		entries = append(entries, entry)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
