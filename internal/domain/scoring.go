package domain

// QuestionResult is the frozen review entry for one question.
type QuestionResult struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	ChosenAnswer  string   `json:"chosen_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// ScoredResult is the read-only outcome of a submission.
type ScoredResult struct {
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	PerQuestion []QuestionResult `json:"per_question"`
}

// Accuracy returns Score/Total, or 0 for an empty quiz.
func (r *ScoredResult) Accuracy() float64 {
	if r == nil || r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

// Incorrect returns the entries that were answered wrongly, in quiz order.
func (r *ScoredResult) Incorrect() []QuestionResult {
	if r == nil {
		return nil
	}
	var out []QuestionResult
	for _, q := range r.PerQuestion {
		if !q.IsCorrect {
			out = append(out, q)
		}
	}
	return out
}

// Clone returns a deep copy.
func (r *ScoredResult) Clone() *ScoredResult {
	if r == nil {
		return nil
	}
	out := &ScoredResult{Score: r.Score, Total: r.Total, PerQuestion: make([]QuestionResult, len(r.PerQuestion))}
	for i, q := range r.PerQuestion {
		q.Options = append([]string(nil), q.Options...)
		out.PerQuestion[i] = q
	}
	return out
}

// Score compares selections against the correct answers. A missing selection
// counts as an empty answer. The result shares no memory with its inputs.
func Score(quiz Quiz, selection Selection) *ScoredResult {
	result := &ScoredResult{
		Total:       quiz.Len(),
		PerQuestion: make([]QuestionResult, 0, quiz.Len()),
	}
	for i, q := range quiz.Questions() {
		chosen := selection[i]
		correct := Equals(chosen, q.CorrectAnswer)
		if correct {
			result.Score++
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: Normalize(q.CorrectAnswer),
			ChosenAnswer:  chosen,
			IsCorrect:     correct,
		})
	}
	return result
}
