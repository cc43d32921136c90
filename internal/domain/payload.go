package domain

// MCQResult is one multiple-choice entry of the feedback request.
type MCQResult struct {
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
	ChosenOption  string   `json:"chosen_option"`
	IsCorrect     bool     `json:"is_correct"`
}

// ResultPayload is the request body of the feedback service.
//
// MultipleCorrect, FillInTheBlanks and TrueFalse are reserved for question
// types the generator does not produce yet. The feedback service requires
// them to be present, so they are always sent as empty objects.
type ResultPayload struct {
	UserID          string                 `json:"userID"`
	Score           int                    `json:"score"`
	TotalQuestions  int                    `json:"total_questions"`
	MCQ             map[string]MCQResult   `json:"mcq"`
	MultipleCorrect map[string]interface{} `json:"multiple_correct"`
	FillInTheBlanks map[string]interface{} `json:"fill_in_the_blanks"`
	TrueFalse       map[string]interface{} `json:"true_false"`
}

// BuildResultPayload assembles the feedback request for a scored quiz.
// Correctness is taken from the scored result so the payload can never
// disagree with the score shown to the user.
func BuildResultPayload(result *ScoredResult, userID string) *ResultPayload {
	payload := &ResultPayload{
		UserID:          userID,
		MCQ:             make(map[string]MCQResult),
		MultipleCorrect: make(map[string]interface{}),
		FillInTheBlanks: make(map[string]interface{}),
		TrueFalse:       make(map[string]interface{}),
	}
	if result == nil {
		return payload
	}

	payload.Score = result.Score
	payload.TotalQuestions = result.Total
	for _, q := range result.PerQuestion {
		payload.MCQ[q.Question] = MCQResult{
			Options:       append([]string(nil), q.Options...),
			CorrectOption: Normalize(q.CorrectAnswer),
			ChosenOption:  Normalize(q.ChosenAnswer),
			IsCorrect:     q.IsCorrect,
		}
	}
	return payload
}
