package dto

import (
	"strconv"

	"quiz-session/internal/domain"
	"quiz-session/internal/session"
)

// OptionsRequest is the body of PUT /api/session/options
type OptionsRequest struct {
	NumQuestions int    `json:"num_questions"`
	UserFocus    string `json:"user_focus"`
}

// AnswerRequest is the body of PUT /api/session/answers/:index
type AnswerRequest struct {
	Option *string `json:"option"`
}

// QuestionResponse is a question as shown while answering.
// CorrectOption is only filled once the session has been scored.
type QuestionResponse struct {
	Index         int      `json:"index"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Difficulty    string   `json:"difficulty"`
	CorrectOption string   `json:"correct_option,omitempty"`
}

// QuestionResultResponse is one reviewed question of the scored result
type QuestionResultResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	ChosenAnswer  string   `json:"chosen_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// ResultResponse is the scored result
type ResultResponse struct {
	Score       int                      `json:"score"`
	Total       int                      `json:"total"`
	Accuracy    float64                  `json:"accuracy"`
	PerQuestion []QuestionResultResponse `json:"per_question"`
}

// SessionResponse is the session snapshot returned by every session route
type SessionResponse struct {
	SessionID  string                 `json:"session_id"`
	State      string                 `json:"state"`
	FileName   string                 `json:"file_name,omitempty"`
	Options    OptionsRequest         `json:"options"`
	Questions  []QuestionResponse     `json:"questions"`
	Selections map[string]string      `json:"selections"`
	CanSubmit  bool                   `json:"can_submit"`
	Result     *ResultResponse        `json:"result"`
	Feedback   *domain.FeedbackReport `json:"feedback"`
	Message    string                 `json:"message,omitempty"`
	Error      *domain.DomainError    `json:"error"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Details []domain.ValidationError `json:"details,omitempty"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}

// NewSessionResponse converts a snapshot to its wire form.
func NewSessionResponse(snap session.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		SessionID: snap.SessionID,
		State:     string(snap.State),
		FileName:  snap.FileName,
		Options: OptionsRequest{
			NumQuestions: snap.Options.NumQuestions,
			UserFocus:    snap.Options.UserFocus,
		},
		Questions:  make([]QuestionResponse, 0, len(snap.Questions)),
		Selections: make(map[string]string, len(snap.Selection)),
		CanSubmit:  snap.CanSubmit,
		Feedback:   snap.Feedback,
		Message:    snap.Message,
		Error:      snap.Err,
	}

	revealAnswers := snap.Result != nil
	for i, q := range snap.Questions {
		qr := QuestionResponse{
			Index:      i,
			Question:   q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		}
		if revealAnswers {
			qr.CorrectOption = domain.Normalize(q.CorrectAnswer)
		}
		resp.Questions = append(resp.Questions, qr)
	}
	for index, option := range snap.Selection {
		resp.Selections[strconv.Itoa(index)] = option
	}

	if r := snap.Result; r != nil {
		result := &ResultResponse{
			Score:       r.Score,
			Total:       r.Total,
			Accuracy:    r.Accuracy(),
			PerQuestion: make([]QuestionResultResponse, 0, len(r.PerQuestion)),
		}
		for _, q := range r.PerQuestion {
			result.PerQuestion = append(result.PerQuestion, QuestionResultResponse(q))
		}
		resp.Result = result
	}
	return resp
}
