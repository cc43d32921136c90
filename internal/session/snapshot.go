package session

import "quiz-session/internal/domain"

// Snapshot is a read-only copy of the session. Mutating it has no effect on
// the Machine.
type Snapshot struct {
	SessionID string
	State     State
	FileName  string
	Options   domain.GenerationOptions
	Questions []domain.Question
	Selection domain.Selection
	CanSubmit bool
	Result    *domain.ScoredResult
	Feedback  *domain.FeedbackReport
	Message   string
	Err       *domain.DomainError
}

// HasQuiz reports whether a quiz is loaded.
func (s Snapshot) HasQuiz() bool {
	return len(s.Questions) > 0
}

// Snapshot returns a deep copy of the current session.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.s
	snap := Snapshot{
		SessionID: s.id,
		State:     s.state,
		Options:   s.options,
		Selection: domain.Selection{},
		Message:   s.message,
	}
	if s.file != nil {
		snap.FileName = s.file.Name
	}
	if s.attempt != nil {
		snap.Questions = s.attempt.Quiz().Questions()
		snap.Selection = s.attempt.Selection()
		snap.CanSubmit = s.state == StateAnswering && s.attempt.IsComplete()
	}
	if s.result != nil {
		snap.Result = s.result.Clone()
	}
	if s.report != nil {
		report := *s.report
		snap.Feedback = &report
	}
	if s.lastErr != nil {
		e := *s.lastErr
		snap.Err = &e
	}
	return snap
}
