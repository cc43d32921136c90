// Package session drives a single quiz attempt from document upload to
// scored result and feedback.
package session

import (
	"context"
	"errors"
	"sync"

	"quiz-session/internal/domain"
	"quiz-session/internal/util"

	"go.uber.org/zap"
)

// State is the lifecycle stage of the session.
type State string

const (
	StateIdle            State = "idle"
	StateGenerating      State = "generating"
	StateAnswering       State = "answering"
	StateScoring         State = "scoring"
	StateFeedbackPending State = "feedback_pending"
	StateComplete        State = "complete"
)

// InFlight reports whether a network request belongs to this state.
func (s State) InFlight() bool {
	return s == StateGenerating || s == StateFeedbackPending
}

// session is the aggregate owned by the Machine. It is replaced wholesale on restart.
type session struct {
	id      string
	state   State
	file    *domain.UploadFile
	options domain.GenerationOptions
	attempt *domain.Attempt
	result  *domain.ScoredResult
	report  *domain.FeedbackReport
	message string
	lastErr *domain.DomainError
}

// Machine is the session state machine. Events are applied one at a time;
// network calls run outside the lock so Restart and Snapshot stay responsive.
type Machine struct {
	generator domain.QuizGenerator
	feedback  domain.FeedbackProvider
	userID    string
	defaults  domain.GenerationOptions
	logger    *zap.Logger
	newID     func() string

	mu sync.Mutex
	// epoch increments on every restart; a response whose epoch no longer
	// matches belongs to a discarded session.
	epoch uint64
	s     *session
}

// Option configures the Machine
type Option func(*Machine)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithUserID sets the identity sent with feedback requests.
func WithUserID(userID string) Option {
	return func(m *Machine) {
		m.userID = userID
	}
}

// WithDefaultOptions sets the generation options used when the user sets none.
func WithDefaultOptions(opts domain.GenerationOptions) Option {
	return func(m *Machine) {
		m.defaults = opts
	}
}

// WithIDGenerator replaces the session ID source.
func WithIDGenerator(newID func() string) Option {
	return func(m *Machine) {
		m.newID = newID
	}
}

// NewMachine creates a Machine in the Idle state.
func NewMachine(generator domain.QuizGenerator, feedback domain.FeedbackProvider, opts ...Option) *Machine {
	m := &Machine{
		generator: generator,
		feedback:  feedback,
		logger:    zap.NewNop(),
		newID:     util.NewSessionID,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.s = m.newSession()
	return m
}

func (m *Machine) newSession() *session {
	return &session{id: m.newID(), state: StateIdle}
}

func (m *Machine) log() *zap.Logger {
	return m.logger.With(zap.String("session_id", m.s.id), zap.String("state", string(m.s.state)))
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.state
}

// SelectFile stores the document to generate from. Only valid while Idle.
// An invalid file is rejected and the previous selection is kept.
func (m *Machine) SelectFile(file domain.UploadFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.s.state != StateIdle {
		return m.reject("select a file")
	}
	if err := file.Validate(); err != nil {
		m.fail(err)
		return err
	}

	stored := domain.UploadFile{Name: file.Name, Content: append([]byte(nil), file.Content...)}
	m.s.file = &stored
	m.s.message = ""
	m.s.lastErr = nil
	m.log().Info("File selected", zap.String("file", file.Name), zap.Int("bytes", len(file.Content)))
	return nil
}

// SetOptions stores the generation options. Only valid while Idle.
func (m *Machine) SetOptions(opts domain.GenerationOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.s.state != StateIdle {
		return m.reject("change generation options")
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	m.s.options = opts
	return nil
}

// Generate requests a quiz for the selected file and blocks until the reply
// has been applied. Calling it while a generation is already in flight is a
// no-op. A reply that arrives after Restart is discarded and reported as
// STALE_RESPONSE.
func (m *Machine) Generate(ctx context.Context) error {
	m.mu.Lock()
	switch m.s.state {
	case StateGenerating:
		m.log().Debug("Generate ignored, request already in flight")
		m.mu.Unlock()
		return nil
	case StateIdle:
	default:
		err := m.reject("generate a quiz")
		m.mu.Unlock()
		return err
	}
	if m.s.file == nil {
		err := domain.NewNoFileSelectedError()
		m.fail(err)
		m.mu.Unlock()
		return err
	}

	req := domain.GenerationRequest{
		File:    *m.s.file,
		Options: m.s.options.WithDefaults(m.defaults),
	}
	epoch, origin := m.epoch, m.s.id
	m.s.state = StateGenerating
	m.s.message = domain.MsgGenerating
	m.s.lastErr = nil
	m.log().Info("Generation requested",
		zap.String("file", req.File.Name),
		zap.Int("num_questions", req.Options.NumQuestions))
	m.mu.Unlock()

	resp, genErr := m.generator.GenerateQuiz(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		m.discardStale(origin, "generation", genErr)
		return domain.NewStaleResponseError("generation")
	}
	if genErr != nil {
		m.s.state = StateIdle
		return m.fail(asNetworkError(genErr))
	}

	quiz, err := domain.LoadQuiz(resp)
	if err != nil {
		m.s.state = StateIdle
		return m.fail(err)
	}

	m.s.attempt = domain.NewAttempt(quiz)
	m.s.state = StateAnswering
	m.s.message = domain.MsgGenerated
	m.log().Info("Quiz loaded", zap.Int("questions", quiz.Len()))
	return nil
}

// SelectOption records the answer for the question at index. Only valid while Answering.
func (m *Machine) SelectOption(index int, option string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.s.state != StateAnswering {
		return m.reject("select an option")
	}
	return m.s.attempt.RecordSelection(index, option)
}

// Submit scores the attempt, then requests feedback and blocks until the
// reply has been applied. Scoring cannot fail; once it has run the session
// always reaches Complete, with the feedback report absent if the request
// failed. The feedback error is still returned so callers can surface it.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.s.state != StateAnswering {
		err := m.reject("submit answers")
		m.mu.Unlock()
		return err
	}
	if !m.s.attempt.IsComplete() {
		err := domain.NewIncompleteSubmissionError(m.s.attempt.Answered(), m.s.attempt.Quiz().Len())
		m.s.message = domain.MsgAnswerAllQuestions
		m.mu.Unlock()
		return err
	}

	m.s.state = StateScoring
	result := domain.Score(m.s.attempt.Quiz(), m.s.attempt.Selection())
	m.s.result = result
	payload := domain.BuildResultPayload(result, m.userID)

	m.s.state = StateFeedbackPending
	m.s.message = domain.MsgFeedbackPending
	m.s.lastErr = nil
	epoch, origin := m.epoch, m.s.id
	m.log().Info("Answers scored", zap.Int("score", result.Score), zap.Int("total", result.Total))
	m.mu.Unlock()

	report, fbErr := m.feedback.GenerateFeedback(ctx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		m.discardStale(origin, "feedback", fbErr)
		return domain.NewStaleResponseError("feedback")
	}

	m.s.state = StateComplete
	if fbErr == nil && report == nil {
		fbErr = domain.NewMalformedResponseError("feedback service returned no report", nil)
	}
	if fbErr != nil {
		return m.fail(asNetworkError(fbErr))
	}

	stored := *report
	m.s.report = &stored
	m.s.message = ""
	m.log().Info("Feedback attached")
	return nil
}

// Restart discards everything and returns to Idle. It is valid in every
// state; an in-flight request is not aborted, but its reply will be ignored.
func (m *Machine) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.s
	m.epoch++
	m.s = m.newSession()
	m.logger.Info("Session restarted",
		zap.String("previous_session_id", prev.id),
		zap.String("previous_state", string(prev.state)),
		zap.String("session_id", m.s.id))
}

// discardStale logs a reply that belongs to the session origin, which has
// since been replaced. The caller must hold m.mu.
func (m *Machine) discardStale(origin, operation string, replyErr error) {
	m.logger.Warn("Discarding response from a restarted session",
		zap.String("session_id", origin),
		zap.String("current_session_id", m.s.id),
		zap.String("operation", operation),
		zap.Error(replyErr))
}

// reject builds an INVALID_TRANSITION error without touching the session.
// The caller must hold m.mu.
func (m *Machine) reject(action string) error {
	err := domain.NewInvalidTransitionError(action, string(m.s.state))
	m.log().Debug("Transition rejected", zap.String("action", action))
	return err
}

// fail records err as the user-visible error and returns it.
// The caller must hold m.mu.
func (m *Machine) fail(err error) error {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalError("unexpected error", err)
	}
	m.s.lastErr = domainErr
	m.s.message = domainErr.Message
	m.log().Warn("Session error", zap.String("code", string(domainErr.Code)), zap.Error(err))
	return err
}

// asNetworkError keeps domain errors as they are and treats anything else
// from a collaborator as a connection failure.
func asNetworkError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewNetworkFailureError(domain.MsgConnectionError, err)
}
