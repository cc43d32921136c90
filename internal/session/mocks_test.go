package session

import (
	"context"

	"quiz-session/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationResponse), args.Error(1)
}

// --- MockFeedbackProvider ---
type MockFeedbackProvider struct {
	mock.Mock
}

func (m *MockFeedbackProvider) GenerateFeedback(ctx context.Context, payload *domain.ResultPayload) (*domain.FeedbackReport, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackReport), args.Error(1)
}

// blockingGenerator parks every call until release is closed, so tests can
// act on the machine while a generation is in flight.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	resp    *domain.GenerationResponse
	err     error
}

func newBlockingGenerator(resp *domain.GenerationResponse, err error) *blockingGenerator {
	return &blockingGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		resp:    resp,
		err:     err,
	}
}

func (g *blockingGenerator) GenerateQuiz(ctx context.Context, _ domain.GenerationRequest) (*domain.GenerationResponse, error) {
	g.started <- struct{}{}
	<-g.release
	return g.resp, g.err
}

// blockingFeedback is the feedback counterpart of blockingGenerator.
type blockingFeedback struct {
	started chan struct{}
	release chan struct{}
	report  *domain.FeedbackReport
	err     error
}

func newBlockingFeedback(report *domain.FeedbackReport, err error) *blockingFeedback {
	return &blockingFeedback{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		report:  report,
		err:     err,
	}
}

func (f *blockingFeedback) GenerateFeedback(ctx context.Context, _ *domain.ResultPayload) (*domain.FeedbackReport, error) {
	f.started <- struct{}{}
	<-f.release
	return f.report, f.err
}
