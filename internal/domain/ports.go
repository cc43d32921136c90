package domain

import "context"

// GenerationRequest is one call to the generation service.
type GenerationRequest struct {
	File    UploadFile
	Options GenerationOptions
}

// QuizGenerator produces a quiz from an uploaded document.
// Implementations return *DomainError values coded NETWORK_FAILURE or
// MALFORMED_RESPONSE.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
}

// FeedbackProvider produces a narrative report for a scored quiz.
type FeedbackProvider interface {
	GenerateFeedback(ctx context.Context, payload *ResultPayload) (*FeedbackReport, error)
}
