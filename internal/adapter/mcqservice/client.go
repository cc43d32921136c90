// Package mcqservice talks to the remote MCQ generation and feedback service.
package mcqservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"quiz-session/internal/domain"

	"go.uber.org/zap"
)

const (
	GeneratePath = "/generate_mcq"
	FeedbackPath = "/generate_feedback"

	maxResponseBytes = 10 << 20
)

// Client implements domain.QuizGenerator and domain.FeedbackProvider over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new service client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("mcq service base URL cannot be empty")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateQuiz uploads the document and decodes the generated questions in
// the order the service listed them.
func (c *Client) GenerateQuiz(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	body, contentType, err := buildGenerationForm(req)
	if err != nil {
		return nil, domain.NewInternalError("failed to build upload form", err)
	}

	c.logger.Debug("Sending generation request",
		zap.String("file", req.File.Name),
		zap.Int("bytes", len(req.File.Content)),
		zap.Int("num_questions", req.Options.NumQuestions))

	respBody, err := c.do(ctx, GeneratePath, contentType, body, domain.MsgGenerationFailed)
	if err != nil {
		return nil, err
	}

	resp, err := decodeGenerationBody(respBody)
	if err != nil {
		c.logger.Warn("Generation response could not be decoded", zap.Error(err))
		return nil, err
	}

	c.logger.Info("Generation response received", zap.Int("questions", len(resp.Entries)))
	return resp, nil
}

// GenerateFeedback posts the scored result and returns the feedback report.
// Sections the service leaves out come back as empty strings.
func (c *Client) GenerateFeedback(ctx context.Context, payload *domain.ResultPayload) (*domain.FeedbackReport, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewInternalError("failed to marshal result payload", err)
	}

	respBody, err := c.do(ctx, FeedbackPath, "application/json", bytes.NewReader(raw), domain.MsgFeedbackFailed)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Feedback *domain.FeedbackReport `json:"feedback"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, domain.NewMalformedResponseError("feedback response is not valid JSON", err)
	}
	if envelope.Feedback == nil {
		return nil, domain.NewMalformedResponseError("feedback response has no feedback object", nil)
	}

	c.logger.Info("Feedback response received", zap.Bool("empty", envelope.Feedback.IsEmpty()))
	return envelope.Feedback, nil
}

// do posts body to path and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, fallbackMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, domain.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Service request failed", zap.String("path", path), zap.Error(err))
		return nil, domain.NewNetworkFailureError(domain.MsgConnectionError, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewNetworkFailureError(domain.MsgConnectionError, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("Service responded",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serviceErrorMessage(respBody, fallbackMsg)
		c.logger.Warn("Service returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg))
		return nil, domain.NewNetworkFailureError(msg, fmt.Errorf("%s returned status %d", path, resp.StatusCode))
	}

	return respBody, nil
}

func buildGenerationForm(req domain.GenerationRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(req.File.Name))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.File.Content); err != nil {
		return nil, "", err
	}
	if req.Options.NumQuestions > 0 {
		if err := w.WriteField("num_questions", strconv.Itoa(req.Options.NumQuestions)); err != nil {
			return nil, "", err
		}
	}
	if focus := strings.TrimSpace(req.Options.UserFocus); focus != "" {
		if err := w.WriteField("user_focus", focus); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// serviceErrorMessage extracts {"error": "..."} from an error body.
func serviceErrorMessage(body []byte, fallback string) string {
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil || strings.TrimSpace(errBody.Error) == "" {
		return fallback
	}
	return errBody.Error
}

var (
	_ domain.QuizGenerator    = (*Client)(nil)
	_ domain.FeedbackProvider = (*Client)(nil)
)
