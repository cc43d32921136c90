package mcqservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-session/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base URL cannot be empty")

	custom := &http.Client{}
	c, err := NewClient("http://localhost:5000/", WithHTTPClient(custom), WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.baseURL)
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, 3*time.Second, custom.Timeout)
}

func TestClient_GenerateQuiz_SendsMultipartAndKeepsOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, GeneratePath, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "notes.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4 study notes", string(content))
		assert.Equal(t, "3", r.FormValue("num_questions"))
		assert.Equal(t, "photosynthesis", r.FormValue("user_focus"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"mcqs": {
			"Zeta question?": {"options": ["a", "b"], "correct_option": "a", "difficulty": "Easy"},
			"Alpha question?": {"options": ["c", "d"], "correct_option": "d", "difficulty": "Hard"},
			"Middle question?": {"options": ["e"], "correct_option": "e", "difficulty": "Medium"}
		}}`)
	})

	resp, err := c.GenerateQuiz(context.Background(), domain.GenerationRequest{
		File:    domain.UploadFile{Name: "/tmp/upload/notes.pdf", Content: []byte("%PDF-1.4 study notes")},
		Options: domain.GenerationOptions{NumQuestions: 3, UserFocus: " photosynthesis "},
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	assert.Equal(t, "Zeta question?", resp.Entries[0].Question)
	assert.Equal(t, "Alpha question?", resp.Entries[1].Question)
	assert.Equal(t, "Middle question?", resp.Entries[2].Question)
	assert.Equal(t, []string{"c", "d"}, resp.Entries[1].Options)
	require.NotNil(t, resp.Entries[1].CorrectOption)
	assert.Equal(t, "d", *resp.Entries[1].CorrectOption)
	assert.Equal(t, "Hard", resp.Entries[1].Difficulty)
}

func TestClient_GenerateQuiz_OmitsEmptyOptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasNum := r.MultipartForm.Value["num_questions"]
		_, hasFocus := r.MultipartForm.Value["user_focus"]
		assert.False(t, hasNum)
		assert.False(t, hasFocus)
		_, _ = io.WriteString(w, `{"mcqs": [{"question": "One?", "options": ["x"], "correct_option": "x"}]}`)
	})

	resp, err := c.GenerateQuiz(context.Background(), domain.GenerationRequest{
		File: domain.UploadFile{Name: "deck.pptx", Content: []byte("pk")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "One?", resp.Entries[0].Question)
}

func TestClient_GenerateQuiz_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "service error text", status: http.StatusBadRequest, body: `{"error": "No file uploaded"}`, wantMsg: "No file uploaded"},
		{name: "no error text", status: http.StatusInternalServerError, body: `oops`, wantMsg: domain.MsgGenerationFailed},
		{name: "blank error text", status: http.StatusBadGateway, body: `{"error": " "}`, wantMsg: domain.MsgGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GenerateQuiz(context.Background(), domain.GenerationRequest{File: domain.UploadFile{Name: "a.pdf", Content: []byte("x")}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNetworkFailureSentinel))

			var domainErr *domain.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantMsg, domainErr.Message)
		})
	}
}

func TestClient_GenerateQuiz_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.GenerateQuiz(context.Background(), domain.GenerationRequest{File: domain.UploadFile{Name: "a.pdf", Content: []byte("x")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetworkFailureSentinel))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.MsgConnectionError, domainErr.Message)
}

func TestClient_GenerateQuiz_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"mcqs": "not a map"}`)
	})

	_, err := c.GenerateQuiz(context.Background(), domain.GenerationRequest{File: domain.UploadFile{Name: "a.pdf", Content: []byte("x")}})
	assert.True(t, errors.Is(err, domain.ErrMalformedResponseSentinel))
}

func TestClient_GenerateFeedback(t *testing.T) {
	var received map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, FeedbackPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, `{"feedback": {"overall_performance": "Solid.", "strengths": "Arithmetic.", "next_steps": "Practice geography."}}`)
	})

	result := domain.Score(domain.NewQuiz([]domain.Question{{Text: "2+2=?", Options: []string{"3", "4"}, CorrectAnswer: "4"}}), domain.Selection{0: "4"})
	report, err := c.GenerateFeedback(context.Background(), domain.BuildResultPayload(result, "user-1"))
	require.NoError(t, err)

	assert.Equal(t, "Solid.", report.OverallPerformance)
	assert.Equal(t, "Arithmetic.", report.Strengths)
	assert.Equal(t, "", report.AreasForImprovement, "missing sections default to empty")
	assert.Equal(t, "", report.QuestionTypeBreakdown)
	assert.Equal(t, "Practice geography.", report.NextSteps)

	assert.Equal(t, "user-1", received["userID"])
	assert.Equal(t, float64(1), received["score"])
	assert.Equal(t, float64(1), received["total_questions"])
	assert.Equal(t, map[string]interface{}{}, received["multiple_correct"])
	assert.Equal(t, map[string]interface{}{}, received["fill_in_the_blanks"])
	assert.Equal(t, map[string]interface{}{}, received["true_false"])
}

func TestClient_GenerateFeedback_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   *domain.DomainError
	}{
		{name: "error status", status: http.StatusInternalServerError, body: `{"error": "Gemini quota exceeded"}`, want: domain.ErrNetworkFailureSentinel},
		{name: "missing feedback", status: http.StatusOK, body: `{"result": {}}`, want: domain.ErrMalformedResponseSentinel},
		{name: "invalid json", status: http.StatusOK, body: `{feedback`, want: domain.ErrMalformedResponseSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.GenerateFeedback(context.Background(), domain.BuildResultPayload(nil, "u"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestClient_RespectsContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GenerateFeedback(ctx, domain.BuildResultPayload(nil, "u"))
	assert.True(t, errors.Is(err, domain.ErrNetworkFailureSentinel))
	assert.True(t, errors.Is(err, context.Canceled))
}
