package dto

import (
	"encoding/json"
	"testing"

	"quiz-session/internal/domain"
	"quiz-session/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answeringSnapshot() session.Snapshot {
	return session.Snapshot{
		SessionID: "01HZX3Q9V1C8WQ5D1R0P7J6K2M",
		State:     session.StateAnswering,
		FileName:  "notes.pdf",
		Questions: []domain.Question{
			{Text: "2+2=?", Options: []string{"3", "4"}, CorrectAnswer: " 4 ", Difficulty: "Easy"},
		},
		Selection: domain.Selection{0: "4"},
		CanSubmit: true,
		Message:   domain.MsgGenerated,
	}
}

func TestNewSessionResponse_HidesAnswersWhileAnswering(t *testing.T) {
	resp := NewSessionResponse(answeringSnapshot())

	require.Len(t, resp.Questions, 1)
	assert.Empty(t, resp.Questions[0].CorrectOption)
	assert.Equal(t, map[string]string{"0": "4"}, resp.Selections)
	assert.Nil(t, resp.Result)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "correct_option")
	assert.Contains(t, string(body), `"state":"answering"`)
	assert.Contains(t, string(body), `"feedback":null`)
}

func TestNewSessionResponse_RevealsAnswersAfterScoring(t *testing.T) {
	snap := answeringSnapshot()
	snap.State = session.StateComplete
	snap.CanSubmit = false
	snap.Result = domain.Score(domain.NewQuiz(snap.Questions), snap.Selection)
	snap.Err = domain.NewNetworkFailureError(domain.MsgFeedbackFailed, nil)

	resp := NewSessionResponse(snap)

	assert.Equal(t, "4", resp.Questions[0].CorrectOption)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, resp.Result.Score)
	assert.Equal(t, 1, resp.Result.Total)
	assert.InDelta(t, 1.0, resp.Result.Accuracy, 1e-9)
	require.Len(t, resp.Result.PerQuestion, 1)
	assert.True(t, resp.Result.PerQuestion[0].IsCorrect)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"error":{"code":"NETWORK_FAILURE","message":"Failed to generate feedback."}`)
}

func TestNewSessionResponse_EmptySession(t *testing.T) {
	resp := NewSessionResponse(session.Snapshot{SessionID: "s", State: session.StateIdle})

	assert.NotNil(t, resp.Questions)
	assert.NotNil(t, resp.Selections)
	assert.Nil(t, resp.Error)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"questions":[]`)
	assert.Contains(t, string(body), `"error":null`)
}
