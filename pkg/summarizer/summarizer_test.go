package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `user: the gateway keeps dropping refresh tokens under load
assistant: looking at the refresh path, the renewal is racing itself
user: can we serialize the renewals per account?
assistant: done, renewals now queue behind a per-account mutex and the gateway tests pass
`

func TestHeuristicSummarize(t *testing.T) {
	draft, err := Heuristic{}.Summarize(context.Background(), sampleTranscript)
	require.NoError(t, err)

	assert.NotEmpty(t, draft.Topic)
	assert.Contains(t, draft.Topic, "gateway")
	assert.NotEmpty(t, draft.Keywords)
	assert.LessOrEqual(t, len(draft.Keywords), maxHeuristicKeywords)
	assert.Contains(t, draft.Keywords, "renewals")
	assert.NotEmpty(t, draft.Outcome)
	assert.NotEmpty(t, draft.Summary)
}

func TestHeuristicSummarizeDeterministic(t *testing.T) {
	a, err := Heuristic{}.Summarize(context.Background(), sampleTranscript)
	require.NoError(t, err)
	b, err := Heuristic{}.Summarize(context.Background(), sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHeuristicSummarizeEmptyTranscript(t *testing.T) {
	_, err := Heuristic{}.Summarize(context.Background(), "   \n\n  ")
	assert.Error(t, err)
}

func TestOpenAISummarize(t *testing.T) {
	draftJSON, err := json.Marshal(map[string]interface{}{
		"topic":    "fix token refresh race",
		"keywords": []string{"auth", "refresh", "race"},
		"projects": []string{"api-gateway"},
		"outcome":  "Renewals serialized per account",
		"summary":  "- serialized token renewals\n- added gateway tests",
	})
	require.NoError(t, err)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": string(draftJSON)}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	s, err := NewOpenAI("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	draft, err := s.Summarize(context.Background(), sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "fix token refresh race", draft.Topic)
	assert.Equal(t, []string{"auth", "refresh", "race"}, draft.Keywords)
	assert.Equal(t, []string{"api-gateway"}, draft.Projects)
	assert.Equal(t, "Renewals serialized per account", draft.Outcome)
}

func TestOpenAISummarizeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	s, err := NewOpenAI("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), sampleTranscript)
	assert.ErrorContains(t, err, "status 429")
}

func TestOpenAISummarizeBadDraftJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "not json at all"}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	s, err := NewOpenAI("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), sampleTranscript)
	assert.ErrorContains(t, err, "parse draft JSON")
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAI("")
	assert.Error(t, err)
}
