package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"
)

// DefaultBaseURL is the default OpenAI API base URL.
const DefaultBaseURL = "https://api.openai.com/v1"

const draftSystemPrompt = `You summarize AI coding work sessions for later retrieval.
Given a raw session transcript, respond with a JSON object holding exactly these keys:
  "topic":    short lowercase phrase naming the session's subject (a few words)
  "keywords": array of 3-8 search keywords you are confident describe the session
  "projects": array of project or component names touched, possibly empty
  "outcome":  one sentence stating what the session achieved or where it stopped
  "summary":  markdown bullet list of the important decisions, changes, and open threads
Respond with the JSON object only.`

// OpenAI is a Summarizer backed by an OpenAI-compatible chat
// completions endpoint.
type OpenAI struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// OpenAIOption configures an OpenAI summarizer.
type OpenAIOption func(*OpenAI)

// WithModel sets the model used for drafting.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		o.model = model
	}
}

// WithBaseURL points the summarizer at a compatible non-OpenAI
// endpoint (Azure, local models, proxies).
func WithBaseURL(baseURL string) OpenAIOption {
	return func(o *OpenAI) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(o *OpenAI) {
		o.httpClient = c
	}
}

// NewOpenAI creates an OpenAI summarizer. An empty apiKey falls back
// to the OPENAI_API_KEY environment variable; a key is required.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("summarizer: OpenAI API key is required (parameter or OPENAI_API_KEY)")
	}
	o := &OpenAI{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      "gpt-4o-mini",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// draftPayload is the JSON shape the model is instructed to emit.
type draftPayload struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
	Projects []string `json:"projects"`
	Outcome  string   `json:"outcome"`
	Summary  string   `json:"summary"`
}

// Summarize implements Summarizer via a single non-streaming chat
// completion with a strict-JSON response format.
func (o *OpenAI) Summarize(ctx context.Context, transcript string) (*Draft, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("summarizer: empty transcript")
	}
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(draftSystemPrompt),
		openai.UserMessage(transcript),
	}
	reqBody := map[string]interface{}{
		"model":       o.model,
		"messages":    messages,
		"temperature": 0.2,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("summarizer: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("summarizer: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summarizer: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("summarizer: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("summarizer: API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("summarizer: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("summarizer: empty choices in response")
	}
	content := strings.TrimSpace(decoded.Choices[0].Message.Content)

	var payload draftPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("summarizer: parse draft JSON: %w", err)
	}
	if payload.Topic == "" {
		return nil, fmt.Errorf("summarizer: draft is missing a topic")
	}
	return &Draft{
		Topic:    payload.Topic,
		Keywords: payload.Keywords,
		Projects: payload.Projects,
		Outcome:  payload.Outcome,
		Summary:  payload.Summary,
	}, nil
}
