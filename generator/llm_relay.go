package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// RelayLLM implements LLMClient against a relay endpoint that holds the
// provider credential. The wire contract mirrors the provider's own:
// request {messages, temperature, model}, response containing
// choices[0].message.content.
type RelayLLM struct {
	URL         string
	Model       string
	Temperature float64
	Client      *http.Client
}

type relayRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Model       string    `json:"model"`
}

type relayChoice struct {
	Message struct {
		Content *string `json:"content"`
	} `json:"message"`
}

type relayResponse struct {
	Choices []relayChoice `json:"choices"`
}

func NewRelayLLMFromConfig(cfg *LLMSettings) (*RelayLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.RelayURL == "" {
		return nil, errors.New("llm provider relay requires relay_url")
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	return &RelayLLM{
		URL:         cfg.RelayURL,
		Model:       model,
		Temperature: cfg.Temperature,
		Client:      &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (r *RelayLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	msgs := []Message{
		{Role: "system", Content: prompt.System},
		{Role: "user", Content: prompt.User},
	}

	payload, err := json.Marshal(relayRequest{
		Messages:    msgs,
		Temperature: r.Temperature,
		Model:       r.Model,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed relayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ParseError{Reason: err.Error()}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", &ParseError{Reason: "missing choices[0].message.content"}
	}
	return strings.TrimSpace(*parsed.Choices[0].Message.Content), nil
}
