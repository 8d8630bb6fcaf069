package generator

import "context"

// LLMClient abstracts the completion gateway so implementations can be swapped
// or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the shared configuration handed to concrete clients.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	RelayURL    string
	Temperature float64
}
