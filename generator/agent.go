package generator

import (
	"context"
	"errors"
)

// Agent runs the compose -> complete -> parse pipeline for one questionnaire
// generation or one discussion round-trip.
type Agent struct {
	llm  LLMClient
	mode Mode
}

func NewAgent(llm LLMClient, mode Mode) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if mode == "" {
		mode = ModeLabeled
	}
	return &Agent{llm: llm, mode: mode}, nil
}

func (a *Agent) Mode() Mode { return a.mode }

// Generate produces a fresh draft from the research context plus any
// accumulated discussion text. An empty mode falls back to the agent default;
// composer and parser always see the same mode. The returned diagnostics are
// lines the labeled parser could not route.
func (a *Agent) Generate(ctx context.Context, rc ResearchContext, discussion string, mode Mode) (Questionnaire, []string, error) {
	if mode == "" {
		mode = a.mode
	}
	raw, err := a.llm.Complete(ctx, BuildGenerationPrompt(rc, discussion, mode))
	if err != nil {
		return Questionnaire{}, nil, err
	}
	q, dropped := ParseDraft(raw, mode)
	return q, dropped, nil
}

// Chat produces an assistant reply to a discussion comment about the current
// draft.
func (a *Agent) Chat(ctx context.Context, draft Questionnaire, discussion, message string) (string, error) {
	return a.llm.Complete(ctx, BuildChatPrompt(draft, discussion, message))
}
