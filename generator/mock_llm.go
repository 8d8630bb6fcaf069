package generator

import (
	"context"
	"strings"
)

// MockLLM is an offline stand-in that emits a plausible draft without calling
// an external model. Used by the -mock flag and in tests.
type MockLLM struct {
	Mode Mode
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if strings.HasPrefix(prompt.User, "Current draft:") {
		return "The Likert statements could be balanced better; consider rewording one of them negatively.", nil
	}
	if m.Mode == ModeUnlabeled {
		return strings.Join([]string{
			"What is your age?",
			"Do you currently smoke?",
			"I feel stressed during exams.",
			"I sleep well most nights.",
		}, "\n"), nil
	}
	return strings.Join([]string{
		"PROFILE: What is your age?",
		"YESNO: Do you currently smoke?",
		"LIKERT: I feel stressed during exams.",
		"LIKERT: I sleep well most nights.",
	}, "\n"), nil
}
