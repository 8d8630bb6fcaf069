package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the LLM. Discussion history travels
// inside the user message, rendered by DiscussionText, rather than as
// separate chat turns.
type Prompt struct {
	System string
	User   string
}

// Message is one entry of the relay wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// maxDiscussionBytes bounds the discussion section fed back into prompts.
// The stored log itself is never pruned; only the prompt view is cut.
const maxDiscussionBytes = 16000

const truncationMarker = "(earlier discussion truncated)"

// BuildGenerationPrompt assembles the draft-generation prompt. The system
// instruction must match the parser mode: a labeled instruction with an
// unlabeled parser (or vice versa) silently loses every item.
func BuildGenerationPrompt(rc ResearchContext, discussion string, mode Mode) Prompt {
	var sys string
	switch mode {
	case ModeUnlabeled:
		sys = "You are an educational survey designer. Using the INTRODUCTION, PREVIOUS WORKS, METHODS, and DISCUSSION below, draft 10-15 questionnaire items, one item per line, with no labels and no numbering."
	default:
		sys = "You are an educational survey designer. Using the INTRODUCTION, PREVIOUS WORKS, METHODS, and DISCUSSION below, draft 10-15 questionnaire items labeled PROFILE:, YESNO:, LIKERT:"
	}

	if discussion == "" {
		discussion = "(none)"
	} else {
		discussion = truncateDiscussion(discussion)
	}

	user := fmt.Sprintf("INTRODUCTION:\n%s\n\nPREVIOUS WORKS:\n%s\n\nMETHODS:\n%s\n\nDISCUSSION:\n%s",
		rc.Intro, rc.PreviousWorks, rc.Methods, discussion)

	return Prompt{System: sys, User: user}
}

// BuildChatPrompt assembles the discussion round-trip prompt: current draft,
// discussion so far, then the new user utterance, in that order.
func BuildChatPrompt(draft Questionnaire, discussion, message string) Prompt {
	user := fmt.Sprintf("Current draft:\n%s\n\nDiscussion so far:\n%s\n\nUser: %s",
		PlainLines(draft), truncateDiscussion(discussion), message)
	return Prompt{
		System: "You are an assistant helping students refine questionnaire items.",
		User:   user,
	}
}

// PlainLines renders a draft as labeled plain text, one item per line. Used in
// snapshot blocks and chat prompts. Unlabeled drafts render without labels.
func PlainLines(q Questionnaire) string {
	var lines []string
	for _, p := range q.Profile {
		lines = append(lines, "PROFILE: "+p)
	}
	for _, y := range q.YesNo {
		lines = append(lines, "YESNO: "+y)
	}
	for _, l := range q.Likert {
		lines = append(lines, "LIKERT: "+l.Text)
	}
	lines = append(lines, q.Items...)
	return strings.Join(lines, "\n")
}

// DiscussionText renders the log for prompts and snapshots, oldest first.
func DiscussionText(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		switch e.Kind {
		case EntryDraft:
			fmt.Fprintf(&b, "— Draft #%d —\n%s", e.DraftNumber, e.Text)
		case EntryUser:
			b.WriteString("You: " + e.Text)
		case EntryAssistant:
			b.WriteString("AI: " + e.Text)
		}
	}
	return b.String()
}

// truncateDiscussion keeps the most recent tail of an oversized discussion,
// cutting at an entry boundary where possible.
func truncateDiscussion(text string) string {
	if len(text) <= maxDiscussionBytes {
		return text
	}
	tail := text[len(text)-maxDiscussionBytes:]
	if i := strings.Index(tail, "\n\n"); i >= 0 {
		tail = tail[i+2:]
	}
	return truncationMarker + "\n\n" + tail
}
