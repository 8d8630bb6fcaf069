package generator

import (
	"context"
	"sync"
	"time"
)

// State names the session's position in the generation cycle.
type State string

const (
	StateIdle         State = "idle"
	StateGenerating   State = "generating"
	StateReady        State = "ready"
	StateRegenerating State = "regenerating"
)

// Session owns the canonical questionnaire draft and discussion transcript for
// one page session and governs every transition over them.
//
// Two locks: mu guards the state fields, callMu serializes gateway
// round-trips so a late chat reply can never interleave with a
// regenerate-triggered draft replacement.
type Session struct {
	ID string

	mu          sync.Mutex
	callMu      sync.Mutex
	rc          ResearchContext
	mode        Mode
	state       State
	draft       Questionnaire
	draftCount  int
	discussion  []Entry
	lastDropped []string

	agent *Agent
}

// SessionView is an immutable snapshot handed to handlers and rendering.
type SessionView struct {
	ID         string          `json:"session_id"`
	State      State           `json:"state"`
	Mode       Mode            `json:"mode"`
	Context    ResearchContext `json:"context"`
	DraftCount int             `json:"draft_count"`
	Draft      Questionnaire   `json:"draft"`
	Discussion []Entry         `json:"discussion"`
}

// NewSession creates a session with no draft yet. An empty mode inherits the
// agent's default.
func NewSession(id string, rc ResearchContext, mode Mode, agent *Agent) *Session {
	if mode == "" {
		mode = agent.Mode()
	}
	return &Session{
		ID:    id,
		rc:    rc,
		mode:  mode,
		state: StateIdle,
		draft: Questionnaire{Mode: mode},
		agent: agent,
	}
}

// View returns a copy of the current session state.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.discussion))
	copy(entries, s.discussion)
	return SessionView{
		ID:         s.ID,
		State:      s.state,
		Mode:       s.mode,
		Context:    s.rc,
		DraftCount: s.draftCount,
		Draft:      s.draft.Clone(),
		Discussion: entries,
	}
}

// UpdateContext mutates the research fields; the UI binds them on input.
func (s *Session) UpdateContext(rc ResearchContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rc = rc
}

// Generate runs a first-draft cycle. The discussion log is not fed in; use
// Regenerate once a discussion exists.
func (s *Session) Generate(ctx context.Context) (Questionnaire, error) {
	return s.cycle(ctx, StateGenerating, false)
}

// Regenerate folds the current draft into the discussion (auto-commit, so the
// visible draft is never silently lost), then runs a cycle with the full
// discussion text as extra context.
func (s *Session) Regenerate(ctx context.Context) (Questionnaire, error) {
	return s.cycle(ctx, StateRegenerating, true)
}

func (s *Session) cycle(ctx context.Context, busy State, withDiscussion bool) (Questionnaire, error) {
	s.mu.Lock()
	if s.state == StateGenerating || s.state == StateRegenerating {
		s.mu.Unlock()
		return Questionnaire{}, ErrBusy
	}
	if !s.rc.Complete() {
		s.mu.Unlock()
		return Questionnaire{}, ErrContextIncomplete
	}
	prev := s.state
	s.state = busy
	rc := s.rc
	discussion := ""
	if withDiscussion {
		if !s.draft.Empty() {
			s.appendDraftEntry()
		}
		discussion = DiscussionText(s.discussion)
	}
	s.mu.Unlock()

	s.callMu.Lock()
	q, dropped, err := s.agent.Generate(ctx, rc, discussion, s.mode)
	s.callMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Prior draft is retained; only the state reverts.
		s.state = prev
		return Questionnaire{}, err
	}
	s.draft = q
	s.draftCount++
	s.state = StateReady
	s.lastDropped = dropped
	return q, nil
}

// SendToDiscussion appends the current draft as a snapshot block. The draft
// itself is unchanged. Rejected while empty.
func (s *Session) SendToDiscussion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Empty() {
		return ErrEmptyDraft
	}
	s.appendDraftEntry()
	return nil
}

// AddComment appends the user's comment, round-trips the chat prompt, and
// appends the assistant reply. On failure the user entry stays in the log.
func (s *Session) AddComment(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyComment
	}
	s.mu.Lock()
	s.discussion = append(s.discussion, Entry{Kind: EntryUser, Text: message, CreatedAt: time.Now()})
	draft := s.draft
	discussion := DiscussionText(s.discussion)
	s.mu.Unlock()

	s.callMu.Lock()
	reply, err := s.agent.Chat(ctx, draft, discussion, message)
	s.callMu.Unlock()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.discussion = append(s.discussion, Entry{Kind: EntryAssistant, Text: reply, CreatedAt: time.Now()})
	s.mu.Unlock()
	return reply, nil
}

// ToggleLikert flips the polarity of one Likert item.
func (s *Session) ToggleLikert(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.draft.Likert) {
		return ErrNoSuchItem
	}
	s.draft.Likert[index].Polarity *= -1
	return nil
}

// UpdateLikert rewrites the text of one Likert item.
func (s *Session) UpdateLikert(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.draft.Likert) {
		return ErrNoSuchItem
	}
	s.draft.Likert[index].Text = text
	return nil
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() Questionnaire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// LastDropped returns the unmatched lines from the most recent cycle, for
// debug logging.
func (s *Session) LastDropped() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDropped
}

// appendDraftEntry must be called with mu held.
func (s *Session) appendDraftEntry() {
	s.discussion = append(s.discussion, Entry{
		Kind:        EntryDraft,
		Text:        PlainLines(s.draft),
		DraftNumber: s.draftCount,
		CreatedAt:   time.Now(),
	})
}
