package generator

import "time"

// Mode selects which questionnaire schema the composer instructs the model to
// emit and the parser expects back. Composer and parser must always agree.
type Mode string

const (
	// ModeLabeled expects PROFILE:/YESNO:/LIKERT: prefixed lines routed into
	// three buckets.
	ModeLabeled Mode = "labeled"
	// ModeUnlabeled expects one plain item per line, collected into a flat list.
	ModeUnlabeled Mode = "unlabeled"
)

// ResearchContext holds the three free-text fields the student fills in before
// anything can be generated.
type ResearchContext struct {
	Intro         string `json:"intro"`
	PreviousWorks string `json:"previous_works"`
	Methods       string `json:"methods"`
}

// Complete reports whether all three fields are non-empty.
func (rc ResearchContext) Complete() bool {
	return rc.Intro != "" && rc.PreviousWorks != "" && rc.Methods != ""
}

// LikertItem is a scale statement with a wording polarity (+1 positive, -1
// negative).
type LikertItem struct {
	Text     string `json:"text"`
	Polarity int    `json:"polarity"`
}

// Questionnaire is one draft snapshot. In labeled mode the three buckets are
// live and Items stays nil; in unlabeled mode only Items is live. A draft is
// replaced wholesale on every successful generation.
type Questionnaire struct {
	Mode    Mode         `json:"mode"`
	Profile []string     `json:"profile,omitempty"`
	YesNo   []string     `json:"yesno,omitempty"`
	Likert  []LikertItem `json:"likert,omitempty"`
	Items   []string     `json:"items,omitempty"`
}

// Empty reports whether the draft has no items in any bucket. Emptiness gates
// sending to discussion and the auto-push before regeneration.
func (q Questionnaire) Empty() bool {
	return len(q.Profile) == 0 && len(q.YesNo) == 0 && len(q.Likert) == 0 && len(q.Items) == 0
}

// Clone returns a copy sharing no backing arrays with the receiver, so
// snapshots stay stable while the canonical draft keeps being edited.
func (q Questionnaire) Clone() Questionnaire {
	c := q
	c.Profile = append([]string(nil), q.Profile...)
	c.YesNo = append([]string(nil), q.YesNo...)
	c.Likert = append([]LikertItem(nil), q.Likert...)
	c.Items = append([]string(nil), q.Items...)
	return c
}

// EntryKind tags a discussion log entry.
type EntryKind string

const (
	EntryDraft     EntryKind = "draft"
	EntryUser      EntryKind = "user"
	EntryAssistant EntryKind = "assistant"
)

// Entry is one discussion record: a committed draft snapshot, a user comment,
// or an assistant reply. The log is append-only and never pruned.
type Entry struct {
	Kind        EntryKind `json:"kind"`
	Text        string    `json:"text"`
	DraftNumber int       `json:"draft_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
