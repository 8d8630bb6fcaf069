package generator

import (
	"reflect"
	"testing"
)

func TestParseDraftRoutesLabeledLines(t *testing.T) {
	raw := "PROFILE: Age\nYESNO: Do you smoke?\nLIKERT: I feel stressed\nLIKERT: I sleep well"
	q, dropped := ParseDraft(raw, ModeLabeled)

	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped lines: %v", dropped)
	}
	if !reflect.DeepEqual(q.Profile, []string{"Age"}) {
		t.Fatalf("profile = %v", q.Profile)
	}
	if !reflect.DeepEqual(q.YesNo, []string{"Do you smoke?"}) {
		t.Fatalf("yesno = %v", q.YesNo)
	}
	want := []LikertItem{
		{Text: "I feel stressed", Polarity: 1},
		{Text: "I sleep well", Polarity: -1},
	}
	if !reflect.DeepEqual(q.Likert, want) {
		t.Fatalf("likert = %v", q.Likert)
	}
}

func TestParseDraftStripsBulletsAndLabels(t *testing.T) {
	raw := "- PROFILE: Age\n* yesno: Married?\n-   LIKERT:   Spaced out  "
	q, _ := ParseDraft(raw, ModeLabeled)

	if got := q.Profile[0]; got != "Age" {
		t.Fatalf("profile item = %q", got)
	}
	if got := q.YesNo[0]; got != "Married?" {
		t.Fatalf("case-insensitive label not stripped: %q", got)
	}
	if got := q.Likert[0].Text; got != "Spaced out" {
		t.Fatalf("likert text = %q", got)
	}
}

func TestParseDraftPolarityFollowsLineParity(t *testing.T) {
	raw := "LIKERT: a\nLIKERT: b\nLIKERT: c\nLIKERT: d"
	q, _ := ParseDraft(raw, ModeLabeled)

	want := []int{1, -1, 1, -1}
	for i, l := range q.Likert {
		if l.Polarity != want[i] {
			t.Fatalf("likert[%d] polarity = %d, want %d", i, l.Polarity, want[i])
		}
	}
}

func TestParseDraftCollectsUnmatchedLines(t *testing.T) {
	raw := "Here are your items:\nPROFILE: Age\nHope this helps!"
	q, dropped := ParseDraft(raw, ModeLabeled)

	if len(q.Profile) != 1 {
		t.Fatalf("profile = %v", q.Profile)
	}
	if len(dropped) != 2 {
		t.Fatalf("dropped = %v", dropped)
	}
}

func TestParseDraftTotalCountMatchesLabeledLines(t *testing.T) {
	raw := "PROFILE: a\n\nYESNO: b\n\n\nLIKERT: c\nPROFILE: d\nYESNO: e"
	q, dropped := ParseDraft(raw, ModeLabeled)

	total := len(q.Profile) + len(q.YesNo) + len(q.Likert)
	if total != 5 || len(dropped) != 0 {
		t.Fatalf("total = %d, dropped = %v", total, dropped)
	}
}

func TestParseDraftUnlabeledKeepsEveryLine(t *testing.T) {
	raw := "- What is your age?\n\nDo you smoke?\n* I sleep well"
	q, dropped := ParseDraft(raw, ModeUnlabeled)

	want := []string{"What is your age?", "Do you smoke?", "I sleep well"}
	if !reflect.DeepEqual(q.Items, want) {
		t.Fatalf("items = %v", q.Items)
	}
	if dropped != nil {
		t.Fatalf("unlabeled mode should not drop: %v", dropped)
	}
}

func TestParseDraftNeverFails(t *testing.T) {
	for _, raw := range []string{"", "   \n\n  ", "no labels anywhere"} {
		q, _ := ParseDraft(raw, ModeLabeled)
		if !q.Empty() {
			t.Fatalf("raw %q should parse to an empty draft", raw)
		}
	}
}
