package exporter

import (
	"strings"
	"testing"

	"survey_questionnaire_builder/generator"
)

func labeledDraft() generator.Questionnaire {
	return generator.Questionnaire{
		Mode:    generator.ModeLabeled,
		Profile: []string{"What is your age?"},
		YesNo:   []string{"Do you smoke?"},
		Likert: []generator.LikertItem{
			{Text: "I feel stressed", Polarity: 1},
			{Text: "I sleep well", Polarity: -1},
		},
	}
}

func TestToJSONKeyOrder(t *testing.T) {
	out, err := ToJSON(labeledDraft())
	if err != nil {
		t.Fatal(err)
	}
	pi := strings.Index(out, `"profile"`)
	yi := strings.Index(out, `"yesno"`)
	li := strings.Index(out, `"likert"`)
	if !(pi >= 0 && pi < yi && yi < li) {
		t.Fatalf("key order wrong:\n%s", out)
	}
	if !strings.Contains(out, `"polarity": -1`) {
		t.Fatalf("polarity missing:\n%s", out)
	}
}

func TestJSONRoundTripLabeled(t *testing.T) {
	first, err := ToJSON(labeledDraft())
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := FromJSON(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ToJSON(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("round trip not lossless:\n%s\nvs\n%s", first, second)
	}
}

func TestJSONRoundTripUnlabeled(t *testing.T) {
	q := generator.Questionnaire{
		Mode:  generator.ModeUnlabeled,
		Items: []string{"What is your age?", "I sleep well"},
	}
	first, err := ToJSON(q)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := FromJSON(first)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Mode != generator.ModeUnlabeled {
		t.Fatalf("mode = %s", parsed.Mode)
	}
	second, err := ToJSON(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("round trip not lossless")
	}
}

func TestJSONRoundTripEmptyDrafts(t *testing.T) {
	for _, mode := range []generator.Mode{generator.ModeLabeled, generator.ModeUnlabeled} {
		first, err := ToJSON(generator.Questionnaire{Mode: mode})
		if err != nil {
			t.Fatal(err)
		}
		parsed, err := FromJSON(first)
		if err != nil {
			t.Fatal(err)
		}
		if parsed.Mode != mode {
			t.Fatalf("empty %s draft detected as %s", mode, parsed.Mode)
		}
		if !parsed.Empty() {
			t.Fatalf("parsed = %+v", parsed)
		}
	}
}

func TestFormsScriptStubs(t *testing.T) {
	out := ToFormsScript(labeledDraft())

	for _, want := range []string{
		"function createForm(){",
		"FormApp.create('Survey Form')",
		"f.addTextItem().setTitle('What is your age?');",
		"f.addMultipleChoiceItem().setTitle('Do you smoke?').setChoiceValues(['Yes','No']);",
		"f.addScaleItem().setTitle('I feel stressed').setBounds(1,5).setLabels('Strongly disagree','Strongly agree');",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("script missing %q:\n%s", want, out)
		}
	}
}

func TestFormsScriptEscapesSingleQuotes(t *testing.T) {
	q := generator.Questionnaire{
		Mode:   generator.ModeLabeled,
		Likert: []generator.LikertItem{{Text: "it's hard to sleep", Polarity: 1}},
	}
	out := ToFormsScript(q)
	if !strings.Contains(out, `it\'s hard to sleep`) {
		t.Fatalf("quote not escaped:\n%s", out)
	}
}

func TestMarkdownRendering(t *testing.T) {
	out := ToMarkdown(labeledDraft())
	for _, want := range []string{"## Profile", "## Yes / No", "## Likert (1-5)", "`(-)`"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
}
