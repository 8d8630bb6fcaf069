// Package exporter serializes a questionnaire draft for the clipboard-bound
// export surfaces: a JSON interchange document, a Google Forms Apps Script,
// and a Markdown rendering for the HTML preview.
package exporter

import (
	"encoding/json"
	"fmt"
	"strings"

	"survey_questionnaire_builder/generator"
)

type labeledDoc struct {
	Profile []string               `json:"profile"`
	YesNo   []string               `json:"yesno"`
	Likert  []generator.LikertItem `json:"likert"`
}

type unlabeledDoc struct {
	Items []string `json:"items"`
}

// ToJSON renders the interchange document: two-space indent, stable key order
// (profile, yesno, likert for labeled drafts; items for unlabeled). The output
// round-trips losslessly through FromJSON.
func ToJSON(q generator.Questionnaire) (string, error) {
	var doc any
	if q.Mode == generator.ModeUnlabeled {
		doc = unlabeledDoc{Items: nonNil(q.Items)}
	} else {
		likert := q.Likert
		if likert == nil {
			likert = []generator.LikertItem{}
		}
		doc = labeledDoc{Profile: nonNil(q.Profile), YesNo: nonNil(q.YesNo), Likert: likert}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FromJSON parses an interchange document back into a draft. The schema
// variant is detected from the keys present.
func FromJSON(text string) (generator.Questionnaire, error) {
	var probe struct {
		Profile []string               `json:"profile"`
		YesNo   []string               `json:"yesno"`
		Likert  []generator.LikertItem `json:"likert"`
		Items   []string               `json:"items"`
	}
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return generator.Questionnaire{}, err
	}
	if probe.Items != nil {
		return generator.Questionnaire{Mode: generator.ModeUnlabeled, Items: probe.Items}, nil
	}
	return generator.Questionnaire{
		Mode:    generator.ModeLabeled,
		Profile: probe.Profile,
		YesNo:   probe.YesNo,
		Likert:  probe.Likert,
	}, nil
}

// ToFormsScript generates Google Apps Script source that recreates the draft
// as a form: text items for profile questions, Yes/No multiple choice, and a
// 1-5 scale for Likert statements. Item text is embedded inside single-quoted
// script literals, so single quotes must be escaped to keep the script valid.
func ToFormsScript(q generator.Questionnaire) string {
	var b strings.Builder
	b.WriteString("function createForm(){\n const f=FormApp.create('Survey Form');\n")
	for _, p := range q.Profile {
		fmt.Fprintf(&b, " f.addTextItem().setTitle('%s');\n", escapeQuotes(p))
	}
	for _, y := range q.YesNo {
		fmt.Fprintf(&b, " f.addMultipleChoiceItem().setTitle('%s').setChoiceValues(['Yes','No']);\n", escapeQuotes(y))
	}
	for _, l := range q.Likert {
		fmt.Fprintf(&b, " f.addScaleItem().setTitle('%s').setBounds(1,5).setLabels('Strongly disagree','Strongly agree');\n", escapeQuotes(l.Text))
	}
	for _, item := range q.Items {
		fmt.Fprintf(&b, " f.addTextItem().setTitle('%s');\n", escapeQuotes(item))
	}
	b.WriteString("}\n")
	return b.String()
}

// ToMarkdown renders the draft as a headed document for the preview page.
func ToMarkdown(q generator.Questionnaire) string {
	var b strings.Builder
	b.WriteString("# Survey Questionnaire Draft\n")
	if q.Mode == generator.ModeUnlabeled {
		b.WriteString("\n## Items\n\n")
		for _, item := range q.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		return b.String()
	}
	if len(q.Profile) > 0 {
		b.WriteString("\n## Profile\n\n")
		for _, p := range q.Profile {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	if len(q.YesNo) > 0 {
		b.WriteString("\n## Yes / No\n\n")
		for _, y := range q.YesNo {
			fmt.Fprintf(&b, "- %s\n", y)
		}
	}
	if len(q.Likert) > 0 {
		b.WriteString("\n## Likert (1-5)\n\n")
		for _, l := range q.Likert {
			sign := "+"
			if l.Polarity < 0 {
				sign = "-"
			}
			fmt.Fprintf(&b, "- %s `(%s)`\n", l.Text, sign)
		}
	}
	return b.String()
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
