package generator

import (
	"regexp"
	"strings"
)

var (
	lineSplit   = regexp.MustCompile(`\n+`)
	bulletStrip = regexp.MustCompile(`^[-*]\s*`)
	profileRe   = regexp.MustCompile(`(?i)^PROFILE:`)
	yesnoRe     = regexp.MustCompile(`(?i)^YESNO:`)
	likertRe    = regexp.MustCompile(`(?i)^LIKERT:`)
)

// ParseDraft converts raw model output into a draft. It never fails: a
// response with no usable lines yields an empty draft, detected by the caller
// via Questionnaire.Empty.
//
// In labeled mode, lines matching none of the three labels are returned as
// diagnostics rather than silently dropped. Likert polarity alternates by raw
// line index parity (even index positive), not by wording; it is a display
// default the user can flip afterwards.
func ParseDraft(raw string, mode Mode) (Questionnaire, []string) {
	q := Questionnaire{Mode: mode}
	var dropped []string

	for i, line := range lineSplit.Split(raw, -1) {
		line = strings.TrimSpace(bulletStrip.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}

		if mode == ModeUnlabeled {
			q.Items = append(q.Items, line)
			continue
		}

		switch {
		case profileRe.MatchString(line):
			q.Profile = append(q.Profile, strings.TrimSpace(profileRe.ReplaceAllString(line, "")))
		case yesnoRe.MatchString(line):
			q.YesNo = append(q.YesNo, strings.TrimSpace(yesnoRe.ReplaceAllString(line, "")))
		case likertRe.MatchString(line):
			polarity := 1
			if i%2 == 1 {
				polarity = -1
			}
			q.Likert = append(q.Likert, LikertItem{
				Text:     strings.TrimSpace(likertRe.ReplaceAllString(line, "")),
				Polarity: polarity,
			})
		default:
			dropped = append(dropped, line)
		}
	}
	return q, dropped
}
