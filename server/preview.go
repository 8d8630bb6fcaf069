package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"

	"survey_questionnaire_builder/exporter"
	"survey_questionnaire_builder/generator"
)

// handlePreview renders the current draft and discussion transcript as an
// HTML page, for printing or sharing outside the editing UI.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	view := sess.View()

	var md bytes.Buffer
	md.WriteString(exporter.ToMarkdown(view.Draft))
	if len(view.Discussion) > 0 {
		md.WriteString("\n## Discussion\n\n")
		for _, e := range view.Discussion {
			switch e.Kind {
			case generator.EntryDraft:
				fmt.Fprintf(&md, "**— Draft #%d —**\n\n```\n%s\n```\n\n", e.DraftNumber, e.Text)
			case generator.EntryUser:
				fmt.Fprintf(&md, "**You:** %s\n\n", e.Text)
			case generator.EntryAssistant:
				fmt.Fprintf(&md, "**AI:** %s\n\n", e.Text)
			}
		}
	}

	var html bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &html); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Draft #%d</title></head><body>%s</body></html>",
		view.DraftCount, html.String())
}
