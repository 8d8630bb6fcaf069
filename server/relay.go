package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"survey_questionnaire_builder/generator"
)

const defaultProviderBase = "https://api.openai.com/v1"

var relayClient = &http.Client{Timeout: 60 * time.Second}

type relayReq struct {
	Messages    []generator.Message `json:"messages"`
	Temperature *float64            `json:"temperature,omitempty"`
	Model       string              `json:"model,omitempty"`
}

// handleRelay is the stateless credential-holding relay: it forwards a
// chat-completion request to the provider and streams the provider's native
// JSON back. A missing credential surfaces to the caller as a plain 500, per
// the relay contract.
func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	var req relayReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	apiKey := ""
	if s.cfg.LLM != nil {
		apiKey = s.cfg.LLM.APIKey
	}
	if apiKey == "" {
		s.log.Errorw("relay misconfigured", "err", &generator.ConfigError{Missing: "OPENAI_API_KEY"})
		http.Error(w, "Missing OPENAI_API_KEY", http.StatusInternalServerError)
		return
	}

	model := req.Model
	if model == "" {
		model = "gpt-4o"
	}
	temperature := 0.7
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	payload, err := json.Marshal(map[string]any{
		"model":       model,
		"messages":    req.Messages,
		"temperature": temperature,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	base := defaultProviderBase
	if s.cfg.LLM != nil && s.cfg.LLM.BaseURL != "" {
		base = strings.TrimRight(s.cfg.LLM.BaseURL, "/")
	}
	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		base+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := relayClient.Do(upstream)
	if err != nil {
		s.log.Errorw("relay transport failure", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warnw("relay upstream error", "status", resp.StatusCode)
		http.Error(w, string(body), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
