package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRelayRejectsNonPost(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/api/openai")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestRelayWithoutCredentialIs500(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp := postJSON(t, ts.URL+"/api/openai", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hi"}},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Missing OPENAI_API_KEY") {
		t.Fatalf("body = %q", body)
	}
}

func TestRelayForwardsToProvider(t *testing.T) {
	providerBody := `{"choices":[{"message":{"content":"PROFILE: Age"}}]}`
	var auth string
	var forwarded map[string]any
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&forwarded)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(providerBody))
	}))
	defer provider.Close()

	ts := newTestServer(t, Config{LLM: &LLMConfig{APIKey: "sk-test", BaseURL: provider.URL}})
	resp := postJSON(t, ts.URL+"/api/openai", map[string]any{
		"messages":    []map[string]string{{"role": "user", "content": "hi"}},
		"temperature": 0.2,
		"model":       "gpt-4o-mini",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(bytes.TrimSpace(body), []byte(providerBody)) {
		t.Fatalf("relay altered the provider payload: %q", body)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("auth = %q", auth)
	}
	if forwarded["model"] != "gpt-4o-mini" || forwarded["temperature"] != 0.2 {
		t.Fatalf("forwarded = %v", forwarded)
	}
}

func TestRelaySurfacesProviderErrorBody(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer provider.Close()

	ts := newTestServer(t, Config{LLM: &LLMConfig{APIKey: "sk-test", BaseURL: provider.URL}})
	resp := postJSON(t, ts.URL+"/api/openai", map[string]any{"messages": []map[string]string{}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "model overloaded") {
		t.Fatalf("body = %q", body)
	}
}
