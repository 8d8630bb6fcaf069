package server

import (
	"encoding/json"
	"os"
)

// Config holds the server and model settings.
type Config struct {
	ServerAddr string     `json:"server_addr,omitempty"`
	Mode       string     `json:"mode,omitempty"`
	LLM        *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig selects and configures the completion gateway.
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty"`
	Model       string  `json:"model,omitempty"`
	APIKey      string  `json:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	RelayURL    string  `json:"relay_url,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// LoadConfig reads JSON config from disk. A missing file is not an error; the
// caller falls back to env-driven defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields from the environment and built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.LLM == nil {
		c.LLM = &LLMConfig{}
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.Mode == "" {
		c.Mode = "labeled"
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
}
