package config

import (
	"strings"
	"time"
)

// Supported generation providers
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// AIConfig holds all settings for the narrative generation provider
type AIConfig struct {
	Provider  string `mapstructure:"provider" json:"provider"`
	APIKey    string `mapstructure:"api_key" json:"-"` // Never serialize
	BaseURL   string `mapstructure:"base_url" json:"baseUrl"`
	Model     string `mapstructure:"model" json:"model"`
	TimeoutMS int    `mapstructure:"timeout_ms" json:"timeoutMs"`
}

// DefaultAIConfig returns the defaults for a provider
func DefaultAIConfig(provider string) AIConfig {
	switch strings.ToLower(provider) {
	case ProviderGroq:
		return AIConfig{
			Provider:  ProviderGroq,
			BaseURL:   "https://api.groq.com/openai/v1",
			Model:     "meta-llama/llama-4-scout-17b-16e-instruct",
			TimeoutMS: 30000,
		}
	default:
		return AIConfig{
			Provider:  ProviderGemini,
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta/models",
			Model:     "gemini-2.0-flash",
			TimeoutMS: 30000,
		}
	}
}

// IsEnabled returns true if the provider API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout is the bound applied to a single generation call
func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ModelEndpoint returns the Gemini generateContent endpoint for a model
func (c AIConfig) ModelEndpoint(model string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + model + ":generateContent"
}
