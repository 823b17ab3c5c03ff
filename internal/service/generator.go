package service

import (
	"context"
	"net/http"

	"mindwell/internal/config"
	"mindwell/internal/logger"
)

// GenerationRequest is one prompt for the text-generation provider
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	Model             string
}

// Generator turns a prompt into free text. Implementations return a
// *GenerationError for every failure.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	Name() string
}

// NewGenerator picks the client for the configured provider.
// Without an API key the mock generator is used.
func NewGenerator(cfg config.AIConfig, log *logger.Logger) Generator {
	if !cfg.IsEnabled() {
		log.Warn("no AI API key configured, using mock generator", "provider", cfg.Provider)
		return NewMockGenerator()
	}
	client := &http.Client{Timeout: cfg.Timeout()}
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewChatCompletionsClient(cfg, client)
	default:
		return NewGeminiClient(cfg, client)
	}
}
