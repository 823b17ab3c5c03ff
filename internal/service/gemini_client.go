package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mindwell/internal/config"
)

// GeminiClient calls the Generative Language generateContent endpoint
type GeminiClient struct {
	config config.AIConfig
	client *http.Client
}

// NewGeminiClient creates a Gemini client
func NewGeminiClient(cfg config.AIConfig, client *http.Client) *GeminiClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &GeminiClient{config: cfg, client: client}
}

func (c *GeminiClient) Name() string { return config.ProviderGemini }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends the prompt and returns the first candidate's text
func (c *GeminiClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemInstruction}}}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", generationErr(c.Name(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ModelEndpoint(model), bytes.NewReader(jsonBody))
	if err != nil {
		return "", generationErr(c.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", generationErr(c.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", generationErr(c.Name(), err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode/100 != 2 {
			return "", generationErr(c.Name(), fmt.Errorf("status %d", resp.StatusCode))
		}
		return "", generationErr(c.Name(), fmt.Errorf("decode response: %w", err))
	}
	if resp.StatusCode/100 != 2 {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", generationErr(c.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if len(parsed.Candidates) > 0 {
		var sb strings.Builder
		for _, p := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
		if text := sb.String(); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", generationErr(c.Name(), fmt.Errorf("empty response from Gemini"))
}
