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

// ChatCompletionsClient talks to an OpenAI-compatible /chat/completions API (Groq by default)
type ChatCompletionsClient struct {
	config config.AIConfig
	client *http.Client
}

// NewChatCompletionsClient creates a chat completions client
func NewChatCompletionsClient(cfg config.AIConfig, client *http.Client) *ChatCompletionsClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &ChatCompletionsClient{config: cfg, client: client}
}

func (c *ChatCompletionsClient) Name() string { return c.config.Provider }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends system and user messages and returns the first choice
func (c *ChatCompletionsClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	messages := make([]chatMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	jsonBody, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", generationErr(c.Name(), err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", generationErr(c.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", generationErr(c.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", generationErr(c.Name(), err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(raw, &parsed)
	if resp.StatusCode/100 != 2 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", generationErr(c.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}
	if decodeErr != nil {
		return "", generationErr(c.Name(), fmt.Errorf("decode response: %w", decodeErr))
	}

	if len(parsed.Choices) > 0 {
		if text := parsed.Choices[0].Message.Content; strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", generationErr(c.Name(), fmt.Errorf("empty completion"))
}
