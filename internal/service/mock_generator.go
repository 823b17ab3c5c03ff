package service

import (
	"context"
	"regexp"
	"strconv"
)

// MockGenerator returns canned text in the labelled section format.
// Used for local development when no API key is configured.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator { return &MockGenerator{} }

func (m *MockGenerator) Name() string { return "mock" }

var riskLevelRe = regexp.MustCompile(`Risk Level: (\w+)`)

func (m *MockGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", generationErr(m.Name(), err)
	}

	score, label := 60, "positive"
	if match := riskLevelRe.FindStringSubmatch(req.Prompt); match != nil {
		switch match[1] {
		case "critical":
			score, label = 20, "very_negative"
		case "high":
			score, label = 35, "negative"
		case "moderate":
			score, label = 50, "neutral"
		}
	}

	return "SENTIMENT ANALYSIS:\n" +
		"Overall sentiment score: " + strconv.Itoa(score) + "\n" +
		"Sentiment label: " + label + "\n" +
		"Brief explanation: this is a development response, no provider was called, so the sentiment detected is estimated from the risk level.\n\n" +
		"MENTAL HEALTH ANALYSIS:\n" +
		"Thank you for taking the time to reflect on how you have been feeling. Your answers give a useful picture of the past week.\n\n" +
		"This analysis is a placeholder generated without a language model. It is not a substitute for professional mental health care.\n\n" +
		"RECOMMENDATIONS:\n" +
		"1. Keep a regular sleep schedule\n" +
		"2. Take a short walk outside each day\n" +
		"3. Talk with someone you trust about how you feel\n" +
		"4. Try five minutes of slow breathing when stress builds up\n" +
		"5. Reach out to campus counseling if things feel heavy\n", nil
}
