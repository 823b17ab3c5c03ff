package service

import (
	"context"
	"errors"
	"time"

	"mindwell/internal/logger"
	"mindwell/internal/model"
	"mindwell/internal/narrative"
)

// Analyzer produces the narrative part of an assessment through a Generator
type Analyzer struct {
	generator Generator
	model     string
	timeout   time.Duration
	log       *logger.Logger
}

// NewAnalyzer creates an analyzer. A zero timeout means 30s.
func NewAnalyzer(gen Generator, modelName string, timeout time.Duration, log *logger.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{generator: gen, model: modelName, timeout: timeout, log: log}
}

// Analyze builds the prompt, waits for the provider under the timeout and
// parses the reply. Provider failures come back as *GenerationError; parsing
// never fails.
func (a *Analyzer) Analyze(ctx context.Context, answers model.AnswerSet, scores model.SubscaleScores, risk model.RiskLevel) (model.NarrativeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	started := time.Now()
	raw, err := a.generator.Generate(ctx, GenerationRequest{
		SystemInstruction: narrative.SystemInstruction,
		Prompt:            narrative.BuildPrompt(answers, scores, risk),
		Model:             a.model,
	})
	if err != nil {
		if !errors.Is(err, ErrGeneration) {
			err = generationErr(a.generator.Name(), err)
		}
		a.log.Error("narrative generation failed",
			"provider", a.generator.Name(),
			"elapsed", time.Since(started),
			"error", err,
		)
		return model.NarrativeResult{}, err
	}

	result := narrative.ExtractFields(narrative.StripMarkup(raw))
	if len(result.Degraded) > 0 {
		a.log.Warn("narrative response degraded, defaults substituted",
			"provider", a.generator.Name(),
			"reasons", result.Degraded,
		)
	}
	a.log.Debug("narrative generated",
		"provider", a.generator.Name(),
		"elapsed", time.Since(started),
		"sentiment_found", result.SentimentFound,
		"recommendations", len(result.Recommendations),
	)
	return result, nil
}
