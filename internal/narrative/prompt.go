// Package narrative builds the analysis prompt and parses the free text that comes back.
package narrative

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"mindwell/internal/model"
)

// SystemInstruction fixes tone and output format for the provider
const SystemInstruction = "You are a compassionate mental health AI assistant with expertise in sentiment analysis. " +
	"Provide supportive, evidence-based guidance in plain text format without any markdown, bold text, or special formatting. " +
	"Be clear that you are not a replacement for professional mental health care. " +
	"Always include sentiment analysis when written content is provided."

const promptTemplate = `You are a mental health AI assistant analyzing a student wellness assessment.

Assessment Results:
- Anxiety Score: %d/100
- Depression Score: %d/100
- Stress Score: %d/100
- Overall Wellbeing Score: %d/100
- Risk Level: %s

Student Responses: %s
Written Content for Sentiment Analysis: "%s"

Please provide in plain text format (no markdown or special formatting):

1. SENTIMENT ANALYSIS:
   - Overall sentiment score (0-100, where 0 is very negative, 50 is neutral, 100 is very positive)
   - Sentiment label (very_negative, negative, neutral, positive, very_positive)
   - Brief explanation of the sentiment detected

2. MENTAL HEALTH ANALYSIS:
   A compassionate analysis of the student's mental health status (2-3 paragraphs)

3. RECOMMENDATIONS:
   5-7 specific, actionable recommendations for improving their wellbeing

Keep the tone supportive, non-judgmental, and encouraging. Focus on practical steps they can take.
Use plain text only - no bold, italics, or markdown formatting.
`

// BuildPrompt renders scores, risk, the raw answers and any written content
// (answers longer than 10 characters) into the analysis request.
func BuildPrompt(answers model.AnswerSet, scores model.SubscaleScores, risk model.RiskLevel) string {
	raw, err := json.Marshal(answers)
	if err != nil {
		raw = []byte("{}")
	}

	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	written := strings.ReplaceAll(answers.WrittenContent(keys), `"`, `'`)

	return fmt.Sprintf(promptTemplate,
		scores.Anxiety,
		scores.Depression,
		scores.Stress,
		scores.OverallWellbeing,
		risk,
		raw,
		written,
	)
}
