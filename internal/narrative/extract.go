package narrative

import (
	"regexp"
	"strconv"
	"strings"

	"mindwell/internal/model"
)

// Section labels the provider is asked to emit
const (
	LabelSentiment       = "SENTIMENT ANALYSIS:"
	LabelAnalysis        = "MENTAL HEALTH ANALYSIS:"
	LabelRecommendations = "RECOMMENDATIONS:"
)

// DefaultExplanation is used when no explanation line is found
const DefaultExplanation = "Sentiment analysis completed based on written responses."

// DefaultAnalysis is used when the response holds no usable analysis text
const DefaultAnalysis = "Thank you for completing your assessment. Your scores are shown above, and the recommendations below are a good place to start. If you are struggling, please reach out to a counselor."

// Degradation reasons recorded in NarrativeResult.Degraded
const (
	DegradedSentimentSection       = "sentiment_section_missing"
	DegradedSentimentScore         = "sentiment_score_missing"
	DegradedSentimentLabel         = "sentiment_label_missing"
	DegradedExplanation            = "sentiment_explanation_missing"
	DegradedAnalysisSection        = "analysis_section_missing"
	DegradedAnalysisDefault        = "analysis_defaulted"
	DegradedRecommendationsSection = "recommendations_section_missing"
	DegradedRecommendationsDefault = "recommendations_defaulted"
)

const defaultSentimentScore = 50

var defaultRecommendations = []string{
	"Practice deep breathing exercises daily",
	"Maintain a regular sleep schedule",
	"Engage in physical activity you enjoy",
	"Connect with friends and family regularly",
	"Consider speaking with a counselor",
	"Practice mindfulness or meditation",
	"Limit caffeine and alcohol intake",
}

// DefaultRecommendations returns a copy of the fallback list
func DefaultRecommendations() []string {
	return append([]string(nil), defaultRecommendations...)
}

var (
	sectionLabelRe = regexp.MustCompile(`(?i)(SENTIMENT ANALYSIS|MENTAL HEALTH ANALYSIS|RECOMMENDATIONS):`)
	integerRe      = regexp.MustCompile(`\d+`)
	sentimentRe    = regexp.MustCompile(`(?i)very[_ ]negative|very[_ ]positive|negative|neutral|positive`)
	numberedLineRe = regexp.MustCompile(`^\d+\.\s*`)
	paragraphRe    = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)
)

// Sections is the provider text split by label. Text before the first label
// lands in Preamble. A repeated label appends to its section.
type Sections struct {
	Preamble        string
	Sentiment       string
	Analysis        string
	Recommendations string

	HasSentiment       bool
	HasAnalysis        bool
	HasRecommendations bool
}

// Any reports whether at least one label was found
func (s Sections) Any() bool {
	return s.HasSentiment || s.HasAnalysis || s.HasRecommendations
}

// SplitSections walks the text once, cutting at each section label
func SplitSections(text string) Sections {
	var s Sections
	locs := sectionLabelRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		s.Preamble = text
		return s
	}
	s.Preamble = text[:locs[0][0]]
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := text[loc[1]:end]
		switch strings.ToUpper(text[loc[2]:loc[3]]) {
		case "SENTIMENT ANALYSIS":
			s.Sentiment += body
			s.HasSentiment = true
		case "MENTAL HEALTH ANALYSIS":
			s.Analysis += body
			s.HasAnalysis = true
		case "RECOMMENDATIONS":
			s.Recommendations += body
			s.HasRecommendations = true
		}
	}
	return s
}

// ExtractFields parses markup-free provider text into a NarrativeResult.
// It never fails; missing pieces fall back to defaults and are listed in Degraded.
func ExtractFields(text string) model.NarrativeResult {
	sections := SplitSections(text)
	res := model.NarrativeResult{SentimentFound: sections.HasSentiment}
	degrade := func(reason string) { res.Degraded = append(res.Degraded, reason) }

	// Sentiment lines may carry "1." prefixes that are not the score.
	sentiment := StripListNumbers(sections.Sentiment)
	if !sections.HasSentiment {
		degrade(DegradedSentimentSection)
	}

	score, ok := extractSentimentScore(sentiment)
	if !ok {
		score = defaultSentimentScore
		if sections.HasSentiment {
			degrade(DegradedSentimentScore)
		}
	}
	res.SentimentScore = score

	label, ok := extractSentimentLabel(sentiment)
	if !ok {
		label = model.SentimentNeutral
		if sections.HasSentiment {
			degrade(DegradedSentimentLabel)
		}
	}
	res.SentimentLabel = label

	explanation, ok := extractExplanation(sentiment)
	if !ok {
		explanation = DefaultExplanation
		if sections.HasSentiment {
			degrade(DegradedExplanation)
		}
	}
	res.SentimentExplanation = explanation

	paragraphs := splitParagraphs(text)

	analysis := extractAnalysis(StripListNumbers(sections.Analysis))
	if !sections.HasAnalysis {
		degrade(DegradedAnalysisSection)
		// Leading paragraphs would carry the other labels' text.
		if sections.Any() {
			analysis = extractAnalysis(StripListNumbers(sections.Preamble))
		} else {
			analysis = extractAnalysis(strings.Join(head(paragraphs, 2), "\n\n"))
		}
	}
	if analysis == "" {
		degrade(DegradedAnalysisDefault)
		analysis = DefaultAnalysis
	}
	res.Analysis = analysis

	recSource := sections.Recommendations
	if !sections.HasRecommendations {
		degrade(DegradedRecommendationsSection)
		recSource = strings.Join(tail(paragraphs, 2), "\n\n")
	}
	recs := extractRecommendations(recSource)
	if len(recs) == 0 {
		degrade(DegradedRecommendationsDefault)
		recs = DefaultRecommendations()
	}
	res.Recommendations = recs

	return res
}

// extractSentimentScore returns the first integer in the segment, capped to 0-100
func extractSentimentScore(segment string) (int, bool) {
	m := integerRe.FindString(segment)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > 100 {
		return 100, true
	}
	return n, true
}

func extractSentimentLabel(segment string) (model.SentimentLabel, bool) {
	m := sentimentRe.FindString(segment)
	if m == "" {
		return "", false
	}
	return model.SentimentLabel(strings.ReplaceAll(strings.ToLower(m), " ", "_")), true
}

func extractExplanation(segment string) (string, bool) {
	for _, line := range strings.Split(segment, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "explanation") || strings.Contains(lower, "detected") {
			if line = strings.TrimSpace(line); line != "" {
				return line, true
			}
		}
	}
	return "", false
}

func extractAnalysis(segment string) string {
	return strings.TrimSpace(segment)
}

// extractRecommendations keeps "N." lines with the prefix removed
func extractRecommendations(segment string) []string {
	var out []string
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if !numberedLineRe.MatchString(line) {
			continue
		}
		if rec := strings.TrimSpace(numberedLineRe.ReplaceAllString(line, "")); rec != "" {
			out = append(out, rec)
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphRe.Split(strings.TrimSpace(text), -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func head(ps []string, n int) []string {
	if len(ps) < n {
		return ps
	}
	return ps[:n]
}

func tail(ps []string, from int) []string {
	if len(ps) <= from {
		return nil
	}
	return ps[from:]
}
