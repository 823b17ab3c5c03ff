// Package scoring turns questionnaire answers into subscale scores and a risk level.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"mindwell/internal/model"
)

// Max raw sums per subscale: 8, 8 and 5 for the fixed questionnaire
var maxRaw = MaxTotals(defaultQuestionnaire)

// Risk thresholds on the average of anxiety, depression and stress. Lower bound inclusive.
const (
	criticalThreshold = 75.0
	highThreshold     = 50.0
	moderateThreshold = 25.0
)

// RawTotals are the per-category point sums before normalization.
// Mood and general items both land in General.
type RawTotals struct {
	Anxiety    int
	Depression int
	Stress     int
	General    int
}

// Totals sums option points per category. Unanswered, free-text and
// unmatched answers contribute zero.
func Totals(answers model.AnswerSet, defs []model.QuestionDefinition) RawTotals {
	var t RawTotals
	for _, q := range defs {
		if !q.Scored() {
			continue
		}
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.OptionFor(v.String())
		if !ok {
			continue
		}
		switch q.Category {
		case model.CategoryAnxiety:
			t.Anxiety += opt.Score
		case model.CategoryDepression:
			t.Depression += opt.Score
		case model.CategoryStress:
			t.Stress += opt.Score
		default:
			t.General += opt.Score
		}
	}
	return t
}

// MaxTotals is the highest RawTotals the questions can produce
func MaxTotals(defs []model.QuestionDefinition) RawTotals {
	var t RawTotals
	for _, q := range defs {
		if !q.Scored() {
			continue
		}
		switch q.Category {
		case model.CategoryAnxiety:
			t.Anxiety += q.MaxScore()
		case model.CategoryDepression:
			t.Depression += q.MaxScore()
		case model.CategoryStress:
			t.Stress += q.MaxScore()
		default:
			t.General += q.MaxScore()
		}
	}
	return t
}

// round is half-up rounding, matching how the scores were always computed
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromTotals normalizes raw sums to 0-100.
// Wellbeing is clamped; the unclamped value stays in WellbeingRaw.
func FromTotals(t RawTotals) model.SubscaleScores {
	wellbeing := round(float64(t.General+(10-t.Anxiety)+(10-t.Depression)+(6-t.Stress)) / 20 * 100)
	return model.SubscaleScores{
		Anxiety:          round(float64(t.Anxiety) / float64(maxRaw.Anxiety) * 100),
		Depression:       round(float64(t.Depression) / float64(maxRaw.Depression) * 100),
		Stress:           round(float64(t.Stress) / float64(maxRaw.Stress) * 100),
		OverallWellbeing: clamp(wellbeing, 0, 100),
		WellbeingRaw:     wellbeing,
	}
}

// ComputeScores is Totals followed by FromTotals
func ComputeScores(answers model.AnswerSet, defs []model.QuestionDefinition) model.SubscaleScores {
	return FromTotals(Totals(answers, defs))
}

// ClassifyRisk maps the average of anxiety, depression and stress to a risk band
func ClassifyRisk(s model.SubscaleScores) model.RiskLevel {
	return classifyAverage(float64(s.Anxiety+s.Depression+s.Stress) / 3)
}

func classifyAverage(avg float64) model.RiskLevel {
	switch {
	case avg >= criticalThreshold:
		return model.RiskCritical
	case avg >= highThreshold:
		return model.RiskHigh
	case avg >= moderateThreshold:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// ValidationError lists scored questions that were not answered or whose
// value matches none of the options.
type ValidationError struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing answers: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid answers: "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Validate checks that every scored question has a matching option.
// Free-text items are optional and unknown ids are not an error.
func Validate(answers model.AnswerSet, defs []model.QuestionDefinition) error {
	verr := &ValidationError{}
	for _, q := range defs {
		if !q.Scored() {
			continue
		}
		v, ok := answers[q.ID]
		if !ok || v.IsEmpty() {
			verr.Missing = append(verr.Missing, q.ID)
			continue
		}
		if v.Kind != model.AnswerChoice {
			verr.Invalid = append(verr.Invalid, q.ID)
			continue
		}
		if _, ok := q.OptionFor(v.Choice); !ok {
			verr.Invalid = append(verr.Invalid, q.ID)
		}
	}
	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}

// UnknownIDs returns answer keys that match no question, sorted
func UnknownIDs(answers model.AnswerSet, defs []model.QuestionDefinition) []string {
	known := make(map[string]bool, len(defs))
	for _, q := range defs {
		known[q.ID] = true
	}
	var out []string
	for id := range answers {
		if !known[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
