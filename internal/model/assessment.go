package model

import "time"

// RiskLevel is the triage label derived from the subscale scores
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels in ascending order of severity
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskCritical}

// Ordinal returns 0..3 for low..critical and -1 for unknown values
func (r RiskLevel) Ordinal() int {
	for i, l := range RiskLevels {
		if l == r {
			return i
		}
	}
	return -1
}

// Elevated is true for levels that staff are alerted about
func (r RiskLevel) Elevated() bool {
	return r == RiskHigh || r == RiskCritical
}

// SentimentLabel is the categorical sentiment of the written answers
type SentimentLabel string

const (
	SentimentVeryNegative SentimentLabel = "very_negative"
	SentimentNegative     SentimentLabel = "negative"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentPositive     SentimentLabel = "positive"
	SentimentVeryPositive SentimentLabel = "very_positive"
)

// SubscaleScores are the normalized 0-100 scores
type SubscaleScores struct {
	Anxiety          int `json:"anxiety_score"`
	Depression       int `json:"depression_score"`
	Stress           int `json:"stress_score"`
	OverallWellbeing int `json:"overall_wellbeing_score"`
	WellbeingRaw     int `json:"-"` // before clamping to [0,100]
}

// NarrativeResult is the parsed output of the generation provider
type NarrativeResult struct {
	Analysis             string         `json:"analysis"`
	SentimentScore       int            `json:"sentiment_score"`
	SentimentLabel       SentimentLabel `json:"sentiment_label"`
	SentimentExplanation string         `json:"sentiment_explanation"`
	Recommendations      []string       `json:"recommendations"`

	// SentimentFound is false when the response had no sentiment section
	SentimentFound bool     `json:"-"`
	Degraded       []string `json:"-"`
}

// Assessment is the persisted, immutable submission record
type Assessment struct {
	ID                    string            `json:"id" bson:"_id"`
	StudentID             string            `json:"student_id" bson:"student_id"`
	Responses             map[string]string `json:"responses" bson:"responses"`
	AnxietyScore          int               `json:"anxiety_score" bson:"anxiety_score"`
	DepressionScore       int               `json:"depression_score" bson:"depression_score"`
	StressScore           int               `json:"stress_score" bson:"stress_score"`
	OverallWellbeingScore int               `json:"overall_wellbeing_score" bson:"overall_wellbeing_score"`
	RiskLevel             RiskLevel         `json:"risk_level" bson:"risk_level"`
	AIAnalysis            string            `json:"ai_analysis" bson:"ai_analysis"`
	Recommendations       []string          `json:"recommendations" bson:"recommendations"`
	SentimentScore        *int              `json:"sentiment_score,omitempty" bson:"sentiment_score,omitempty"`
	SentimentLabel        *SentimentLabel   `json:"sentiment_label,omitempty" bson:"sentiment_label,omitempty"`
	CreatedAt             time.Time         `json:"created_at" bson:"created_at"`
}

// Scores returns the subscale part of the record
func (a *Assessment) Scores() SubscaleScores {
	return SubscaleScores{
		Anxiety:          a.AnxietyScore,
		Depression:       a.DepressionScore,
		Stress:           a.StressScore,
		OverallWellbeing: a.OverallWellbeingScore,
		WellbeingRaw:     a.OverallWellbeingScore,
	}
}

// NewAssessment merges answers, scores and narrative into one record.
// Sentiment fields are left out when the provider gave no sentiment section.
func NewAssessment(id, studentID string, answers AnswerSet, scores SubscaleScores, risk RiskLevel, narrative NarrativeResult, now time.Time) *Assessment {
	a := &Assessment{
		ID:                    id,
		StudentID:             studentID,
		Responses:             answers.Flatten(),
		AnxietyScore:          scores.Anxiety,
		DepressionScore:       scores.Depression,
		StressScore:           scores.Stress,
		OverallWellbeingScore: scores.OverallWellbeing,
		RiskLevel:             risk,
		AIAnalysis:            narrative.Analysis,
		Recommendations:       append([]string(nil), narrative.Recommendations...),
		CreatedAt:             now,
	}
	if narrative.SentimentFound {
		score := narrative.SentimentScore
		label := narrative.SentimentLabel
		a.SentimentScore = &score
		a.SentimentLabel = &label
	}
	return a
}

// RiskAlert is pushed to staff when an elevated assessment is stored
type RiskAlert struct {
	AssessmentID string    `json:"assessment_id"`
	StudentID    string    `json:"student_id"`
	RiskLevel    RiskLevel `json:"risk_level"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssessmentResult is returned to the student right after submission
type AssessmentResult struct {
	*Assessment
	SentimentExplanation string `json:"sentiment_explanation,omitempty"`
}
