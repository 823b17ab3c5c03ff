package model

import "time"

// RiskCount is one row of the risk-level aggregation
type RiskCount struct {
	Level RiskLevel `json:"risk_level" bson:"_id"`
	Count int       `json:"count" bson:"count"`
}

// RiskDistribution summarizes how many assessments fall in each band
type RiskDistribution struct {
	Low         int       `json:"low"`
	Moderate    int       `json:"moderate"`
	High        int       `json:"high"`
	Critical    int       `json:"critical"`
	Total       int       `json:"total"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Add folds one aggregation row into the distribution
func (d *RiskDistribution) Add(rc RiskCount) {
	switch rc.Level {
	case RiskLow:
		d.Low += rc.Count
	case RiskModerate:
		d.Moderate += rc.Count
	case RiskHigh:
		d.High += rc.Count
	case RiskCritical:
		d.Critical += rc.Count
	default:
		return
	}
	d.Total += rc.Count
}

// CaseSummary is a recent elevated assessment shown to staff
type CaseSummary struct {
	AssessmentID    string    `json:"assessment_id"`
	StudentID       string    `json:"student_id"`
	StudentName     string    `json:"student_name,omitempty"`
	RiskLevel       RiskLevel `json:"risk_level"`
	AnxietyScore    int       `json:"anxiety_score"`
	DepressionScore int       `json:"depression_score"`
	StressScore     int       `json:"stress_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// RiskTrendWeek counts the assessments created in one seven-day window
type RiskTrendWeek struct {
	Week     int       `json:"week"` // 1 is the oldest window
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Low      int       `json:"low"`
	Moderate int       `json:"moderate"`
	High     int       `json:"high"`
	Critical int       `json:"critical"`
	Total    int       `json:"total"`
}

// Add folds one aggregation row into the week
func (w *RiskTrendWeek) Add(rc RiskCount) {
	switch rc.Level {
	case RiskLow:
		w.Low += rc.Count
	case RiskModerate:
		w.Moderate += rc.Count
	case RiskHigh:
		w.High += rc.Count
	case RiskCritical:
		w.Critical += rc.Count
	default:
		return
	}
	w.Total += rc.Count
}
