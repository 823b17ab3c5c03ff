package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAnswerSetUnmarshalMixedValues(t *testing.T) {
	var answers AnswerSet
	body := `{"mood":"4","sleep":3,"symptoms":["fatigue","headaches"],"additional_thoughts":"I have been tired lately"}`
	if err := json.Unmarshal([]byte(body), &answers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cases := []struct {
		id   string
		kind AnswerKind
		flat string
	}{
		{"mood", AnswerChoice, "4"},
		{"sleep", AnswerChoice, "3"},
		{"symptoms", AnswerMultiChoice, "fatigue,headaches"},
		{"additional_thoughts", AnswerChoice, "I have been tired lately"},
	}
	for _, c := range cases {
		v := answers[c.id]
		if v.Kind != c.kind || v.String() != c.flat {
			t.Fatalf("%s = %+v, want kind %s flat %q", c.id, v, c.kind, c.flat)
		}
	}

	typed := answers.Typed([]QuestionDefinition{{ID: "additional_thoughts", FreeText: true}})
	if typed["additional_thoughts"].Kind != AnswerText {
		t.Fatalf("free-text answer not re-tagged: %+v", typed["additional_thoughts"])
	}
	if typed["mood"].Kind != AnswerChoice {
		t.Fatalf("choice answer changed: %+v", typed["mood"])
	}
}

func TestAnswerValueMarshal(t *testing.T) {
	data, err := json.Marshal(AnswerSet{"a": Choice("1"), "b": MultiChoice("x", "y"), "c": Text("hi")})
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"a":"1"`, `"b":["x","y"]`, `"c":"hi"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("%s missing %s", got, want)
		}
	}
}

func TestWrittenContentKeepsLongText(t *testing.T) {
	a := AnswerSet{"mood": Choice("4"), "note": Text("short"), "thoughts": Text("Exams are stressing me out")}
	got := a.WrittenContent([]string{"mood", "note", "thoughts"})
	if got != "Exams are stressing me out" {
		t.Fatalf("written content = %q", got)
	}
}

func TestNewAssessmentOmitsSentimentWhenMissing(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	narrative := NarrativeResult{Analysis: "ok", SentimentScore: 50, SentimentLabel: SentimentNeutral, Recommendations: []string{"r"}}
	a := NewAssessment("id1", "s1", AnswerSet{"mood": Choice("4")}, SubscaleScores{Anxiety: 10}, RiskLow, narrative, now)
	if a.SentimentScore != nil || a.SentimentLabel != nil {
		t.Fatalf("sentiment should be omitted: %+v", a)
	}
	data, _ := json.Marshal(a)
	if strings.Contains(string(data), "sentiment_") {
		t.Fatalf("sentiment keys present in %s", data)
	}

	narrative.SentimentFound = true
	narrative.SentimentScore = 72
	a = NewAssessment("id2", "s1", AnswerSet{}, SubscaleScores{}, RiskLow, narrative, now)
	if a.SentimentScore == nil || *a.SentimentScore != 72 || *a.SentimentLabel != SentimentNeutral {
		t.Fatalf("sentiment not carried: %+v", a)
	}
}

func TestRiskLevelOrdinal(t *testing.T) {
	for i, l := range RiskLevels {
		if l.Ordinal() != i {
			t.Fatalf("%s ordinal = %d, want %d", l, l.Ordinal(), i)
		}
	}
	if RiskLevel("unknown").Ordinal() != -1 {
		t.Fatalf("unknown level should be -1")
	}
	if RiskModerate.Elevated() || !RiskHigh.Elevated() || !RiskCritical.Elevated() {
		t.Fatalf("elevated levels wrong")
	}
}

func TestRiskDistributionAdd(t *testing.T) {
	var d RiskDistribution
	d.Add(RiskCount{Level: RiskLow, Count: 3})
	d.Add(RiskCount{Level: RiskCritical, Count: 1})
	d.Add(RiskCount{Level: "bogus", Count: 9})
	if d.Low != 3 || d.Critical != 1 || d.Total != 4 {
		t.Fatalf("distribution = %+v", d)
	}
}
