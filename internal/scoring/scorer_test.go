package scoring

import (
	"errors"
	"reflect"
	"testing"

	"mindwell/internal/model"
)

func choices(kv map[string]string) model.AnswerSet {
	out := make(model.AnswerSet, len(kv))
	for k, v := range kv {
		out[k] = model.Choice(v)
	}
	return out
}

func TestComputeScores(t *testing.T) {
	defs := Questionnaire()
	tests := []struct {
		name    string
		answers model.AnswerSet
		totals  RawTotals
		want    model.SubscaleScores
		risk    model.RiskLevel
	}{
		{
			name: "mixed week",
			answers: choices(map[string]string{
				"mood": "4", "anxiety": "3", "worry": "3", "interest": "2",
				"hopeless": "2", "sleep": "3", "stress": "2", "concentration": "3",
			}),
			totals: RawTotals{Anxiety: 4, Depression: 6, Stress: 4, General: 10},
			want:   model.SubscaleScores{Anxiety: 50, Depression: 75, Stress: 80, OverallWellbeing: 100, WellbeingRaw: 110},
			risk:   model.RiskHigh,
		},
		{
			name: "worst case",
			answers: choices(map[string]string{
				"mood": "1", "anxiety": "1", "worry": "1", "interest": "1",
				"hopeless": "1", "sleep": "1", "stress": "1", "concentration": "1",
			}),
			totals: RawTotals{Anxiety: 8, Depression: 8, Stress: 5, General: 3},
			want:   model.SubscaleScores{Anxiety: 100, Depression: 100, Stress: 100, OverallWellbeing: 40, WellbeingRaw: 40},
			risk:   model.RiskCritical,
		},
		{
			name: "best case",
			answers: choices(map[string]string{
				"mood": "5", "anxiety": "4", "worry": "4", "interest": "4",
				"hopeless": "4", "sleep": "5", "stress": "5", "concentration": "5",
			}),
			totals: RawTotals{Anxiety: 2, Depression: 2, Stress: 1, General: 15},
			want:   model.SubscaleScores{Anxiety: 25, Depression: 25, Stress: 20, OverallWellbeing: 100, WellbeingRaw: 180},
			risk:   model.RiskLow,
		},
		{
			name:    "nothing answered",
			answers: model.AnswerSet{},
			want:    model.SubscaleScores{OverallWellbeing: 100, WellbeingRaw: 130},
			risk:    model.RiskLow,
		},
		{
			name: "half point rounds up",
			answers: choices(map[string]string{
				"anxiety": "4", "additional_thoughts": "ignored", "unknown": "3",
			}),
			totals: RawTotals{Anxiety: 1},
			want:   model.SubscaleScores{Anxiety: 13, OverallWellbeing: 100, WellbeingRaw: 125},
			risk:   model.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Totals(tt.answers, defs); got != tt.totals {
				t.Fatalf("Totals = %+v, want %+v", got, tt.totals)
			}
			got := ComputeScores(tt.answers, defs)
			if got != tt.want {
				t.Fatalf("ComputeScores = %+v, want %+v", got, tt.want)
			}
			if risk := ClassifyRisk(got); risk != tt.risk {
				t.Fatalf("ClassifyRisk = %s, want %s", risk, tt.risk)
			}
		})
	}
}

func TestSubscalesStayInRangeForValidAnswers(t *testing.T) {
	defs := Questionnaire()
	var scored []model.QuestionDefinition
	for _, q := range defs {
		if q.Scored() {
			scored = append(scored, q)
		}
	}
	// Walk every combination of first/last option per scored item.
	for mask := 0; mask < 1<<len(scored); mask++ {
		answers := model.AnswerSet{}
		for i, q := range scored {
			opt := q.Options[0]
			if mask&(1<<i) != 0 {
				opt = q.Options[len(q.Options)-1]
			}
			answers[q.ID] = model.Choice(opt.Value)
		}
		s := ComputeScores(answers, defs)
		for name, v := range map[string]int{"anxiety": s.Anxiety, "depression": s.Depression, "stress": s.Stress, "wellbeing": s.OverallWellbeing} {
			if v < 0 || v > 100 {
				t.Fatalf("mask %b: %s = %d out of range", mask, name, v)
			}
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		avg  float64
		want model.RiskLevel
	}{
		{100, model.RiskCritical},
		{75.0, model.RiskCritical},
		{74.999, model.RiskHigh},
		{50.0, model.RiskHigh},
		{49.999, model.RiskModerate},
		{25.0, model.RiskModerate},
		{24.999, model.RiskLow},
		{0, model.RiskLow},
	}
	for _, tt := range tests {
		if got := classifyAverage(tt.avg); got != tt.want {
			t.Errorf("classifyAverage(%v) = %s, want %s", tt.avg, got, tt.want)
		}
	}

	if got := ClassifyRisk(model.SubscaleScores{Anxiety: 75, Depression: 75, Stress: 75}); got != model.RiskCritical {
		t.Errorf("avg 75 = %s, want critical", got)
	}
	if got := ClassifyRisk(model.SubscaleScores{Anxiety: 50, Depression: 25, Stress: 0}); got != model.RiskModerate {
		t.Errorf("avg 25 = %s, want moderate", got)
	}
}

func TestClassifyRiskIsMonotonic(t *testing.T) {
	for a := 0; a <= 100; a += 5 {
		for d := 0; d <= 100; d += 5 {
			for s := 0; s <= 95; s += 5 {
				base := ClassifyRisk(model.SubscaleScores{Anxiety: a, Depression: d, Stress: s})
				bumps := []model.SubscaleScores{
					{Anxiety: min(a+5, 100), Depression: d, Stress: s},
					{Anxiety: a, Depression: min(d+5, 100), Stress: s},
					{Anxiety: a, Depression: d, Stress: s + 5},
				}
				for _, b := range bumps {
					if ClassifyRisk(b).Ordinal() < base.Ordinal() {
						t.Fatalf("risk decreased from %+v to %+v", model.SubscaleScores{Anxiety: a, Depression: d, Stress: s}, b)
					}
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	defs := Questionnaire()
	complete := map[string]string{
		"mood": "4", "anxiety": "3", "worry": "3", "interest": "2",
		"hopeless": "2", "sleep": "3", "stress": "2", "concentration": "3",
	}

	if err := Validate(choices(complete), defs); err != nil {
		t.Fatalf("complete answers: %v", err)
	}

	withExtras := choices(complete)
	withExtras["unknown_item"] = model.Choice("9")
	withExtras[AdditionalThoughtsID] = model.Text("")
	if err := Validate(withExtras, defs); err != nil {
		t.Fatalf("unknown ids and empty free text must be accepted: %v", err)
	}

	broken := choices(complete)
	delete(broken, "worry")
	broken["sleep"] = model.Choice("")
	broken["stress"] = model.Choice("9")
	broken["mood"] = model.MultiChoice("1", "2")

	err := Validate(broken, defs)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if want := []string{"worry", "sleep"}; !reflect.DeepEqual(verr.Missing, want) {
		t.Errorf("Missing = %v, want %v", verr.Missing, want)
	}
	if want := []string{"mood", "stress"}; !reflect.DeepEqual(verr.Invalid, want) {
		t.Errorf("Invalid = %v, want %v", verr.Invalid, want)
	}
}

func TestUnknownIDs(t *testing.T) {
	got := UnknownIDs(choices(map[string]string{"mood": "1", "zeta": "x", "alpha": "y"}), Questionnaire())
	if want := []string{"alpha", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("UnknownIDs = %v, want %v", got, want)
	}
}

func TestQuestionnaireShape(t *testing.T) {
	defs := Questionnaire()
	if len(defs) != 9 {
		t.Fatalf("questionnaire has %d items", len(defs))
	}
	counts := map[model.Category]int{}
	free := 0
	for _, q := range defs {
		if q.FreeText {
			free++
			continue
		}
		counts[q.Category]++
	}
	want := map[model.Category]int{
		model.CategoryMood: 1, model.CategoryAnxiety: 2, model.CategoryDepression: 2,
		model.CategoryStress: 1, model.CategoryGeneral: 2,
	}
	if free != 1 || !reflect.DeepEqual(counts, want) {
		t.Fatalf("free=%d counts=%v", free, counts)
	}

	// Questionnaire hands out copies.
	defs[0].Options[0].Score = 99
	if Questionnaire()[0].Options[0].Score == 99 {
		t.Fatal("questionnaire definitions were mutated through a copy")
	}
}

func TestMaxTotals(t *testing.T) {
	got := MaxTotals(Questionnaire())
	if want := (RawTotals{Anxiety: 8, Depression: 8, Stress: 5, General: 15}); got != want {
		t.Fatalf("MaxTotals = %+v, want %+v", got, want)
	}

	s := FromTotals(got)
	if s.Anxiety != 100 || s.Depression != 100 || s.Stress != 100 {
		t.Fatalf("max answers scored %+v", s)
	}
}
