package scoring

import "mindwell/internal/model"

var frequencyOptions = []model.Option{
	{Value: "1", Label: "Nearly every day", Score: 4},
	{Value: "2", Label: "More than half the days", Score: 3},
	{Value: "3", Label: "Several days", Score: 2},
	{Value: "4", Label: "Not at all", Score: 1},
}

var qualityOptions = []model.Option{
	{Value: "1", Label: "Very poor", Score: 1},
	{Value: "2", Label: "Poor", Score: 2},
	{Value: "3", Label: "Fair", Score: 3},
	{Value: "4", Label: "Good", Score: 4},
	{Value: "5", Label: "Excellent", Score: 5},
}

var stressOptions = []model.Option{
	{Value: "1", Label: "Extremely stressed", Score: 5},
	{Value: "2", Label: "Very stressed", Score: 4},
	{Value: "3", Label: "Moderately stressed", Score: 3},
	{Value: "4", Label: "Slightly stressed", Score: 2},
	{Value: "5", Label: "Not stressed at all", Score: 1},
}

// AdditionalThoughtsID is the free-text item
const AdditionalThoughtsID = "additional_thoughts"

var defaultQuestionnaire = []model.QuestionDefinition{
	{ID: "mood", Category: model.CategoryMood, Prompt: "How would you describe your overall mood in the past week?", Options: qualityOptions},
	{ID: "anxiety", Category: model.CategoryAnxiety, Prompt: "How often have you felt nervous, anxious, or on edge?", Options: frequencyOptions},
	{ID: "worry", Category: model.CategoryAnxiety, Prompt: "How often have you been unable to stop or control worrying?", Options: frequencyOptions},
	{ID: "interest", Category: model.CategoryDepression, Prompt: "How often have you had little interest or pleasure in doing things?", Options: frequencyOptions},
	{ID: "hopeless", Category: model.CategoryDepression, Prompt: "How often have you felt down, depressed, or hopeless?", Options: frequencyOptions},
	{ID: "sleep", Category: model.CategoryGeneral, Prompt: "How would you rate your sleep quality in the past week?", Options: qualityOptions},
	{ID: "stress", Category: model.CategoryStress, Prompt: "How stressed have you felt in the past week?", Options: stressOptions},
	{ID: "concentration", Category: model.CategoryGeneral, Prompt: "How has your ability to concentrate been?", Options: qualityOptions},
	{ID: AdditionalThoughtsID, Category: model.CategoryGeneral, Prompt: "Please share any additional thoughts about how you've been feeling lately (optional)", FreeText: true},
}

// Questionnaire returns a copy of the fixed 9-item questionnaire in display order
func Questionnaire() []model.QuestionDefinition {
	out := make([]model.QuestionDefinition, len(defaultQuestionnaire))
	for i, q := range defaultQuestionnaire {
		q.Options = append([]model.Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Lookup finds a question by id
func Lookup(defs []model.QuestionDefinition, id string) (model.QuestionDefinition, bool) {
	for _, q := range defs {
		if q.ID == id {
			return q, true
		}
	}
	return model.QuestionDefinition{}, false
}
