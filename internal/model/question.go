package model

// Category groups questionnaire items into subscales
type Category string

const (
	CategoryMood       Category = "mood"
	CategoryAnxiety    Category = "anxiety"
	CategoryDepression Category = "depression"
	CategoryStress     Category = "stress"
	CategoryGeneral    Category = "general"
)

// Option is one selectable answer with its point value
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// QuestionDefinition is a static questionnaire item
type QuestionDefinition struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Prompt   string   `json:"question"`
	Options  []Option `json:"options"`
	FreeText bool     `json:"is_text_area,omitempty"` // Excluded from scoring
}

// OptionFor returns the option whose value matches, if any
func (q QuestionDefinition) OptionFor(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Scored reports whether the item contributes to subscale scores
func (q QuestionDefinition) Scored() bool {
	return !q.FreeText && len(q.Options) > 0
}

// MaxScore is the highest point value among the options
func (q QuestionDefinition) MaxScore() int {
	max := 0
	for _, opt := range q.Options {
		if opt.Score > max {
			max = opt.Score
		}
	}
	return max
}
