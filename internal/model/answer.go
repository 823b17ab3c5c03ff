package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags the shape of an answer value
type AnswerKind string

const (
	AnswerText        AnswerKind = "text"
	AnswerChoice      AnswerKind = "choice"
	AnswerMultiChoice AnswerKind = "multi_choice"
)

// AnswerValue is a tagged answer: free text, one option value, or several option values
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Choice  string
	Choices []string
}

func Text(s string) AnswerValue { return AnswerValue{Kind: AnswerText, Text: s} }

func Choice(v string) AnswerValue { return AnswerValue{Kind: AnswerChoice, Choice: v} }

func MultiChoice(vs ...string) AnswerValue {
	return AnswerValue{Kind: AnswerMultiChoice, Choices: append([]string(nil), vs...)}
}

// String is the flat form used for storage and prompts
func (v AnswerValue) String() string {
	switch v.Kind {
	case AnswerText:
		return v.Text
	case AnswerMultiChoice:
		return strings.Join(v.Choices, ",")
	default:
		return v.Choice
	}
}

// IsEmpty reports whether the value carries no content
func (v AnswerValue) IsEmpty() bool {
	switch v.Kind {
	case AnswerText:
		return strings.TrimSpace(v.Text) == ""
	case AnswerMultiChoice:
		return len(v.Choices) == 0
	default:
		return v.Choice == ""
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Kind == AnswerMultiChoice {
		choices := v.Choices
		if choices == nil {
			choices = []string{}
		}
		return json.Marshal(choices)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts a string, a number or a list of strings.
// Strings decode as choices; AnswerSet.Typed re-tags free-text items.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{Kind: AnswerChoice}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Choice(s)
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("answer list must contain strings: %w", err)
		}
		*v = MultiChoice(vs...)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported answer value %s", string(data))
		}
		if i, err := n.Int64(); err == nil {
			*v = Choice(strconv.FormatInt(i, 10))
		} else {
			*v = Choice(n.String())
		}
	}
	return nil
}

// AnswerSet maps question id to the submitted value
type AnswerSet map[string]AnswerValue

// Typed re-tags answers to free-text questions as Text values
func (a AnswerSet) Typed(defs []QuestionDefinition) AnswerSet {
	freeText := make(map[string]bool, len(defs))
	for _, q := range defs {
		if q.FreeText {
			freeText[q.ID] = true
		}
	}
	out := make(AnswerSet, len(a))
	for id, v := range a {
		if freeText[id] && v.Kind != AnswerText {
			v = Text(v.String())
		}
		out[id] = v
	}
	return out
}

// Flatten returns the stored representation of the answers
func (a AnswerSet) Flatten() map[string]string {
	out := make(map[string]string, len(a))
	for id, v := range a {
		out[id] = v.String()
	}
	return out
}

// WrittenContent joins free text longer than 10 characters
func (a AnswerSet) WrittenContent(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := a[k]
		if !ok || v.Kind == AnswerMultiChoice {
			continue
		}
		s := v.String()
		if len([]rune(s)) > 10 {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
