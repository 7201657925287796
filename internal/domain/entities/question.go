package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option count limits for a single question.
const (
	MinOptions = 2
	MaxOptions = 4
)

var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice trivia item.
type Question struct {
	Prompt     string     `json:"question" yaml:"question"`     // question text shown to the user
	Options    []string   `json:"options" yaml:"options"`       // ordered answer options
	Answer     int        `json:"answer" yaml:"answer"`         // 0-based index of the correct option
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"` // difficulty tag(s) used for filtering
}

// Validate checks that the question can be played.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: %q has %d options, want %d-%d",
			ErrInvalidQuestion, q.Prompt, len(q.Options), MinOptions, MaxOptions)
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: %q answer index %d out of range", ErrInvalidQuestion, q.Prompt, q.Answer)
	}
	return nil
}

// HasOption reports whether idx addresses one of the options.
func (q Question) HasOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

// OptionText returns the option at idx, or an empty string when idx is out of range.
func (q Question) OptionText(idx int) string {
	if !q.HasOption(idx) {
		return ""
	}
	return q.Options[idx]
}

// CorrectText returns the text of the correct option.
func (q Question) CorrectText() string {
	return q.OptionText(q.Answer)
}

// IsCorrect reports whether idx is the correct option.
func (q Question) IsCorrect(idx int) bool {
	return idx == q.Answer
}

// Difficulty holds the difficulty tagging of a question.
// Question files use either a single string ("curious, bitcoiner") or a list of tags.
type Difficulty struct {
	Text string   // single string form, matched by substring
	Tags []string // list form, matched by membership
}

// NewDifficulty builds a Difficulty from a list of tags.
func NewDifficulty(tags ...string) Difficulty {
	return Difficulty{Tags: tags}
}

// Matches reports whether the difficulty includes level.
func (d Difficulty) Matches(level string) bool {
	if d.Tags != nil {
		for _, t := range d.Tags {
			if t == level {
				return true
			}
		}
		return false
	}
	return strings.Contains(d.Text, level)
}

func (d Difficulty) String() string {
	if d.Tags != nil {
		return strings.Join(d.Tags, ",")
	}
	return d.Text
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	if d.Tags != nil {
		return json.Marshal(d.Tags)
	}
	return json.Marshal(d.Text)
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*d = Difficulty{Text: text}
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("difficulty must be a string or a list of strings: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	*d = Difficulty{Tags: tags}
	return nil
}

func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = Difficulty{Text: node.Value}
		return nil
	case yaml.SequenceNode:
		tags := make([]string, 0, len(node.Content))
		if err := node.Decode(&tags); err != nil {
			return fmt.Errorf("decode difficulty tags: %w", err)
		}
		*d = Difficulty{Tags: tags}
		return nil
	default:
		return fmt.Errorf("difficulty must be a string or a list of strings (line %d)", node.Line)
	}
}
