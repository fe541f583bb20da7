// Package validate decides membership in the canonical question model and
// normalizes accepted candidates. It sits between parsers (or any external
// input) and the rest of the pipeline, so every rejection carries one of the
// enumerated reasons below rather than a generic failure.
package validate

import (
	"errors"
	"strings"

	"quiz-practice-service/internal/domain"
)

// DefaultExplanation fills in for questions that carry none, so scored
// output never shows an empty explanation.
const DefaultExplanation = "No explanation provided."

var (
	// ErrInvalidID rejects a negative question id.
	ErrInvalidID = errors.New("id must be a non-negative integer")
	// ErrEmptyPrompt rejects a blank prompt.
	ErrEmptyPrompt = errors.New("prompt must be a non-empty string")
	// ErrTooFewChoices rejects a choice list shorter than the kind allows.
	ErrTooFewChoices = errors.New("choices must hold at least two entries")
	// ErrEmptyChoice rejects a blank entry inside the choice list.
	ErrEmptyChoice = errors.New("choices must all be non-empty strings")
	// ErrAnswerOutOfRange rejects an answer index outside the choice list.
	ErrAnswerOutOfRange = errors.New("answerIndex outside choice range")
)

// Rejection records one candidate that failed validation.
type Rejection struct {
	Index    int
	Question domain.Question
	Err      error
}

// Question checks a candidate against the canonical invariants and returns
// the normalized form: text fields trimmed, kind inferred when absent, and
// a placeholder explanation when none was supplied. It is pure.
//
// A fill-blank candidate is accepted with a single choice (the accepted
// answer text); everything else needs at least two.
func Question(c domain.Question) (domain.Question, error) {
	if c.ID < 0 {
		return domain.Question{}, ErrInvalidID
	}
	prompt := strings.TrimSpace(c.Prompt)
	if prompt == "" {
		return domain.Question{}, ErrEmptyPrompt
	}

	kind := c.Kind
	if kind == "" {
		kind = domain.KindMultipleChoice
	}
	minChoices := 2
	if kind == domain.KindFillBlank {
		minChoices = 1
	}
	if len(c.Choices) < minChoices {
		return domain.Question{}, ErrTooFewChoices
	}

	choices := make([]string, len(c.Choices))
	for i, choice := range c.Choices {
		trimmed := strings.TrimSpace(choice)
		if trimmed == "" {
			return domain.Question{}, ErrEmptyChoice
		}
		choices[i] = trimmed
	}

	if c.AnswerIndex < 0 || c.AnswerIndex >= len(choices) {
		return domain.Question{}, ErrAnswerOutOfRange
	}

	explanation := strings.TrimSpace(c.Explanation)
	if explanation == "" {
		explanation = DefaultExplanation
	}

	return domain.Question{
		ID:          c.ID,
		Prompt:      prompt,
		Choices:     choices,
		AnswerIndex: c.AnswerIndex,
		Explanation: explanation,
		Kind:        kind,
	}, nil
}

// Filter partitions candidates into normalized questions and rejections.
func Filter(candidates []domain.Question) ([]domain.Question, []Rejection) {
	var valid []domain.Question
	var rejected []Rejection
	for i, c := range candidates {
		q, err := Question(c)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, Question: c, Err: err})
			continue
		}
		valid = append(valid, q)
	}
	return valid, rejected
}
