package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"quiz-practice-service/internal/domain"
)

// jsonRecord is the tolerant inbound shape for one structured record.
// Alternate field names seen in the wild are accepted: "options" for
// "choices" and "correctAnswer" for "answerIndex"; the answer indicator may
// be a zero-based index or a choice letter.
type jsonRecord struct {
	ID            *int            `json:"id"`
	Question      string          `json:"question"`
	Choices       []string        `json:"choices"`
	Options       []string        `json:"options"`
	AnswerIndex   json.RawMessage `json:"answerIndex"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
}

// ParseJSON parses the structured list-of-records question format. A
// document whose root is not an array is a file-level error; malformed
// individual records are reported and skipped.
func ParseJSON(content string) ([]domain.Question, []domain.ParseError, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(content), &raws); err != nil {
		return nil, nil, fmt.Errorf("question file must be a JSON array: %w", err)
	}

	var questions []domain.Question
	var errs []domain.ParseError
	for i, raw := range raws {
		ordinal := i + 1
		var rec jsonRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			errs = append(errs, domain.ParseError{Line: ordinal, Reason: fmt.Sprintf("malformed record: %v", err)})
			continue
		}
		q, perr := rec.toQuestion(ordinal)
		if perr != nil {
			errs = append(errs, *perr)
			continue
		}
		questions = append(questions, q)
	}
	return questions, errs, nil
}

func (r jsonRecord) toQuestion(ordinal int) (domain.Question, *domain.ParseError) {
	prompt := strings.TrimSpace(r.Question)
	if prompt == "" {
		return domain.Question{}, recordError(ordinal, "record has no prompt")
	}

	choices := r.Choices
	if len(choices) == 0 {
		choices = r.Options
	}

	kind := domain.KindMultipleChoice
	if blankMarkerRe.MatchString(prompt) {
		kind = domain.KindFillBlank
	}
	minChoices := 2
	if kind == domain.KindFillBlank {
		minChoices = 1
	}
	if len(choices) < minChoices {
		return domain.Question{}, recordError(ordinal, "record has fewer than two choices")
	}

	answerRaw := r.AnswerIndex
	if len(answerRaw) == 0 {
		answerRaw = r.CorrectAnswer
	}
	if len(answerRaw) == 0 {
		return domain.Question{}, recordError(ordinal, "record has no answer")
	}
	idx, err := answerIndexFrom(answerRaw)
	if err != nil {
		return domain.Question{}, recordError(ordinal, err.Error())
	}
	if idx < 0 || idx >= len(choices) {
		return domain.Question{}, recordError(ordinal, fmt.Sprintf("answer index %d outside choice range", idx))
	}

	id := ordinal
	if r.ID != nil && *r.ID >= 0 {
		id = *r.ID
	}
	return domain.Question{
		ID:          id,
		Prompt:      prompt,
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: strings.TrimSpace(r.Explanation),
		Kind:        kind,
	}, nil
}

// answerIndexFrom accepts a zero-based numeric index or a single choice
// letter ("B" maps to 1 via its alphabetical position).
func answerIndexFrom(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if letterRe.MatchString(s) {
			return int(strings.ToUpper(s)[0] - 'A'), nil
		}
		return 0, fmt.Errorf("unrecognized answer letter %q", s)
	}
	return 0, fmt.Errorf("answer indicator must be an index or a letter")
}
