package format

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-practice-service/internal/domain"
)

// Delimited-text grammar. Records are separated by a literal "---" line or
// by a gap of two or more blank lines. Within a record the first line is the
// prompt (minus an optional ordinal label), choice lines are letter-prefixed,
// and answer/explanation lines carry a recognized marker in English or
// Chinese. Any other non-empty line extends the prompt (before the answer
// line) or the explanation (after it).
var (
	ordinalRe     = regexp.MustCompile(`^(?:(?:Question|题目)\s*\d+\s*[:：.]?|\d+\s*[.、])\s*`)
	choiceRe      = regexp.MustCompile(`^([A-Z])[.)]\s*(.+)$`)
	answerRe      = regexp.MustCompile(`^(?:答案|Answer)\s*[:：]\s*(.+)$|^(?:答案|Answer)\s+(.+)$`)
	explanationRe = regexp.MustCompile(`^(?:解析|Explanation)\s*[:：]?\s*(.*)$`)
	blankMarkerRe = regexp.MustCompile(`_{4,}`)
	letterRe      = regexp.MustCompile(`^[A-Za-z]$`)
)

// ParseText parses the delimited plain-text question format.
func ParseText(content string) ([]domain.Question, []domain.ParseError, error) {
	var questions []domain.Question
	var errs []domain.ParseError

	for i, block := range splitRecords(content) {
		ordinal := i + 1
		q, perr := parseTextRecord(block, ordinal)
		if perr != nil {
			errs = append(errs, *perr)
			continue
		}
		questions = append(questions, q)
	}
	return questions, errs, nil
}

// splitRecords breaks the file into records on "---" separator lines or runs
// of two or more blank lines. Single blank lines stay inside a record.
func splitRecords(content string) [][]string {
	var records [][]string
	var current []string
	blankRun := 0

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
			current = nil
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "---":
			blankRun = 0
			flush()
		case line == "":
			blankRun++
			if blankRun >= 2 {
				flush()
			}
		default:
			blankRun = 0
			current = append(current, line)
		}
	}
	flush()
	return records
}

func parseTextRecord(lines []string, ordinal int) (domain.Question, *domain.ParseError) {
	prompt := ordinalRe.ReplaceAllString(lines[0], "")
	var choices []string
	var explanationParts []string
	answerText := ""
	answerSeen := false

	for _, line := range lines[1:] {
		if !answerSeen {
			if m := answerRe.FindStringSubmatch(line); m != nil {
				answerText = strings.TrimSpace(m[1] + m[2])
				answerSeen = true
				continue
			}
		}
		if m := explanationRe.FindStringSubmatch(line); m != nil {
			if m[1] != "" {
				explanationParts = append(explanationParts, m[1])
			}
			continue
		}
		if answerSeen {
			// Everything after the answer line reads as explanation text.
			explanationParts = append(explanationParts, line)
			continue
		}
		if m := choiceRe.FindStringSubmatch(line); m != nil {
			choices = append(choices, strings.TrimSpace(m[2]))
			continue
		}
		// Multi-line prompt support.
		if prompt != "" {
			prompt += " " + line
		} else {
			prompt = line
		}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return domain.Question{}, recordError(ordinal, "record has no prompt")
	}

	q := domain.Question{
		ID:          ordinal,
		Prompt:      prompt,
		Explanation: strings.TrimSpace(strings.Join(explanationParts, " ")),
	}

	if blankMarkerRe.MatchString(prompt) {
		// Fill-in record: the accepted answer text is the single choice.
		if !answerSeen || answerText == "" {
			return domain.Question{}, recordError(ordinal, "fill-in record has no answer")
		}
		q.Kind = domain.KindFillBlank
		q.Choices = []string{answerText}
		q.AnswerIndex = 0
		return q, nil
	}

	if len(choices) < 2 {
		return domain.Question{}, recordError(ordinal, "record has fewer than two choices")
	}
	if !answerSeen || answerText == "" {
		return domain.Question{}, recordError(ordinal, "record has no answer")
	}
	if !letterRe.MatchString(answerText) {
		return domain.Question{}, recordError(ordinal, fmt.Sprintf("unrecognized answer letter %q", answerText))
	}
	idx := int(strings.ToUpper(answerText)[0] - 'A')
	if idx >= len(choices) {
		return domain.Question{}, recordError(ordinal, fmt.Sprintf("answer %s outside choice range", strings.ToUpper(answerText)))
	}

	q.Kind = domain.KindMultipleChoice
	q.Choices = choices
	q.AnswerIndex = idx
	return q, nil
}

func recordError(ordinal int, reason string) *domain.ParseError {
	return &domain.ParseError{Line: ordinal, Reason: reason}
}
