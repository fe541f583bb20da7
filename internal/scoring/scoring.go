// Package scoring turns a session and its recorded answers into a scored
// result. Score is a pure function: identical inputs always yield identical
// output, and the session is never mutated.
package scoring

import (
	"math"

	"quiz-practice-service/internal/domain"
)

const fallbackExplanation = "No explanation provided."

// Score walks the session's questions in order, matches each against the
// recorded answer for its id, and accumulates the aggregate. An unanswered
// question scores as incorrect with a nil SelectedIndex.
func Score(s *domain.Session) domain.ScoredResult {
	answers := make(map[int]domain.Answer, len(s.Answers))
	for _, a := range s.Answers {
		answers[a.QuestionID] = a
	}

	correctCount := 0
	results := make([]domain.QuestionResult, 0, len(s.Questions))
	for _, q := range s.Questions {
		var selected *int
		if a, ok := answers[q.ID]; ok {
			idx := a.SelectedIndex
			selected = &idx
		}
		isCorrect := selected != nil && *selected == q.ShuffledAnswerIndex
		if isCorrect {
			correctCount++
		}
		results = append(results, domain.QuestionResult{
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			Choices:       q.Choices,
			SelectedIndex: selected,
			CorrectIndex:  q.ShuffledAnswerIndex,
			IsCorrect:     isCorrect,
			Explanation:   explanationFor(s, q),
		})
	}

	total := len(s.Questions)
	score := 0
	if total > 0 {
		score = int(math.Round(100 * float64(correctCount) / float64(total)))
	}
	return domain.ScoredResult{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
		Results:        results,
	}
}

// explanationFor prefers the question's own explanation, then the session's
// explanation map, then a fixed placeholder, so output is never empty.
func explanationFor(s *domain.Session, q domain.ShuffledQuestion) string {
	if q.Explanation != "" {
		return q.Explanation
	}
	if e, ok := s.Explanations[q.ID]; ok && e != "" {
		return e
	}
	return fallbackExplanation
}
