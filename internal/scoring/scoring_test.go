package scoring

import (
	"testing"
	"time"

	"quiz-practice-service/internal/domain"
)

func sessionWith(questions []domain.ShuffledQuestion, answers []domain.Answer) *domain.Session {
	return &domain.Session{
		SessionID: "quiz_test",
		Questions: questions,
		Answers:   answers,
		CreatedAt: time.Now(),
	}
}

func TestScoreTwoOfThree(t *testing.T) {
	questions := []domain.ShuffledQuestion{
		{ID: 1, Prompt: "q1", Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0, Explanation: "e1"},
		{ID: 2, Prompt: "q2", Choices: []string{"a", "b"}, ShuffledAnswerIndex: 1, Explanation: "e2"},
		{ID: 3, Prompt: "q3", Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0, Explanation: "e3"},
	}
	answers := []domain.Answer{
		{QuestionID: 1, SelectedIndex: 0},
		{QuestionID: 2, SelectedIndex: 1},
		{QuestionID: 3, SelectedIndex: 1},
	}

	result := Score(sessionWith(questions, answers))
	if result.CorrectCount != 2 || result.TotalQuestions != 3 {
		t.Fatalf("expected 2/3, got %d/%d", result.CorrectCount, result.TotalQuestions)
	}
	if result.Score != 67 {
		t.Fatalf("expected rounded score 67, got %d", result.Score)
	}
	if !result.Results[0].IsCorrect || !result.Results[1].IsCorrect || result.Results[2].IsCorrect {
		t.Fatalf("unexpected per-question outcomes %+v", result.Results)
	}
}

func TestScoreUnansweredIsIncorrect(t *testing.T) {
	questions := []domain.ShuffledQuestion{
		{ID: 1, Prompt: "q1", Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0, Explanation: "e1"},
	}

	result := Score(sessionWith(questions, nil))
	if result.Results[0].SelectedIndex != nil {
		t.Fatalf("expected nil selected index, got %v", *result.Results[0].SelectedIndex)
	}
	if result.Results[0].IsCorrect {
		t.Fatalf("unanswered question must be incorrect")
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
}

func TestScoreEmptySession(t *testing.T) {
	result := Score(sessionWith(nil, nil))
	if result.Score != 0 || result.TotalQuestions != 0 {
		t.Fatalf("empty session must score 0, got %+v", result)
	}
}

func TestScoreBounds(t *testing.T) {
	for answered := 0; answered <= 7; answered++ {
		questions := make([]domain.ShuffledQuestion, 7)
		var answers []domain.Answer
		for i := range questions {
			questions[i] = domain.ShuffledQuestion{ID: i + 1, Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0}
			if i < answered {
				answers = append(answers, domain.Answer{QuestionID: i + 1, SelectedIndex: 0})
			}
		}
		result := Score(sessionWith(questions, answers))
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("score out of bounds: %d", result.Score)
		}
		if result.CorrectCount != answered {
			t.Fatalf("expected %d correct, got %d", answered, result.CorrectCount)
		}
	}
}

func TestScoreIsDeterministicAndPure(t *testing.T) {
	questions := []domain.ShuffledQuestion{
		{ID: 1, Prompt: "q1", Choices: []string{"a", "b"}, ShuffledAnswerIndex: 1, Explanation: "e1"},
	}
	answers := []domain.Answer{{QuestionID: 1, SelectedIndex: 1}}
	sess := sessionWith(questions, answers)

	first := Score(sess)
	second := Score(sess)
	if first.Score != second.Score || first.CorrectCount != second.CorrectCount {
		t.Fatalf("scoring not deterministic: %+v vs %+v", first, second)
	}
	if sess.Submitted || len(sess.Answers) != 1 {
		t.Fatalf("scoring mutated the session: %+v", sess)
	}
}

func TestScoreExplanationFallbacks(t *testing.T) {
	questions := []domain.ShuffledQuestion{
		{ID: 1, Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0, Explanation: "own"},
		{ID: 2, Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0},
		{ID: 3, Choices: []string{"a", "b"}, ShuffledAnswerIndex: 0},
	}
	sess := sessionWith(questions, nil)
	sess.Explanations = map[int]string{2: "from map"}

	result := Score(sess)
	if result.Results[0].Explanation != "own" {
		t.Fatalf("expected question explanation, got %q", result.Results[0].Explanation)
	}
	if result.Results[1].Explanation != "from map" {
		t.Fatalf("expected session map fallback, got %q", result.Results[1].Explanation)
	}
	if result.Results[2].Explanation != fallbackExplanation {
		t.Fatalf("expected placeholder, got %q", result.Results[2].Explanation)
	}
}
