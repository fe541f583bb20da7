package format

import (
	"strings"
	"testing"

	"quiz-practice-service/internal/domain"
)

func TestParseJSONRecords(t *testing.T) {
	content := `[
		{"id": 7, "question": "2+2=?", "choices": ["3", "4"], "answerIndex": 1, "explanation": "arithmetic"},
		{"question": "Pick B", "options": ["a", "b", "c"], "correctAnswer": "B"}
	]`

	questions, errs, err := ParseJSON(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no record errors, got %+v", errs)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	if questions[0].ID != 7 || questions[0].AnswerIndex != 1 || questions[0].Explanation != "arithmetic" {
		t.Fatalf("unexpected first question %+v", questions[0])
	}
	if questions[1].ID != 2 {
		t.Fatalf("expected ordinal id fallback, got %d", questions[1].ID)
	}
	if questions[1].AnswerIndex != 1 {
		t.Fatalf("expected letter B to map to index 1, got %d", questions[1].AnswerIndex)
	}
	if len(questions[1].Choices) != 3 {
		t.Fatalf("expected options fallback, got %v", questions[1].Choices)
	}
}

func TestParseJSONFillBlank(t *testing.T) {
	content := `[{"question": "Boiling point of water is ____ Celsius", "choices": ["100"], "answerIndex": 0}]`

	questions, errs, err := ParseJSON(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 || len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d with errors %+v", len(questions), errs)
	}
	if questions[0].Kind != domain.KindFillBlank {
		t.Fatalf("expected fill_blank, got %s", questions[0].Kind)
	}
}

func TestParseJSONNonArrayRootIsFatal(t *testing.T) {
	if _, _, err := ParseJSON(`{"question": "not a list"}`); err == nil {
		t.Fatalf("expected file-level error for non-array root")
	}
	if _, _, err := ParseJSON(`not json at all`); err == nil {
		t.Fatalf("expected file-level error for broken JSON")
	}
}

func TestParseJSONBadRecordsSkipped(t *testing.T) {
	content := `[
		"not an object",
		{"question": "", "choices": ["a", "b"], "answerIndex": 0},
		{"question": "no answer", "choices": ["a", "b"]},
		{"question": "bad index", "choices": ["a", "b"], "answerIndex": 5},
		{"question": "fine", "choices": ["a", "b"], "answerIndex": 0}
	]`

	questions, errs, err := ParseJSON(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 1 || questions[0].Prompt != "fine" {
		t.Fatalf("expected only the valid record, got %+v", questions)
	}
	if len(errs) != 4 {
		t.Fatalf("expected 4 record errors, got %+v", errs)
	}
	if errs[1].Line != 2 || !strings.Contains(errs[1].Reason, "no prompt") {
		t.Fatalf("unexpected error %+v", errs[1])
	}
	if !strings.Contains(errs[3].Reason, "outside choice range") {
		t.Fatalf("unexpected error %+v", errs[3])
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"algebra.txt", KindText, true},
		{"history/unit1.JSON", KindJSON, true},
		{"notes.md", "", false},
		{"noextension", "", false},
	}
	for _, c := range cases {
		kind, err := Detect(c.name)
		if c.ok {
			if err != nil || kind != c.want {
				t.Fatalf("Detect(%q) = %v, %v; want %v", c.name, kind, err, c.want)
			}
			continue
		}
		if err != domain.ErrUnsupportedFormat {
			t.Fatalf("Detect(%q) expected ErrUnsupportedFormat, got %v", c.name, err)
		}
	}
}
