package format

import (
	"strings"
	"testing"

	"quiz-practice-service/internal/domain"
)

func TestParseTextMultipleChoice(t *testing.T) {
	content := "1. 2+2=?\nA. 3\nB. 4\nC. 5\n答案：B\n解析：basic arithmetic"

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no record errors, got %+v", errs)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Prompt != "2+2=?" {
		t.Fatalf("expected ordinal stripped from prompt, got %q", q.Prompt)
	}
	if len(q.Choices) != 3 || q.Choices[0] != "3" || q.Choices[1] != "4" || q.Choices[2] != "5" {
		t.Fatalf("unexpected choices %v", q.Choices)
	}
	if q.AnswerIndex != 1 {
		t.Fatalf("expected answer index 1, got %d", q.AnswerIndex)
	}
	if q.Explanation != "basic arithmetic" {
		t.Fatalf("unexpected explanation %q", q.Explanation)
	}
	if q.Kind != domain.KindMultipleChoice {
		t.Fatalf("expected multiple_choice, got %s", q.Kind)
	}
}

func TestParseTextFillBlank(t *testing.T) {
	content := "Water freezes at ____ degrees Celsius\n答案：0"

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no record errors, got %+v", errs)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Kind != domain.KindFillBlank {
		t.Fatalf("expected fill_blank, got %s", q.Kind)
	}
	if len(q.Choices) != 1 || q.Choices[0] != "0" {
		t.Fatalf("expected single accepted-answer choice, got %v", q.Choices)
	}
	if q.AnswerIndex != 0 {
		t.Fatalf("expected answer index 0, got %d", q.AnswerIndex)
	}
}

func TestParseTextEnglishMarkers(t *testing.T) {
	content := strings.Join([]string{
		"Question 3: Which planet is closest to the sun?",
		"A) Venus",
		"B) Mercury",
		"Answer: B",
		"Explanation: Mercury orbits closest.",
	}, "\n")

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no record errors, got %+v", errs)
	}
	q := questions[0]
	if q.Prompt != "Which planet is closest to the sun?" {
		t.Fatalf("unexpected prompt %q", q.Prompt)
	}
	if q.AnswerIndex != 1 {
		t.Fatalf("expected answer index 1, got %d", q.AnswerIndex)
	}
	if q.Explanation != "Mercury orbits closest." {
		t.Fatalf("unexpected explanation %q", q.Explanation)
	}
}

func TestParseTextMultiLinePrompt(t *testing.T) {
	content := strings.Join([]string{
		"1. A train leaves at 9:00",
		"and arrives at 11:30.",
		"How long was the trip?",
		"A. 1.5 hours",
		"B. 2.5 hours",
		"答案：B",
	}, "\n")

	questions, _, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "A train leaves at 9:00 and arrives at 11:30. How long was the trip?"
	if questions[0].Prompt != want {
		t.Fatalf("expected space-joined prompt %q, got %q", want, questions[0].Prompt)
	}
}

func TestParseTextSeparators(t *testing.T) {
	content := strings.Join([]string{
		"First ____ here",
		"答案：one",
		"---",
		"Second ____ here",
		"答案：two",
		"",
		"",
		"Third ____ here",
		"答案：three",
	}, "\n")

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no record errors, got %+v", errs)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 records, got %d", len(questions))
	}
	if questions[2].Choices[0] != "three" {
		t.Fatalf("unexpected third answer %v", questions[2].Choices)
	}
}

func TestParseTextSingleBlankLineStaysInRecord(t *testing.T) {
	content := strings.Join([]string{
		"1. Pick one",
		"",
		"A. yes",
		"B. no",
		"答案：A",
	}, "\n")

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(errs) != 0 || len(questions) != 1 {
		t.Fatalf("expected one intact record, got %d questions %+v", len(questions), errs)
	}
}

func TestParseTextRecordErrorsDoNotAbortFile(t *testing.T) {
	content := strings.Join([]string{
		"1. Only one choice",
		"A. lonely",
		"答案：A",
		"---",
		"2. Missing answer",
		"A. yes",
		"B. no",
		"---",
		"3. Out of range",
		"A. yes",
		"B. no",
		"答案：D",
		"---",
		"4. Fine",
		"A. yes",
		"B. no",
		"答案：A",
	}, "\n")

	questions, errs, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected only the valid record, got %d", len(questions))
	}
	if questions[0].Prompt != "Fine" {
		t.Fatalf("unexpected surviving record %q", questions[0].Prompt)
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 record errors, got %+v", errs)
	}
	for i, wantLine := range []int{1, 2, 3} {
		if errs[i].Line != wantLine {
			t.Fatalf("expected error %d at record %d, got %+v", i, wantLine, errs[i])
		}
	}
	if !strings.Contains(errs[0].Reason, "fewer than two choices") {
		t.Fatalf("unexpected reason %q", errs[0].Reason)
	}
	if !strings.Contains(errs[1].Reason, "no answer") {
		t.Fatalf("unexpected reason %q", errs[1].Reason)
	}
	if !strings.Contains(errs[2].Reason, "outside choice range") {
		t.Fatalf("unexpected reason %q", errs[2].Reason)
	}
}

func TestParseTextExplanationAfterAnswer(t *testing.T) {
	content := strings.Join([]string{
		"Capital of France ____",
		"答案：Paris",
		"The capital has been Paris",
		"since 987.",
	}, "\n")

	questions, _, err := ParseText(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "The capital has been Paris since 987."
	if questions[0].Explanation != want {
		t.Fatalf("expected trailing lines to join explanation, got %q", questions[0].Explanation)
	}
}
