package domain

import "time"

// Kind distinguishes how a question is answered.
type Kind string

const (
	// KindMultipleChoice questions carry two or more choices and exactly one
	// correct index.
	KindMultipleChoice Kind = "multiple_choice"
	// KindFillBlank questions carry a single choice holding the accepted
	// answer text; AnswerIndex is always 0.
	KindFillBlank Kind = "fill_blank"
)

// Question is the canonical question model produced by parsing + validation.
// AnswerIndex always indexes a valid element of Choices.
type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
	Kind        Kind     `json:"kind"`
}

// ShuffledQuestion is a presentation projection of a Question after choice
// reordering. ShuffledAnswerIndex points at the same logical choice that
// OriginalAnswerIndex pointed at before the reorder.
type ShuffledQuestion struct {
	ID                  int      `json:"id"`
	Prompt              string   `json:"question"`
	Choices             []string `json:"choices"`
	OriginalAnswerIndex int      `json:"originalAnswerIndex"`
	ShuffledAnswerIndex int      `json:"shuffledAnswerIndex"`
	Explanation         string   `json:"explanation"`
}

// Answer is one recorded answer inside a session. At most one per question;
// re-answering overwrites with a newer timestamp.
type Answer struct {
	QuestionID    int       `json:"questionId"`
	SelectedIndex int       `json:"selectedIndex"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// AnswerSubmission is the inbound shape used when recording answers.
type AnswerSubmission struct {
	QuestionID    int `json:"questionId"`
	SelectedIndex int `json:"selectedIndex"`
}

// Session is one quiz attempt. It is plain serializable data: callers round-
// trip it through the client between operations, so every operation must
// re-validate it rather than trust it.
type Session struct {
	SessionID    string             `json:"sessionId"`
	Questions    []ShuffledQuestion `json:"questions"`
	Answers      []Answer           `json:"answers"`
	Explanations map[int]string     `json:"explanations,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	Submitted    bool               `json:"submitted"`
	SubmittedAt  *time.Time         `json:"submittedAt,omitempty"`
}

// QuestionResult is the scored outcome for a single question. SelectedIndex
// is nil when the question was never answered; that counts as incorrect.
type QuestionResult struct {
	QuestionID    int      `json:"questionId"`
	Prompt        string   `json:"question"`
	Choices       []string `json:"choices"`
	SelectedIndex *int     `json:"selectedIndex"`
	CorrectIndex  int      `json:"correctIndex"`
	IsCorrect     bool     `json:"isCorrect"`
	Explanation   string   `json:"explanation"`
}

// ScoredResult aggregates per-question results for a whole session.
// Score is round(100 * CorrectCount / TotalQuestions), 0 for an empty session.
type ScoredResult struct {
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Results        []QuestionResult `json:"results"`
}

// ParseError reports one malformed record inside a question file.
// Line is the 1-based record ordinal within the file (0 for file-level
// failures such as a bad JSON root).
type ParseError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// FileError collects the parse errors of one file in a batch load.
type FileError struct {
	File   string       `json:"file"`
	Errors []ParseError `json:"errors"`
}

// Pool is the aggregate outcome of loading a set of question files: the
// valid canonical questions plus everything rejected along the way.
type Pool struct {
	Questions []Question  `json:"questions"`
	Errors    []FileError `json:"errors,omitempty"`
}
