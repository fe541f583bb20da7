package app

import (
	"context"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/session"
	"quiz-practice-service/internal/shuffle"
)

// MaxQuestionCount caps how many questions one quiz may request.
const MaxQuestionCount = 100

// PoolRepository loads the question pool for a file selection (cached
// in-process or in Redis).
type PoolRepository interface {
	GetPool(ctx context.Context, files []string) (domain.Pool, error)
}

// QuizService contains the quiz use cases: create an attempt, record
// answers, give per-question feedback, and score.
type QuizService struct {
	pools    PoolRepository
	sessions *session.Manager
	shuffler *shuffle.Shuffler
}

func NewQuizService(pools PoolRepository, sessions *session.Manager, shuffler *shuffle.Shuffler) *QuizService {
	return &QuizService{pools: pools, sessions: sessions, shuffler: shuffler}
}

// CreateParams describes one quiz request. Count of zero means the whole
// pool; ShuffleChoices toggles per-question choice reordering. Both are
// explicit caller decisions, not defaults of this layer.
type CreateParams struct {
	Files          []string
	Count          int
	ShuffleChoices bool
}

// CreatedQuiz pairs the new session with whatever the load pipeline had to
// reject; callers surface the file errors as diagnostics.
type CreatedQuiz struct {
	Session    *domain.Session
	FileErrors []domain.FileError
}

// CheckOutcome is immediate feedback for a single answered question.
type CheckOutcome struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation"`
}

// CreateQuiz loads the pool for the selected files, picks and shuffles a
// subset, and opens a session over it. An empty pool is a terminal failure
// for the request: there is nothing to shuffle or score.
func (s *QuizService) CreateQuiz(ctx context.Context, p CreateParams) (*CreatedQuiz, error) {
	pool, err := s.pools.GetPool(ctx, p.Files)
	if err != nil {
		return nil, err
	}
	if len(pool.Questions) == 0 {
		return nil, domain.ErrEmptyPool
	}

	count := p.Count
	if count < 0 {
		count = 0
	}
	if count > MaxQuestionCount {
		count = MaxQuestionCount
	}

	picked := s.shuffler.Pick(pool.Questions, shuffle.PickOptions{
		Count:          count,
		ShuffleChoices: p.ShuffleChoices,
	})
	return &CreatedQuiz{
		Session:    s.sessions.New(picked),
		FileErrors: pool.Errors,
	}, nil
}

// RecordAnswers applies a batch of answers to a client-supplied session.
// The batch either fully validates or nothing is recorded.
func (s *QuizService) RecordAnswers(sess *domain.Session, answers []domain.AnswerSubmission) error {
	return s.sessions.RecordAnswers(sess, answers)
}

// CheckAnswer reports whether a selection is correct without recording it,
// for practice-mode feedback.
func (s *QuizService) CheckAnswer(sess *domain.Session, questionID, selectedIndex int) (CheckOutcome, error) {
	if err := s.sessions.Validate(sess); err != nil {
		return CheckOutcome{}, err
	}
	if selectedIndex < 0 {
		return CheckOutcome{}, domain.ErrAnswerOutOfRange
	}
	for _, q := range sess.Questions {
		if q.ID != questionID {
			continue
		}
		if selectedIndex >= len(q.Choices) {
			return CheckOutcome{}, domain.ErrAnswerOutOfRange
		}
		return CheckOutcome{
			Correct:      selectedIndex == q.ShuffledAnswerIndex,
			CorrectIndex: q.ShuffledAnswerIndex,
			Explanation:  q.Explanation,
		}, nil
	}
	return CheckOutcome{}, domain.ErrQuestionNotInSession
}

// Result marks the session submitted (idempotently) and scores it.
func (s *QuizService) Result(sess *domain.Session) (domain.ScoredResult, error) {
	if err := s.sessions.MarkSubmitted(sess); err != nil {
		return domain.ScoredResult{}, err
	}
	return s.sessions.Result(sess)
}
