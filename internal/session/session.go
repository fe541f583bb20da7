// Package session owns the lifecycle of one quiz attempt. Sessions are plain
// data round-tripped through an untrusted client between calls, so every
// operation re-validates structure and expiry before touching anything.
package session

import (
	"time"

	"github.com/google/uuid"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/scoring"
)

// DefaultTimeout is how long a session stays usable after creation.
const DefaultTimeout = 30 * time.Minute

// Manager applies session operations. The clock and id generator are
// injectable for deterministic tests.
type Manager struct {
	timeout time.Duration
	now     func() time.Time
	newID   func() string
}

// NewManager builds a Manager with the given timeout (DefaultTimeout when
// zero or negative).
func NewManager(timeout time.Duration) *Manager {
	return NewManagerWithClock(timeout, time.Now)
}

// NewManagerWithClock allows deterministic timestamps in tests.
func NewManagerWithClock(timeout time.Duration, now func() time.Time) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		timeout: timeout,
		now:     now,
		newID:   func() string { return "quiz_" + uuid.NewString() },
	}
}

// New creates an active session over a snapshot of the given questions.
// The copy is deep enough that later mutation of the caller's slices cannot
// reach into the session.
func (m *Manager) New(questions []domain.ShuffledQuestion) *domain.Session {
	snapshot := make([]domain.ShuffledQuestion, len(questions))
	explanations := make(map[int]string, len(questions))
	for i, q := range questions {
		q.Choices = append([]string(nil), q.Choices...)
		snapshot[i] = q
		explanations[q.ID] = q.Explanation
	}
	return &domain.Session{
		SessionID:    m.newID(),
		Questions:    snapshot,
		Answers:      []domain.Answer{},
		Explanations: explanations,
		CreatedAt:    m.now(),
	}
}

// Validate checks structural integrity and lazy expiry. It is called at the
// start of every operation; callers distinguish the failure modes through
// the sentinel errors.
func (m *Manager) Validate(s *domain.Session) error {
	if s == nil || s.SessionID == "" || s.Questions == nil {
		return domain.ErrSessionInvalid
	}
	if s.CreatedAt.IsZero() {
		return domain.ErrSessionInvalid
	}
	if m.now().Sub(s.CreatedAt) > m.timeout {
		return domain.ErrSessionExpired
	}
	return nil
}

// RecordAnswer upserts one answer. A question id the session does not hold
// is a caller error: it signals stale client state, not a skippable entry.
func (m *Manager) RecordAnswer(s *domain.Session, questionID, selectedIndex int) error {
	if err := m.validateMutable(s); err != nil {
		return err
	}
	if err := m.validateAnswer(s, questionID, selectedIndex); err != nil {
		return err
	}
	m.upsert(s, questionID, selectedIndex)
	return nil
}

// RecordAnswers applies a batch. The whole batch is validated before any
// answer is recorded: one malformed entry rejects everything, leaving the
// session untouched. Later entries for the same question win.
func (m *Manager) RecordAnswers(s *domain.Session, answers []domain.AnswerSubmission) error {
	if err := m.validateMutable(s); err != nil {
		return err
	}
	for _, a := range answers {
		if err := m.validateAnswer(s, a.QuestionID, a.SelectedIndex); err != nil {
			return err
		}
	}
	for _, a := range answers {
		m.upsert(s, a.QuestionID, a.SelectedIndex)
	}
	return nil
}

// MarkSubmitted freezes the session. Idempotent: re-marking an already
// submitted session changes nothing, including SubmittedAt.
func (m *Manager) MarkSubmitted(s *domain.Session) error {
	if err := m.Validate(s); err != nil {
		return err
	}
	if s.Submitted {
		return nil
	}
	now := m.now()
	s.Submitted = true
	s.SubmittedAt = &now
	return nil
}

// Result validates the session and delegates to the scoring engine.
func (m *Manager) Result(s *domain.Session) (domain.ScoredResult, error) {
	if err := m.Validate(s); err != nil {
		return domain.ScoredResult{}, err
	}
	return scoring.Score(s), nil
}

func (m *Manager) validateMutable(s *domain.Session) error {
	if err := m.Validate(s); err != nil {
		return err
	}
	if s.Submitted {
		return domain.ErrSessionSubmitted
	}
	return nil
}

func (m *Manager) validateAnswer(s *domain.Session, questionID, selectedIndex int) error {
	if questionID < 0 || selectedIndex < 0 {
		return domain.ErrAnswerOutOfRange
	}
	for _, q := range s.Questions {
		if q.ID == questionID {
			if selectedIndex >= len(q.Choices) {
				return domain.ErrAnswerOutOfRange
			}
			return nil
		}
	}
	return domain.ErrQuestionNotInSession
}

func (m *Manager) upsert(s *domain.Session, questionID, selectedIndex int) {
	answer := domain.Answer{
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
		SubmittedAt:   m.now(),
	}
	for i, existing := range s.Answers {
		if existing.QuestionID == questionID {
			s.Answers[i] = answer
			return
		}
	}
	s.Answers = append(s.Answers, answer)
}
