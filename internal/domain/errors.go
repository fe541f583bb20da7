package domain

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension no parser is registered for.
	ErrUnsupportedFormat = errors.New("unsupported question file format")
	// ErrEmptyPool is returned when a quiz is requested but no valid questions loaded.
	ErrEmptyPool = errors.New("no valid questions in the selected files")
	// ErrSessionInvalid indicates a structurally broken session object.
	ErrSessionInvalid = errors.New("session data is invalid")
	// ErrSessionExpired indicates the session passed its timeout.
	ErrSessionExpired = errors.New("session has expired")
	// ErrSessionSubmitted is returned when a mutation targets a submitted session.
	ErrSessionSubmitted = errors.New("session already submitted")
	// ErrQuestionNotInSession indicates an answer references a question the session does not hold.
	ErrQuestionNotInSession = errors.New("question not part of this session")
	// ErrAnswerOutOfRange indicates a selected index outside the question's choices.
	ErrAnswerOutOfRange = errors.New("selected index out of choice range")
)
