package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrEmptyQuiz is returned for a quiz without questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrInvalidQuestion indicates malformed question content.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrNameRequired is returned when a quiz is started with a blank name.
	ErrNameRequired = errors.New("name required")
	// ErrNotOnWelcome is returned when a quiz is started from another screen.
	ErrNotOnWelcome = errors.New("quiz already started")
	// ErrNotInQuestion is returned when an answer arrives outside a question screen.
	ErrNotInQuestion = errors.New("no question is being displayed")
	// ErrExited is returned for actions after the application exited.
	ErrExited = errors.New("quiz exited")
)
