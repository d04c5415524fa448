package domain

import (
	"fmt"
	"strings"
	"time"
)

// OptionsPerQuestion is the fixed number of choices every question offers.
const OptionsPerQuestion = 4

// Question models an MCQ question whose Answer equals exactly one option.
type Question struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
	Answer  string   `json:"answer" yaml:"answer"`
}

// IsCorrect compares choice with the answer by exact string equality.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// Validate checks the question shape.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: want %d options, got %d", ErrInvalidQuestion, OptionsPerQuestion, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	matches := 0
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, opt)
		}
		seen[opt] = struct{}{}
		if opt == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: answer %q is not one of the options", ErrInvalidQuestion, q.Answer)
	}
	return nil
}

// Quiz is an ordered, immutable collection of questions.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Validate rejects empty quizzes and reports the first malformed question.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return ErrEmptyQuiz
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Session is the run-time record of one user's progress through a quiz.
type Session struct {
	ID           string
	Username     string
	Score        int
	CurrentIndex int
	StartedAt    time.Time
}
