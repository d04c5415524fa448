package app

import (
	"context"
	"fmt"

	"python-quiz/internal/domain"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// LoadQuiz fetches a quiz and validates it before it reaches a controller.
func LoadQuiz(ctx context.Context, repo QuizRepository, quizID string) (domain.Quiz, error) {
	quiz, err := repo.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz %q: %w", quizID, err)
	}
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, fmt.Errorf("quiz %q: %w", quizID, err)
	}
	if quiz.Title == "" {
		quiz.Title = quiz.ID
	}
	return quiz, nil
}
