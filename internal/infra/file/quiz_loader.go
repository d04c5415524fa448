// Package file loads quiz content from a YAML question file.
package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"python-quiz/internal/domain"
)

// QuizLoader reads a single quiz from a YAML document:
//
//	id: python-basics
//	title: Python Quiz
//	questions:
//	  - prompt: Which operator is used for floor division?
//	    options: ["/", "//", "%", "**"]
//	    answer: "//"
type QuizLoader struct {
	path string
}

func NewQuizLoader(path string) *QuizLoader {
	return &QuizLoader{path: path}
}

// LoadQuiz re-reads the file on every call. A document without an id adopts
// quizID; a document with a different id is reported as not found.
func (l *QuizLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("read questions %s: %w", l.path, err)
	}
	var quiz domain.Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("parse questions %s: %w", l.path, err)
	}
	if quiz.ID == "" {
		quiz.ID = quizID
	}
	if quizID != "" && quiz.ID != quizID {
		return domain.Quiz{}, fmt.Errorf("%w: %s holds %q", domain.ErrQuizNotFound, l.path, quiz.ID)
	}
	return quiz, nil
}
