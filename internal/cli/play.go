package cli

import (
	"context"
	"io"

	"github.com/jonboulle/clockwork"

	"python-quiz/internal/app"
	"python-quiz/internal/config"
	"python-quiz/internal/transport/terminal"
)

func runPlay(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	repo, cleanup, err := buildQuizRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	quiz, err := app.LoadQuiz(ctx, repo, cfg.Quiz.ID)
	if err != nil {
		return err
	}
	return terminal.Play(ctx, quiz, cfg.Quiz.SecondsPerQuestion, clockwork.NewRealClock(), in, out)
}
