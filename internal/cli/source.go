package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"python-quiz/internal/app"
	"python-quiz/internal/config"
	"python-quiz/internal/infra/file"
	"python-quiz/internal/infra/memory"
	pgloader "python-quiz/internal/infra/postgres"
	rediscache "python-quiz/internal/infra/redis"
)

// buildQuizRepository picks the question source (Postgres, YAML file or the
// built-in quiz) and the cache in front of it (Redis or in-process).
func buildQuizRepository(ctx context.Context, cfg config.Config) (app.QuizRepository, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(memory.BuiltinQuizzes())
	source := "builtin"
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, cleanup, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewQuizLoader(pool)
		source = "postgres"
	case cfg.Quiz.File != "":
		loader = file.NewQuizLoader(cfg.Quiz.File)
		source = "file"
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var repo app.QuizRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		repo = rediscache.NewQuizRepository(client, loader, config.TTLDuration(cfg.Redis.TTL, quizTTL))
	} else {
		repo = memory.NewQuizRepository(loader, quizTTL)
	}

	log.Debug().
		Str("source", source).
		Bool("redis", cfg.Redis.Addr != "").
		Str("quiz_id", cfg.Quiz.ID).
		Msg("question bank configured")
	return repo, cleanup, nil
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
