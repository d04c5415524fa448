package cli

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"python-quiz/internal/config"
	transport "python-quiz/internal/transport/http"
)

// NewServeCmd builds the subcommand that serves the quiz over WebSocket.
func NewServeCmd(opts *options) *cobra.Command {
	var port string
	envPort := os.Getenv("PORT")

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz to a single WebSocket renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", envPort, "port to listen on")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config, portFlag string) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	repo, cleanup, err := buildQuizRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	wsHandler := transport.NewWSHandler(repo, cfg.Quiz.ID, cfg.Quiz.SecondsPerQuestion, clockwork.NewRealClock())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", finalPort).Str("quiz_id", cfg.Quiz.ID).Msg("serving quiz")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
