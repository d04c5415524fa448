package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"python-quiz/internal/config"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath    string
	quizID        string
	questionsFile string
	seconds       int
	logLevel      string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	opts := &options{}
	cmd := &cobra.Command{
		Use:          "python-quiz",
		Short:        "Timed multiple-choice quiz in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	flags.StringVar(&opts.quizID, "quiz", "", "quiz id to load")
	flags.StringVar(&opts.questionsFile, "questions", "", "YAML question file")
	flags.IntVar(&opts.seconds, "seconds", 0, "seconds per question")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewServeCmd(opts))
	cmd.AddCommand(NewMigrateCmd(opts))
	return cmd
}

// load reads the config file, applies flag overrides and configures logging.
// A missing default config file is not an error.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOptional(o.configPath)
	}
	if err != nil {
		return cfg, err
	}

	if o.quizID != "" {
		cfg.Quiz.ID = o.quizID
	}
	if o.questionsFile != "" {
		cfg.Quiz.File = o.questionsFile
	}
	if o.seconds > 0 {
		cfg.Quiz.SecondsPerQuestion = o.seconds
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := setupLogging(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(lvl)
	return nil
}
