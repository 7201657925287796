package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/app"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/config"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/delivery/console"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/logger"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quizcli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", "./config", "Directory containing config.yaml")
	lang := fs.String("lang", "", "Quiz language (default quiz.default_language)")
	level := fs.String("level", "", "Difficulty tag (default quiz.default_difficulty)")
	count := fs.Int("count", 0, "Number of questions (default quiz.default_count)")
	dir := fs.String("dir", "", "Read pools from this directory")
	baseURL := fs.String("url", "", "Fetch pools from this question server")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *count < 0 || *count > service.MaxQuizLength {
		fmt.Fprintf(stderr, "Invalid count %d: must be between 1 and %d\n", *count, service.MaxQuizLength)
		return exitUsage
	}

	cfg, err := config.LoadFrom(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	switch {
	case *baseURL != "":
		cfg.Provider.Source = config.SourceHTTP
		cfg.Provider.BaseURL = *baseURL
	case *dir != "":
		cfg.Provider.Source = config.SourceFile
		cfg.Provider.Dir = *dir
	case cfg.Provider.Source == config.SourcePostgres:
		// The CLI does not open a database.
		cfg.Provider.Source = config.SourceFile
	}
	if *lang == "" {
		*lang = cfg.Quiz.DefaultLanguage
	}
	if *level == "" {
		*level = cfg.Quiz.DefaultDifficulty
	}

	lg := zap.NewNop()
	if *verbose {
		if lg, err = logger.New(cfg); err != nil {
			fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
			return exitError
		}
		defer func() { _ = lg.Sync() }()
	}

	provider, err := app.NewQuestionProvider(cfg, nil, nil, lg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to configure questions: %v\n", err)
		return exitError
	}

	engine := service.NewEngine(provider, app.EngineConfig(cfg), lg)
	presenter := console.NewPresenter(engine, stdin, stdout, console.Options{
		Texts:   locale.Get(*lang),
		Contact: cfg.Quiz.Contact,
		NoColor: *noColor || !console.IsTerminal(stdout),
	}, lg)

	if _, err := presenter.Run(ctx, *lang, *level, *count); err != nil {
		fmt.Fprintf(stderr, "Quiz aborted: %v\n", err)
		return exitError
	}

	return exitOK
}
