package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/app"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/config"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/delivery/telegram"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres/repository"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/logger"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories. Without a database everything is kept in memory.
	var (
		pool         *pgxpool.Pool
		userRepo     service.UserRepository     = repository.NewUserRepository()
		settingsRepo service.SettingsRepository = repository.NewSettingsRepository()
		progressRepo service.ProgressRepository = repository.NewProgressRepository()
		tx           service.Transactor         = repository.NoopTransactor{}
	)
	if cfg.DB.Enabled() {
		dsn, _ := cfg.DB.DSN()
		pool, err = postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool, lg); err != nil {
			lg.Fatal("failed to run migrations", zap.Error(err))
		}

		userRepo = pgrepo.NewUserRepository(pool)
		settingsRepo = pgrepo.NewSettingsRepository(pool)
		progressRepo = pgrepo.NewProgressRepository(pool)
		tx = postgres.NewTransactor(pool)
	} else {
		lg.Warn("DATABASE_URL not set, user settings are kept in memory")
	}

	rdb := app.NewRedisClient(ctx, cfg.Redis, lg)
	if rdb != nil {
		defer rdb.Close()
	}

	provider, err := app.NewQuestionProvider(cfg, pool, rdb, lg)
	if err != nil {
		lg.Fatal("failed to configure question provider", zap.Error(err))
	}

	// Initialize services.
	engineCfg := app.EngineConfig(cfg)
	defaults := service.SettingsDefaults{
		Language:      cfg.Quiz.DefaultLanguage,
		Difficulty:    cfg.Quiz.DefaultDifficulty,
		QuizLength:    cfg.Quiz.DefaultCount,
		IntroInterval: cfg.Quiz.IntroInterval,
	}
	settingsService := service.NewSettingsService(settingsRepo, defaults)
	userService := service.NewUserService(userRepo, settingsService, tx)
	progressService := service.NewProgressService(progressRepo)
	resetService := service.NewResetService(progressRepo, settingsRepo, defaults, tx)
	quizStorage := storage.NewQuizStorage(func() *service.Engine {
		return service.NewEngine(provider, engineCfg, lg)
	})

	// Background jobs: idle session eviction and, with a cache, pool refresh.
	var refresher service.PoolRefresher
	if r, ok := provider.(service.PoolRefresher); ok {
		refresher = r
	}
	maintenance := service.NewMaintenanceService(quizStorage, refresher, service.MaintenanceConfig{
		EvictSchedule:   cfg.Maintenance.EvictSchedule,
		SessionTTL:      cfg.Maintenance.SessionTTL,
		RefreshSchedule: cfg.Maintenance.RefreshSchedule,
		Languages:       locale.Languages(),
	}, lg)
	go func() {
		if err := maintenance.Start(ctx); err != nil {
			lg.Error("maintenance scheduler failed", zap.Error(err))
		}
	}()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a new quiz"},
		{Command: "language", Description: "Choose the quiz language"},
		{Command: "level", Description: "Choose the difficulty"},
		{Command: "length", Description: "Choose the number of questions"},
		{Command: "stats", Description: "Show your stats"},
		{Command: "reset", Description: "Reset stats and settings"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		settingsService,
		progressService,
		resetService,
		quizStorage,
		telegram.Options{
			Difficulties:  cfg.Quiz.Difficulties,
			Contact:       cfg.Quiz.Contact,
			UpdateTimeout: cfg.Telegram.UpdateTimeout,
		},
	)
	if err := handler.Run(ctx); err != nil {
		lg.Error("bot stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
