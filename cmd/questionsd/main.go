package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/config"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/delivery/httpapi"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/logger"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

func main() {
	configDir := flag.String("config", "./config", "directory containing config.yaml")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	dir := flag.String("dir", "", "question directory (overrides provider.dir)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dir != "" {
		cfg.Provider.Dir = *dir
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files := repository.NewFileQuestionRepository(cfg.Provider.Dir)
	langs, err := files.Languages()
	if err != nil {
		lg.Fatal("failed to read question directory", zap.String("dir", cfg.Provider.Dir), zap.Error(err))
	}
	lg.Info("serving question pools",
		zap.String("dir", cfg.Provider.Dir),
		zap.Strings("languages", langs),
	)

	srv := httpapi.NewServer(cfg.Server.Addr, files, lg)
	if err := srv.Run(ctx); err != nil {
		lg.Fatal("question server failed", zap.Error(err))
	}
}
