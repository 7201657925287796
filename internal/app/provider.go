// Package app wires configuration into the components shared by the binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/config"
	pgrepo "github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres/repository"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

var ErrDatabaseRequired = errors.New("postgres question source requires a database pool")

// NewQuestionProvider builds the provider selected by cfg.Provider.Source.
// When rdb is not nil the provider is wrapped in the Redis pool cache.
func NewQuestionProvider(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, logger *zap.Logger) (service.QuestionProvider, error) {
	var source repository.QuestionSource

	switch cfg.Provider.Source {
	case config.SourceFile:
		source = repository.NewFileQuestionRepository(cfg.Provider.Dir)
	case config.SourceHTTP:
		source = repository.NewHTTPQuestionRepository(cfg.Provider.BaseURL, cfg.Provider.HTTPTimeout)
	case config.SourcePostgres:
		if pool == nil {
			return nil, ErrDatabaseRequired
		}
		source = pgrepo.NewQuestionRepository(pool)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProviderSource, cfg.Provider.Source)
	}

	logger.Info("question provider configured",
		zap.String("source", cfg.Provider.Source),
		zap.Bool("cache", rdb != nil),
	)

	if rdb == nil {
		return source, nil
	}
	return repository.NewCachedQuestionRepository(source, rdb, cfg.Redis.TTL, logger), nil
}

// NewRedisClient returns a client for cfg, or nil when no address is configured.
// An unreachable server is only logged: the pool cache falls back to its source.
func NewRedisClient(ctx context.Context, cfg config.Redis, logger *zap.Logger) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed", zap.String("addr", cfg.Addr), zap.Error(err))
	}

	return client
}

// EngineConfig converts the quiz section of cfg into engine settings.
func EngineConfig(cfg *config.Config) service.EngineConfig {
	return service.EngineConfig{
		DefaultCount: cfg.Quiz.DefaultCount,
		Thresholds: service.Thresholds{
			Top: cfg.Quiz.Tiers.Top,
			Mid: cfg.Quiz.Tiers.Mid,
		},
	}
}
