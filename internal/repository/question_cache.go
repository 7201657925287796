package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

const poolKeyPrefix = "quiz:pool:"

// QuestionSource is the provider a cache reads through to.
type QuestionSource interface {
	Questions(ctx context.Context, language string) ([]entities.Question, error)
}

// CachedQuestionRepository keeps pools from another provider in Redis.
// Redis errors are logged and the underlying provider is used instead.
type CachedQuestionRepository struct {
	next   QuestionSource
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedQuestionRepository wraps next with a Redis cache of the given TTL.
func NewCachedQuestionRepository(next QuestionSource, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedQuestionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedQuestionRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Questions returns the cached pool for language, loading it on a miss.
func (r *CachedQuestionRepository) Questions(ctx context.Context, language string) ([]entities.Question, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}
	key := poolKeyPrefix + language

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		pool, decodeErr := decodeCachedPool(data)
		if decodeErr == nil {
			return pool, nil
		}
		r.logger.Warn("discarding corrupt cached pool",
			zap.String("key", key),
			zap.Error(decodeErr),
		)
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("redis get failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	pool, err := r.next.Questions(ctx, language)
	if err != nil {
		return nil, err
	}

	if err := r.store(ctx, key, pool); err != nil {
		r.logger.Warn("redis set failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return pool, nil
}

// Refresh reloads the pool for language from the underlying provider and
// replaces the cached copy. A failed load leaves the cached copy untouched,
// except when the language no longer exists, which drops it.
func (r *CachedQuestionRepository) Refresh(ctx context.Context, language string) error {
	if err := ValidateLanguage(language); err != nil {
		return err
	}

	pool, err := r.next.Questions(ctx, language)
	if err != nil {
		if errors.Is(err, ErrLanguageNotFound) {
			if delErr := r.Invalidate(ctx, language); delErr != nil {
				r.logger.Warn("redis del failed",
					zap.String("language", language),
					zap.Error(delErr),
				)
			}
		}
		return err
	}
	return r.store(ctx, poolKeyPrefix+language, pool)
}

// decodeCachedPool decodes and validates a cached pool. A cached null is
// treated as corrupt.
func decodeCachedPool(data []byte) ([]entities.Question, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New("cached pool is null")
	}
	return ParseQuestions(data, ".json")
}

func (r *CachedQuestionRepository) store(ctx context.Context, key string, pool []entities.Question) error {
	encoded, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, encoded, r.ttl).Err()
}

// Invalidate drops the cached pool for language.
func (r *CachedQuestionRepository) Invalidate(ctx context.Context, language string) error {
	return r.client.Del(ctx, poolKeyPrefix+language).Err()
}
