package repository

import (
	"context"
	"sync"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// UserRepository keeps known users in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]entities.User)}
}

// SaveUser stores the user and sets CreatedAt.
func (r *UserRepository) SaveUser(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// UserExists checks if a user with the given ID has been saved.
func (r *UserRepository) UserExists(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[userID]
	return ok, nil
}

// NoopTransactor runs fn without a transaction, for the in-memory repositories.
type NoopTransactor struct{}

func (NoopTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
