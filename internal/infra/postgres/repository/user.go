package repository

import (
	"context"
	"fmt"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser inserts a user, refreshing the chat id of an existing one.
// It sets CreatedAt from the database.
func (r *UserRepository) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET chat_id = EXCLUDED.chat_id
		RETURNING created_at
	`
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, user.ID, user.ChatID).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

// UserExists checks if a user with the given ID exists in the database.
func (r *UserRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"

	var exists bool
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}

	return exists, nil
}
