package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
	apprepo "github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create inserts settings for a user unless they already exist.
func (r *SettingsRepository) Create(ctx context.Context, settings *entities.UserSettings) error {
	query := `
		INSERT INTO user_settings (
			user_id, language, difficulty, quiz_length, intro_seen_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := postgres.Conn(ctx, r.db).Exec(
		ctx,
		query,
		settings.UserID,
		settings.Language,
		settings.Difficulty,
		settings.QuizLength,
		settings.IntroSeenAt,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
// Returns ErrSettingsNotFound if settings don't exist.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, language, difficulty, quiz_length, intro_seen_at, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Language,
		&settings.Difficulty,
		&settings.QuizLength,
		&settings.IntroSeenAt,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apprepo.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateLanguage updates the question language.
func (r *SettingsRepository) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	return r.updateColumn(ctx, "language", userID, language)
}

// UpdateDifficulty updates the difficulty tag.
func (r *SettingsRepository) UpdateDifficulty(ctx context.Context, userID int64, difficulty string) error {
	return r.updateColumn(ctx, "difficulty", userID, difficulty)
}

// UpdateQuizLength updates the number of questions per session.
func (r *SettingsRepository) UpdateQuizLength(ctx context.Context, userID int64, quizLength int) error {
	return r.updateColumn(ctx, "quiz_length", userID, quizLength)
}

// UpdateIntroSeen records when the intro was last shown.
func (r *SettingsRepository) UpdateIntroSeen(ctx context.Context, userID int64, seenAt time.Time) error {
	return r.updateColumn(ctx, "intro_seen_at", userID, seenAt)
}

// updateColumn sets one settings column. column is always a constant from this file.
func (r *SettingsRepository) updateColumn(ctx context.Context, column string, userID int64, value any) error {
	query := fmt.Sprintf(`
		UPDATE user_settings
		SET %s = $1, updated_at = $2
		WHERE user_id = $3
	`, column)

	result, err := postgres.Conn(ctx, r.db).Exec(ctx, query, value, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}

	if result.RowsAffected() == 0 {
		return apprepo.ErrSettingsNotFound
	}

	return nil
}
