package repository

import (
	"context"
	"fmt"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
)

// ProgressRepository stores finished sessions in the quiz_results table.
type ProgressRepository struct {
	db postgres.DBTX
}

func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Save inserts a finished session.
func (r *ProgressRepository) Save(ctx context.Context, record *entities.QuizRecord) error {
	query := `
		INSERT INTO quiz_results (user_id, language, difficulty, score, total, tier, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := postgres.Conn(ctx, r.db).Exec(
		ctx, query,
		record.UserID,
		record.Language,
		record.Difficulty,
		record.Score,
		record.Total,
		string(record.Tier),
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// GetStats aggregates the sessions of userID.
func (r *ProgressRepository) GetStats(ctx context.Context, userID int64) (*entities.ProgressStats, error) {
	query := `
		SELECT
			COUNT(*) AS played,
			COUNT(*) FILTER (WHERE total > 0 AND score = total) AS perfect,
			COALESCE(SUM(score), 0) AS correct,
			COALESCE(SUM(total), 0) AS answered,
			COUNT(*) FILTER (WHERE tier = $2) AS top_tier,
			MAX(finished_at) AS last_played
		FROM quiz_results
		WHERE user_id = $1
	`

	var stats entities.ProgressStats
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, string(entities.TierTop)).Scan(
		&stats.Played,
		&stats.Perfect,
		&stats.Correct,
		&stats.Answered,
		&stats.TopTier,
		&stats.LastPlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &stats, nil
}

// DeleteByUserID removes every session of userID.
func (r *ProgressRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete quiz results: %w", err)
	}
	return nil
}
