package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
	apprepo "github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

// QuestionRepository loads question pools from the questions table.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Questions returns every question stored for language.
func (r *QuestionRepository) Questions(ctx context.Context, language string) ([]entities.Question, error) {
	if err := apprepo.ValidateLanguage(language); err != nil {
		return nil, err
	}

	query := `
		SELECT prompt, options, answer, difficulty
		FROM questions
		WHERE language = $1
		ORDER BY id
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	pool, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Question, error) {
		var (
			q    entities.Question
			tags []string
		)
		if err := row.Scan(&q.Prompt, &q.Options, &q.Answer, &tags); err != nil {
			return entities.Question{}, err
		}
		q.Difficulty = entities.NewDifficulty(tags...)
		return q, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}

	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s", apprepo.ErrLanguageNotFound, language)
	}

	for i, q := range pool {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	return pool, nil
}
