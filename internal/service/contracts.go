package service

import (
	"context"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// QuestionProvider returns the full question pool for a language tag.
type QuestionProvider interface {
	Questions(ctx context.Context, language string) ([]entities.Question, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user *entities.User) error
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, settings *entities.UserSettings) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateLanguage(ctx context.Context, userID int64, language string) error
	UpdateDifficulty(ctx context.Context, userID int64, difficulty string) error
	UpdateQuizLength(ctx context.Context, userID int64, quizLength int) error
	UpdateIntroSeen(ctx context.Context, userID int64, seenAt time.Time) error
}

// Transactor runs fn so that every repository call made with the passed context
// commits or rolls back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProgressRepository interface {
	Save(ctx context.Context, record *entities.QuizRecord) error
	GetStats(ctx context.Context, userID int64) (*entities.ProgressStats, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
