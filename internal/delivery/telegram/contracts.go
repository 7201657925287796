package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateLanguage(ctx context.Context, userID int64, language string) error
	UpdateDifficulty(ctx context.Context, userID int64, difficulty string) error
	UpdateQuizLength(ctx context.Context, userID int64, quizLength int) error
	MarkIntroSeen(ctx context.Context, userID int64, seenAt time.Time) error
	ShouldShowIntro(settings *entities.UserSettings, now time.Time) bool
}

type ProgressService interface {
	RecordResult(ctx context.Context, userID int64, info entities.SessionInfo, res entities.Result) error
	GetStats(ctx context.Context, userID int64) (*entities.ProgressStats, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

// QuizStorage holds one engine per chat.
type QuizStorage interface {
	GetOrCreate(chatID int64) *service.Engine
	Get(chatID int64) (*service.Engine, bool)
	Delete(chatID int64)
}
