package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

// Quiz length bounds accepted from users.
const (
	MinQuizLength = 1
	MaxQuizLength = 50
)

var ErrInvalidQuizLength = errors.New("invalid quiz length")

// SettingsDefaults are applied to users without stored settings.
type SettingsDefaults struct {
	Language      string
	Difficulty    string
	QuizLength    int
	IntroInterval time.Duration // how long a seen intro stays hidden
}

type SettingsService struct {
	repository SettingsRepository
	defaults   SettingsDefaults
}

func NewSettingsService(repository SettingsRepository, defaults SettingsDefaults) *SettingsService {
	if defaults.QuizLength <= 0 {
		defaults.QuizLength = DefaultQuestionCount
	}
	return &SettingsService{repository: repository, defaults: defaults}
}

// Defaults returns a fresh settings value for userID built from the configured defaults.
func (s *SettingsService) Defaults(userID int64) *entities.UserSettings {
	return entities.NewUserSettings(userID, s.defaults.Language, s.defaults.Difficulty, s.defaults.QuizLength)
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			// Create default settings.
			if err := s.repository.Create(ctx, s.Defaults(userID)); err != nil {
				return nil, err
			}
			// Retrieve newly created settings.
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

func (s *SettingsService) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	if language == "" {
		return ErrInvalidLanguage
	}
	return s.repository.UpdateLanguage(ctx, userID, language)
}

func (s *SettingsService) UpdateDifficulty(ctx context.Context, userID int64, difficulty string) error {
	return s.repository.UpdateDifficulty(ctx, userID, difficulty)
}

func (s *SettingsService) UpdateQuizLength(ctx context.Context, userID int64, quizLength int) error {
	if quizLength < MinQuizLength || quizLength > MaxQuizLength {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidQuizLength, quizLength, MinQuizLength, MaxQuizLength)
	}
	return s.repository.UpdateQuizLength(ctx, userID, quizLength)
}

func (s *SettingsService) MarkIntroSeen(ctx context.Context, userID int64, seenAt time.Time) error {
	return s.repository.UpdateIntroSeen(ctx, userID, seenAt)
}

// ShouldShowIntro reports whether the intro is due for the user at now.
func (s *SettingsService) ShouldShowIntro(settings *entities.UserSettings, now time.Time) bool {
	return settings.IntroDue(now, s.defaults.IntroInterval)
}
