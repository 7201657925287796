package repository

import (
	"context"
	"sync"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// SettingsRepository keeps user settings in memory.
// It is used when no database is configured.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings map[int64]entities.UserSettings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{
		settings: make(map[int64]entities.UserSettings),
	}
}

// Create stores settings unless the user already has some.
func (r *SettingsRepository) Create(_ context.Context, settings *entities.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.settings[settings.UserID]; ok {
		return nil
	}
	r.settings[settings.UserID] = *settings
	return nil
}

// GetByUserID returns a copy of the stored settings.
// Returns ErrSettingsNotFound if settings don't exist.
func (r *SettingsRepository) GetByUserID(_ context.Context, userID int64) (*entities.UserSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[userID]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return &s, nil
}

func (r *SettingsRepository) UpdateLanguage(_ context.Context, userID int64, language string) error {
	return r.update(userID, func(s *entities.UserSettings) { s.Language = language })
}

func (r *SettingsRepository) UpdateDifficulty(_ context.Context, userID int64, difficulty string) error {
	return r.update(userID, func(s *entities.UserSettings) { s.Difficulty = difficulty })
}

func (r *SettingsRepository) UpdateQuizLength(_ context.Context, userID int64, quizLength int) error {
	return r.update(userID, func(s *entities.UserSettings) { s.QuizLength = quizLength })
}

func (r *SettingsRepository) UpdateIntroSeen(_ context.Context, userID int64, seenAt time.Time) error {
	return r.update(userID, func(s *entities.UserSettings) { s.IntroSeenAt = &seenAt })
}

func (r *SettingsRepository) update(userID int64, fn func(s *entities.UserSettings)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settings[userID]
	if !ok {
		return ErrSettingsNotFound
	}
	fn(&s)
	s.UpdatedAt = time.Now()
	r.settings[userID] = s
	return nil
}
