package service

import (
	"context"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	settings   *SettingsService
	tx         Transactor
}

func NewUserService(repository UserRepository, settings *SettingsService, tx Transactor) *UserService {
	return &UserService{repository: repository, settings: settings, tx: tx}
}

// EnsureUser stores a first-time user together with default settings.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	user := entities.NewUser(userID, chatID)

	exists, err := s.repository.UserExists(ctx, user.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repository.SaveUser(ctx, user); err != nil {
			return err
		}
		_, err := s.settings.GetOrCreate(ctx, userID)
		return err
	})
}
