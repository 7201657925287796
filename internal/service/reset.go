package service

import (
	"context"
)

// ResetService clears the quiz history of a user and restores default settings.
type ResetService struct {
	progress ProgressRepository
	settings SettingsRepository
	defaults SettingsDefaults
	tx       Transactor
}

func NewResetService(
	progress ProgressRepository,
	settings SettingsRepository,
	defaults SettingsDefaults,
	tx Transactor,
) *ResetService {
	if defaults.QuizLength <= 0 {
		defaults.QuizLength = DefaultQuestionCount
	}
	return &ResetService{
		progress: progress,
		settings: settings,
		defaults: defaults,
		tx:       tx,
	}
}

func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.progress.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.settings.UpdateLanguage(ctx, userID, s.defaults.Language); err != nil {
			return err
		}
		if err := s.settings.UpdateDifficulty(ctx, userID, s.defaults.Difficulty); err != nil {
			return err
		}
		return s.settings.UpdateQuizLength(ctx, userID, s.defaults.QuizLength)
	})
}
