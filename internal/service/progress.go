package service

import (
	"context"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

type ProgressService struct {
	repository ProgressRepository
	now        func() time.Time
}

func NewProgressService(repository ProgressRepository) *ProgressService {
	return &ProgressService{repository: repository, now: time.Now}
}

// RecordResult stores a finished session. Sessions without questions are not recorded.
func (s *ProgressService) RecordResult(ctx context.Context, userID int64, info entities.SessionInfo, res entities.Result) error {
	if res.Total == 0 {
		return nil
	}
	record := entities.NewQuizRecord(userID, info.Language, info.Difficulty, res, s.now().UTC())
	return s.repository.Save(ctx, record)
}

func (s *ProgressService) GetStats(ctx context.Context, userID int64) (*entities.ProgressStats, error) {
	return s.repository.GetStats(ctx, userID)
}
