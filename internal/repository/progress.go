package repository

import (
	"context"
	"sync"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// ProgressRepository keeps finished sessions in memory.
type ProgressRepository struct {
	mu      sync.RWMutex
	records map[int64][]entities.QuizRecord
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{records: make(map[int64][]entities.QuizRecord)}
}

// Save appends a finished session.
func (r *ProgressRepository) Save(_ context.Context, record *entities.QuizRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.UserID] = append(r.records[record.UserID], *record)
	return nil
}

// GetStats aggregates the sessions of userID.
func (r *ProgressRepository) GetStats(_ context.Context, userID int64) (*entities.ProgressStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats entities.ProgressStats
	for _, rec := range r.records[userID] {
		stats.Add(rec)
	}
	return &stats, nil
}

// DeleteByUserID removes every session of userID.
func (r *ProgressRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, userID)
	return nil
}
