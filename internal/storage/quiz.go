package storage

import (
	"sync"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

// EngineFactory creates a fresh quiz engine.
type EngineFactory func() *service.Engine

type entry struct {
	engine   *service.Engine
	lastUsed time.Time
}

// QuizStorage keeps one quiz engine per chat in memory.
type QuizStorage struct {
	mu      sync.Mutex
	engines map[int64]*entry
	factory EngineFactory
	now     func() time.Time
}

// NewQuizStorage creates a new QuizStorage that builds engines with factory.
func NewQuizStorage(factory EngineFactory) *QuizStorage {
	return &QuizStorage{
		engines: make(map[int64]*entry),
		factory: factory,
		now:     time.Now,
	}
}

// GetOrCreate returns the engine of chatID, creating it on first use.
func (s *QuizStorage) GetOrCreate(chatID int64) *service.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.engines[chatID]; ok {
		e.lastUsed = s.now()
		return e.engine
	}
	e := &entry{engine: s.factory(), lastUsed: s.now()}
	s.engines[chatID] = e
	return e.engine
}

// Get returns the engine of chatID if one exists.
func (s *QuizStorage) Get(chatID int64) (*service.Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines[chatID]
	if !ok {
		return nil, false
	}
	e.lastUsed = s.now()
	return e.engine, true
}

// Delete removes the engine of chatID.
func (s *QuizStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, chatID)
}

// EvictIdle removes engines not used since cutoff and returns how many were removed.
func (s *QuizStorage) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, e := range s.engines {
		if e.lastUsed.Before(cutoff) {
			delete(s.engines, chatID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored engines.
func (s *QuizStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engines)
}
