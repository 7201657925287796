package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// DefaultQuestionCount is the session length used when none is requested.
const DefaultQuestionCount = 5

var (
	ErrDataUnavailable   = errors.New("question data unavailable")
	ErrSessionNotStarted = errors.New("quiz session not started")
	ErrSessionComplete   = errors.New("quiz session complete")
	ErrSessionSuperseded = errors.New("quiz session superseded by a newer start")
	ErrInvalidLanguage   = errors.New("language tag must not be empty")
)

// EngineConfig holds the tunable parts of a quiz engine.
type EngineConfig struct {
	DefaultCount int
	Thresholds   Thresholds
}

// DefaultEngineConfig returns a length of 5 and the 0.85 / 0.60 thresholds.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultCount: DefaultQuestionCount,
		Thresholds:   DefaultThresholds(),
	}
}

// quizSession is the mutable state of one run through the questions.
type quizSession struct {
	info      entities.SessionInfo
	questions []entities.Question
	wrong     []entities.WrongAnswer
}

// Engine runs one quiz session at a time.
// Starting a new session discards the previous one. A pool fetch that completes
// after a newer StartSession call is dropped.
type Engine struct {
	provider QuestionProvider
	selector *QuestionSelector
	cfg      EngineConfig
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	generation uint64
	session    *quizSession
}

// NewEngine creates an Engine that loads pools from provider.
func NewEngine(provider QuestionProvider, cfg EngineConfig, logger *zap.Logger) *Engine {
	return newEngine(provider, NewQuestionSelector(), cfg, logger)
}

func newEngine(provider QuestionProvider, selector *QuestionSelector, cfg EngineConfig, logger *zap.Logger) *Engine {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = DefaultQuestionCount
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		provider: provider,
		selector: selector,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// StartSession loads the pool for language, keeps the questions matching difficulty
// and installs a fresh session of count questions.
//
// If the provider fails, an empty session is installed and the returned error wraps
// ErrDataUnavailable. If another StartSession call began while the pool was being
// fetched, nothing is installed and ErrSessionSuperseded is returned.
func (e *Engine) StartSession(ctx context.Context, language, difficulty string, count int) ([]entities.Question, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, ErrInvalidLanguage
	}
	if count <= 0 {
		count = e.cfg.DefaultCount
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.session = nil
	e.mu.Unlock()

	pool, fetchErr := e.provider.Questions(ctx, language)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		e.logger.Debug("dropping stale question pool",
			zap.String("language", language),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", e.generation),
		)
		return nil, ErrSessionSuperseded
	}

	var questions []entities.Question
	if fetchErr == nil {
		questions = e.selector.Select(pool, difficulty, count)
	} else {
		questions = []entities.Question{}
	}

	e.session = &quizSession{
		info: entities.SessionInfo{
			ID:         uuid.NewString(),
			Language:   language,
			Difficulty: difficulty,
			Total:      len(questions),
			StartedAt:  e.now(),
		},
		questions: questions,
		wrong:     []entities.WrongAnswer{},
	}

	if fetchErr != nil {
		e.logger.Warn("question pool unavailable",
			zap.String("language", language),
			zap.String("session_id", e.session.info.ID),
			zap.Error(fetchErr),
		)
		return []entities.Question{}, fmt.Errorf("%w: %w", ErrDataUnavailable, fetchErr)
	}

	e.logger.Debug("quiz session started",
		zap.String("session_id", e.session.info.ID),
		zap.String("language", language),
		zap.String("difficulty", difficulty),
		zap.Int("pool_size", len(pool)),
		zap.Int("total", len(questions)),
	)

	return append([]entities.Question(nil), questions...), nil
}

// CurrentQuestion returns the question waiting for an answer.
func (e *Engine) CurrentQuestion() (entities.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return entities.Question{}, ErrSessionNotStarted
	}
	if e.session.info.Finished() {
		return entities.Question{}, ErrSessionComplete
	}

	return e.session.questions[e.session.info.Index], nil
}

// SubmitAnswer scores optionIndex against the current question and moves on.
// Out-of-range indices count as wrong answers.
func (e *Engine) SubmitAnswer(optionIndex int) (entities.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return entities.OutcomeFinished, ErrSessionNotStarted
	}
	if s.info.Finished() {
		return entities.OutcomeFinished, ErrSessionComplete
	}

	q := s.questions[s.info.Index]
	if q.IsCorrect(optionIndex) {
		s.info.Score++
	} else {
		s.wrong = append(s.wrong, entities.WrongAnswer{
			Question:      q.Prompt,
			YourAnswer:    q.OptionText(optionIndex),
			CorrectAnswer: q.CorrectText(),
		})
	}
	s.info.Index++

	if s.info.Finished() {
		e.logger.Debug("quiz session finished",
			zap.String("session_id", s.info.ID),
			zap.Int("score", s.info.Score),
			zap.Int("total", s.info.Total),
		)
		return entities.OutcomeFinished, nil
	}

	return entities.OutcomeContinue, nil
}

// FinalResult summarizes the session. It does not change any state.
func (e *Engine) FinalResult() (entities.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return entities.Result{}, ErrSessionNotStarted
	}

	return entities.Result{
		Score:        s.info.Score,
		Total:        s.info.Total,
		WrongAnswers: append([]entities.WrongAnswer{}, s.wrong...),
		Tier:         e.cfg.Thresholds.Classify(s.info.Score, s.info.Total),
	}, nil
}

// Session returns a snapshot of the running session.
func (e *Engine) Session() (entities.SessionInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return entities.SessionInfo{}, ErrSessionNotStarted
	}
	return e.session.info, nil
}
