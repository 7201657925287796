package entities

import "time"

// QuizRecord is one finished session stored for a user.
type QuizRecord struct {
	UserID     int64
	Language   string
	Difficulty string
	Score      int
	Total      int
	Tier       Tier
	FinishedAt time.Time
}

// NewQuizRecord builds a record from a session result.
func NewQuizRecord(userID int64, language, difficulty string, res Result, finishedAt time.Time) *QuizRecord {
	return &QuizRecord{
		UserID:     userID,
		Language:   language,
		Difficulty: difficulty,
		Score:      res.Score,
		Total:      res.Total,
		Tier:       res.Tier,
		FinishedAt: finishedAt,
	}
}

// ProgressStats aggregates the recorded sessions of a user for /stats.
type ProgressStats struct {
	Played       int        // sessions finished
	Perfect      int        // sessions without a wrong answer
	Correct      int        // correct answers over all sessions
	Answered     int        // questions over all sessions
	TopTier      int        // sessions that reached the top tier
	LastPlayedAt *time.Time // nil when nothing was played
}

// Accuracy returns the share of correct answers in percent.
func (s ProgressStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered) * 100
}

// Add folds a record into the statistics.
func (s *ProgressStats) Add(r QuizRecord) {
	s.Played++
	s.Correct += r.Score
	s.Answered += r.Total
	if r.Total > 0 && r.Score == r.Total {
		s.Perfect++
	}
	if r.Tier == TierTop {
		s.TopTier++
	}
	if s.LastPlayedAt == nil || r.FinishedAt.After(*s.LastPlayedAt) {
		t := r.FinishedAt
		s.LastPlayedAt = &t
	}
}
