package service

import (
	"math/rand"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// QuestionSelector builds the question sequence of a session from a pool.
type QuestionSelector struct {
	rng *rand.Rand
}

// NewQuestionSelector creates a QuestionSelector seeded from the clock.
func NewQuestionSelector() *QuestionSelector {
	return NewQuestionSelectorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionSelectorWithRand creates a QuestionSelector over the given random source.
// The selector is not safe for concurrent use; callers serialize access.
func NewQuestionSelectorWithRand(rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{rng: rng}
}

// Select filters pool by difficulty and returns exactly total questions.
// A filtered pool shorter than total is extended with full shuffled copies of itself.
// An empty filtered pool yields an empty sequence.
func (s *QuestionSelector) Select(pool []entities.Question, difficulty string, total int) []entities.Question {
	filtered := filterByDifficulty(pool, difficulty)
	if len(filtered) == 0 || total <= 0 {
		return []entities.Question{}
	}

	extended := append([]entities.Question(nil), filtered...)
	for len(extended) < total {
		extended = append(extended, s.shuffled(filtered)...)
	}

	s.shuffle(extended)
	return extended[:total:total]
}

// filterByDifficulty keeps the questions whose difficulty includes level.
func filterByDifficulty(pool []entities.Question, level string) []entities.Question {
	out := make([]entities.Question, 0, len(pool))
	for _, q := range pool {
		if q.Difficulty.Matches(level) {
			out = append(out, q)
		}
	}
	return out
}

// shuffle permutes qs in place with Fisher-Yates.
func (s *QuestionSelector) shuffle(qs []entities.Question) {
	s.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}

// shuffled returns a shuffled copy of the input slice.
func (s *QuestionSelector) shuffled(in []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), in...)
	s.shuffle(out)
	return out
}
