package service

import (
	"math/rand"
	"testing"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

func TestSelectExtendsSmallPool(t *testing.T) {
	s := NewQuestionSelectorWithRand(rand.New(rand.NewSource(42)))
	pool := []entities.Question{
		question("a", 0, "curious"),
		question("b", 0, "curious"),
		question("c", 0, "satoshi"),
	}

	got := s.Select(pool, "curious", 7)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}

	counts := make(map[string]int)
	for _, q := range got {
		counts[q.Prompt]++
	}
	if counts["c"] != 0 {
		t.Errorf("satoshi question selected for curious session")
	}
	// Every copy of the filtered pool is complete, so each prompt appears 3 or 4 times
	// among the 8 extended entries before truncation to 7.
	for _, p := range []string{"a", "b"} {
		if counts[p] < 3 || counts[p] > 4 {
			t.Errorf("prompt %q appears %d times", p, counts[p])
		}
	}
}

func TestSelectTruncatesLargePool(t *testing.T) {
	s := NewQuestionSelectorWithRand(rand.New(rand.NewSource(7)))
	var pool []entities.Question
	for _, p := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		pool = append(pool, question(p, 1, "bitcoiner"))
	}

	got := s.Select(pool, "bitcoiner", 5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	seen := make(map[string]bool)
	for _, q := range got {
		if seen[q.Prompt] {
			t.Errorf("prompt %q repeated although the pool is large enough", q.Prompt)
		}
		seen[q.Prompt] = true
	}
}

func TestSelectEmpty(t *testing.T) {
	s := NewQuestionSelectorWithRand(rand.New(rand.NewSource(1)))

	tests := []struct {
		name       string
		pool       []entities.Question
		difficulty string
		total      int
	}{
		{name: "nil pool", pool: nil, difficulty: "curious", total: 5},
		{name: "no match", pool: testPool(), difficulty: "wizard", total: 5},
		{name: "zero total", pool: testPool(), difficulty: "curious", total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Select(tt.pool, tt.difficulty, tt.total)
			if got == nil || len(got) != 0 {
				t.Errorf("Select = %v, want empty non-nil slice", got)
			}
		})
	}
}

func TestSelectSubstringDifficulty(t *testing.T) {
	s := NewQuestionSelectorWithRand(rand.New(rand.NewSource(3)))
	pool := []entities.Question{
		{Prompt: "x", Options: []string{"1", "2"}, Difficulty: entities.Difficulty{Text: "curious, bitcoiner"}},
		{Prompt: "y", Options: []string{"1", "2"}, Difficulty: entities.Difficulty{Text: "satoshi"}},
	}

	got := s.Select(pool, "bitcoiner", 2)
	for _, q := range got {
		if q.Prompt != "x" {
			t.Errorf("unexpected question %q", q.Prompt)
		}
	}
}
