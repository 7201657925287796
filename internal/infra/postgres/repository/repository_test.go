package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/infra/postgres"
	apprepo "github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

// testPool connects to DATABASE_URL and applies migrations, skipping without a database.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 4})
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.RunMigrations(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return pool
}

func TestSettingsRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const userID = int64(-424242)

	_, _ = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID) })

	users := NewUserRepository(pool)
	settings := NewSettingsRepository(pool)
	tx := postgres.NewTransactor(pool)

	if _, err := settings.GetByUserID(ctx, userID); !errors.Is(err, apprepo.ErrSettingsNotFound) {
		t.Fatalf("GetByUserID err = %v, want ErrSettingsNotFound", err)
	}

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := users.SaveUser(ctx, entities.NewUser(userID, 1)); err != nil {
			return err
		}
		return settings.Create(ctx, entities.NewUserSettings(userID, "de", "curious", 5))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	exists, err := users.UserExists(ctx, userID)
	if err != nil || !exists {
		t.Fatalf("UserExists = %v, %v", exists, err)
	}

	seen := time.Now().UTC().Truncate(time.Second)
	if err := settings.UpdateLanguage(ctx, userID, "en"); err != nil {
		t.Fatal(err)
	}
	if err := settings.UpdateDifficulty(ctx, userID, "satoshi"); err != nil {
		t.Fatal(err)
	}
	if err := settings.UpdateQuizLength(ctx, userID, 12); err != nil {
		t.Fatal(err)
	}
	if err := settings.UpdateIntroSeen(ctx, userID, seen); err != nil {
		t.Fatal(err)
	}

	got, err := settings.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Language != "en" || got.Difficulty != "satoshi" || got.QuizLength != 12 {
		t.Errorf("settings = %+v", got)
	}
	if got.IntroSeenAt == nil || !got.IntroSeenAt.Equal(seen) {
		t.Errorf("intro_seen_at = %v, want %v", got.IntroSeenAt, seen)
	}
}

func TestTransactorRollsBack(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const userID = int64(-424243)

	_, _ = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)

	users := NewUserRepository(pool)
	failure := errors.New("abort")
	err := postgres.NewTransactor(pool).WithinTx(ctx, func(ctx context.Context) error {
		if err := users.SaveUser(ctx, entities.NewUser(userID, 1)); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want %v", err, failure)
	}

	exists, err := users.UserExists(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("user persisted after rollback")
	}
}

func TestQuestionRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const lang = "zz"

	_, _ = pool.Exec(ctx, `DELETE FROM questions WHERE language = $1`, lang)
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM questions WHERE language = $1`, lang) })

	r := NewQuestionRepository(pool)
	if _, err := r.Questions(ctx, lang); !errors.Is(err, apprepo.ErrLanguageNotFound) {
		t.Fatalf("err = %v, want ErrLanguageNotFound", err)
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO questions (language, prompt, options, answer, difficulty) VALUES
		($1, 'How many sats in one bitcoin?', ARRAY['100 million', '1 million'], 0, ARRAY['curious']),
		($1, 'What does UTXO stand for?', ARRAY['Unspent Transaction Output', 'Unique Token', 'User TX'], 0, ARRAY['bitcoiner', 'satoshi'])
	`, lang)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := r.Questions(ctx, lang)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[1].Difficulty.Matches("satoshi") || got[1].Difficulty.Matches("sat") {
		t.Errorf("difficulty = %v", got[1].Difficulty)
	}
	if got[0].CorrectText() != "100 million" {
		t.Errorf("correct = %q", got[0].CorrectText())
	}
}

func TestProgressRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const userID = int64(-424244)

	_, _ = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID) })

	if err := NewUserRepository(pool).SaveUser(ctx, entities.NewUser(userID, 1)); err != nil {
		t.Fatal(err)
	}
	progress := NewProgressRepository(pool)

	empty, err := progress.GetStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if empty.Played != 0 || empty.LastPlayedAt != nil {
		t.Errorf("empty stats = %+v", empty)
	}

	last := time.Now().UTC().Truncate(time.Second)
	records := []*entities.QuizRecord{
		{UserID: userID, Language: "de", Difficulty: "curious", Score: 5, Total: 5, Tier: entities.TierTop, FinishedAt: last.Add(-time.Hour)},
		{UserID: userID, Language: "de", Difficulty: "satoshi", Score: 2, Total: 5, Tier: entities.TierEntry, FinishedAt: last},
	}
	for _, rec := range records {
		if err := progress.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	stats, err := progress.GetStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Played != 2 || stats.Perfect != 1 || stats.Correct != 7 || stats.Answered != 10 || stats.TopTier != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayedAt == nil || !stats.LastPlayedAt.Equal(last) {
		t.Errorf("last played = %v, want %v", stats.LastPlayedAt, last)
	}

	if err := progress.DeleteByUserID(ctx, userID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if stats, _ := progress.GetStats(ctx, userID); stats.Played != 0 {
		t.Errorf("played after delete = %d, want 0", stats.Played)
	}
}
