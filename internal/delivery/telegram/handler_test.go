package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/storage"
)

// fakeBot records everything the handler sends.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

// lastMessage returns the most recent new message.
func (b *fakeBot) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.sent) - 1; i >= 0; i-- {
		if msg, ok := b.sent[i].(tgbotapi.MessageConfig); ok {
			return msg
		}
	}
	t.Fatal("no message sent")
	return tgbotapi.MessageConfig{}
}

// lastCallbackText returns the text of the most recent callback answer.
func (b *fakeBot) lastCallbackText(t *testing.T) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text
		}
	}
	t.Fatal("no callback answered")
	return ""
}

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

// buttons returns the callback data of every button of msg.
func buttons(t *testing.T, msg tgbotapi.MessageConfig) []string {
	t.Helper()
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("message %q has no inline keyboard", msg.Text)
	}
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				data = append(data, *b.CallbackData)
			}
		}
	}
	return data
}

// stubProvider serves the same pool for de and en.
type stubProvider struct {
	pool []entities.Question
	err  error
}

func (p stubProvider) Questions(_ context.Context, language string) ([]entities.Question, error) {
	if p.err != nil {
		return nil, p.err
	}
	if language != "de" && language != "en" {
		return nil, repository.ErrLanguageNotFound
	}
	return p.pool, nil
}

func testQuestions() []entities.Question {
	return []entities.Question{
		{Prompt: "How many sats are one bitcoin?", Options: []string{"100 million", "1 million"}, Answer: 0, Difficulty: entities.NewDifficulty("curious")},
		{Prompt: "Who wrote the white paper?", Options: []string{"Satoshi Nakamoto", "Hal Finney", "Nick Szabo"}, Answer: 0, Difficulty: entities.NewDifficulty("curious")},
		{Prompt: "What is the halving interval?", Options: []string{"210000 blocks", "2016 blocks"}, Answer: 0, Difficulty: entities.NewDifficulty("satoshi")},
	}
}

type testEnv struct {
	h        *Handler
	bot      *fakeBot
	settings *service.SettingsService
	quizzes  *storage.QuizStorage
}

func newTestEnv(p service.QuestionProvider) testEnv {
	bot := &fakeBot{updates: make(chan tgbotapi.Update)}
	settingsRepo := repository.NewSettingsRepository()
	defaults := service.SettingsDefaults{
		Language:      "en",
		Difficulty:    "curious",
		QuizLength:    3,
		IntroInterval: 30 * 24 * time.Hour,
	}
	settings := service.NewSettingsService(settingsRepo, defaults)
	users := service.NewUserService(repository.NewUserRepository(), settings, repository.NoopTransactor{})
	progressRepo := repository.NewProgressRepository()
	progress := service.NewProgressService(progressRepo)
	reset := service.NewResetService(progressRepo, settingsRepo, defaults, repository.NoopTransactor{})
	quizzes := storage.NewQuizStorage(func() *service.Engine {
		return service.NewEngine(p, service.DefaultEngineConfig(), nil)
	})

	h := NewHandler(bot, zap.NewNop(), users, settings, progress, reset, quizzes, Options{Contact: "@satoshiquiz"})
	return testEnv{h: h, bot: bot, settings: settings, quizzes: quizzes}
}

func commandUpdate(userID, chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callbackUpdate(userID, chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{MessageID: 42, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

func TestQuizFlow(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()
	en := locale.Get("en")

	env.h.handleUpdate(ctx, commandUpdate(7, 70, "/quiz"))

	first := env.bot.lastMessage(t)
	if !strings.HasPrefix(first.Text, "<b>1/3:</b>") {
		t.Fatalf("first question = %q", first.Text)
	}
	firstButtons := buttons(t, first)

	// Answer every question with option 0, which is always correct.
	msg := first
	for i := 0; i < 3; i++ {
		data := buttons(t, msg)[0]
		env.h.handleUpdate(ctx, callbackUpdate(7, 70, data))
		if got := env.bot.lastCallbackText(t); got != "" {
			t.Fatalf("answer %d rejected: %q", i, got)
		}
		msg = env.bot.lastMessage(t)
	}

	for _, want := range []string{"Score: 3/3", en.TierTop, en.Perfect, "@satoshiquiz"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("result missing %q:\n%s", want, msg.Text)
		}
	}
	if got := buttons(t, msg); len(got) != 1 || got[0] != buildQuizStartCallback() {
		t.Errorf("result buttons = %v", got)
	}

	// Pressing an old button after the session finished is ignored.
	before := env.bot.sentCount()
	env.h.handleUpdate(ctx, callbackUpdate(7, 70, firstButtons[1]))
	if got := env.bot.lastCallbackText(t); got != en.StaleAnswer {
		t.Errorf("stale press answer = %q, want %q", got, en.StaleAnswer)
	}
	if env.bot.sentCount() != before {
		t.Error("stale press sent a message")
	}
}

func TestQuizFlowWrongAnswer(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()

	env.h.handleUpdate(ctx, commandUpdate(8, 80, "/length 1"))
	env.h.handleUpdate(ctx, commandUpdate(8, 80, "/quiz"))

	q := env.bot.lastMessage(t)
	env.h.handleUpdate(ctx, callbackUpdate(8, 80, buttons(t, q)[1]))

	res := env.bot.lastMessage(t)
	for _, want := range []string{"Score: 0/1", "Wrong Answers:", "Correct Answer:"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("result missing %q:\n%s", want, res.Text)
		}
	}

	// The answered question message was edited with feedback.
	var edited bool
	for _, c := range env.bot.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok && strings.Contains(e.Text, "Wrong.") {
			edited = true
		}
	}
	if !edited {
		t.Error("answered question was not edited")
	}
}

func TestQuizProviderUnavailable(t *testing.T) {
	env := newTestEnv(stubProvider{err: errors.New("connection refused")})

	env.h.handleUpdate(context.Background(), commandUpdate(9, 90, "/quiz"))

	if got := env.bot.lastMessage(t).Text; got != locale.Get("en").DataUnavailable {
		t.Errorf("message = %q", got)
	}
}

func TestQuizNoMatchingQuestions(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()

	env.h.handleUpdate(ctx, commandUpdate(10, 100, "/level"))
	env.h.handleUpdate(ctx, callbackUpdate(10, 100, buildLevelCallback("bitcoiner")))
	env.h.handleUpdate(ctx, commandUpdate(10, 100, "/quiz"))

	if got := env.bot.lastMessage(t).Text; !strings.HasPrefix(got, locale.Get("en").TierNoData) {
		t.Errorf("message = %q", got)
	}
}

func TestStartShowsIntroOnce(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()
	en := locale.Get("en")
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	env.h.now = func() time.Time { return now }

	env.h.handleUpdate(ctx, commandUpdate(11, 110, "/start"))
	if got := env.bot.lastMessage(t).Text; !strings.Contains(got, en.IntroTitle) {
		t.Fatalf("first /start = %q, want intro", got)
	}

	env.h.handleUpdate(ctx, commandUpdate(11, 110, "/start"))
	if got := env.bot.lastMessage(t).Text; got != en.Welcome {
		t.Errorf("second /start = %q, want welcome", got)
	}

	now = now.Add(31 * 24 * time.Hour)
	env.h.handleUpdate(ctx, commandUpdate(11, 110, "/start"))
	if got := env.bot.lastMessage(t).Text; !strings.Contains(got, en.IntroTitle) {
		t.Errorf("/start after 31 days = %q, want intro", got)
	}
}

func TestSettingsCallbacks(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()

	env.h.handleUpdate(ctx, commandUpdate(12, 120, "/language"))
	if got := buttons(t, env.bot.lastMessage(t)); len(got) != 3 {
		t.Fatalf("language buttons = %v", got)
	}

	env.h.handleUpdate(ctx, callbackUpdate(12, 120, buildLanguageCallback("fr")))
	env.h.handleUpdate(ctx, callbackUpdate(12, 120, buildLengthCallback(21)))
	env.h.handleUpdate(ctx, callbackUpdate(12, 120, buildLevelCallback("wizard")))

	got, err := env.settings.GetOrCreate(ctx, 12)
	if err != nil {
		t.Fatal(err)
	}
	if got.Language != "fr" || got.QuizLength != 21 || got.Difficulty != "curious" {
		t.Errorf("settings = %+v", got)
	}
	if msg := env.bot.lastMessage(t).Text; msg != locale.Get("fr").InternalError {
		t.Errorf("unknown level reply = %q", msg)
	}

	env.h.handleUpdate(ctx, commandUpdate(12, 120, "/length 99"))
	if msg := env.bot.lastMessage(t).Text; !strings.Contains(msg, "1") || !strings.Contains(msg, "50") {
		t.Errorf("invalid length reply = %q", msg)
	}
	got, _ = env.settings.GetOrCreate(ctx, 12)
	if got.QuizLength != 21 {
		t.Errorf("invalid length was stored: %d", got.QuizLength)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- env.h.Run(ctx) }()

	env.bot.updates <- commandUpdate(13, 130, "/help")
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	if got := env.bot.lastMessage(t).Text; got != locale.Get("en").Help {
		t.Errorf("help = %q", got)
	}
}

func TestStatsAndReset(t *testing.T) {
	env := newTestEnv(stubProvider{pool: testQuestions()})
	ctx := context.Background()
	en := locale.Get("en")

	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/stats"))
	if got := env.bot.lastMessage(t).Text; got != en.StatsEmpty {
		t.Fatalf("stats before playing = %q", got)
	}

	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/length 1"))
	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/quiz"))
	q := env.bot.lastMessage(t)
	env.h.handleUpdate(ctx, callbackUpdate(14, 140, buttons(t, q)[0]))

	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/stats"))
	want := fmt.Sprintf(en.Stats, 1, 1, 1, 100.0)
	if got := env.bot.lastMessage(t).Text; got != want {
		t.Errorf("stats = %q, want %q", got, want)
	}

	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/reset"))
	if got := env.bot.lastMessage(t).Text; got != en.ResetDone {
		t.Errorf("reset reply = %q", got)
	}
	if _, ok := env.quizzes.Get(140); ok {
		t.Error("quiz engine kept after reset")
	}
	settings, err := env.settings.GetOrCreate(ctx, 14)
	if err != nil {
		t.Fatal(err)
	}
	if settings.QuizLength != 3 {
		t.Errorf("quiz length after reset = %d, want 3", settings.QuizLength)
	}

	env.h.handleUpdate(ctx, commandUpdate(14, 140, "/stats"))
	if got := env.bot.lastMessage(t).Text; got != en.StatsEmpty {
		t.Errorf("stats after reset = %q", got)
	}
}
