package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
)

// Menu defaults used when Options leaves a list empty.
var (
	DefaultDifficulties = []string{"curious", "bitcoiner", "satoshi"}
	DefaultLengths      = []int{5, 10, 15, 21, 30, 50}
)

// Options configures the menus and texts of the bot.
type Options struct {
	Languages     []string // language tags offered by /language
	Difficulties  []string // difficulty tags offered by /level
	Lengths       []int    // session lengths offered by /length
	Contact       string   // appended to results when set
	UpdateTimeout int      // long polling timeout in seconds
}

type Handler struct {
	bot             BotAPI
	logger          *zap.Logger
	userService     UserService
	settingsService SettingsService
	progressService ProgressService
	resetService    ResetService
	quizStorage     QuizStorage
	opts            Options
	now             func() time.Time
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	userService UserService,
	settingsService SettingsService,
	progressService ProgressService,
	resetService ResetService,
	quizStorage QuizStorage,
	opts Options,
) *Handler {
	if len(opts.Languages) == 0 {
		opts.Languages = locale.Languages()
	}
	if len(opts.Difficulties) == 0 {
		opts.Difficulties = DefaultDifficulties
	}
	if len(opts.Lengths) == 0 {
		opts.Lengths = DefaultLengths
	}
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 60
	}

	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		settingsService: settingsService,
		progressService: progressService,
		resetService:    resetService,
		quizStorage:     quizStorage,
		opts:            opts,
		now:             time.Now,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.opts.UpdateTimeout

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, userID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(userID, h.handleHelp(userID))(ctx, chatID)
		return
	}

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart(userID)
	case "quiz":
		fn = h.handleQuiz(userID)
	case "language":
		fn = h.handleLanguageMenu(userID)
	case "level":
		fn = h.handleLevelMenu(userID)
	case "length":
		fn = h.handleLength(userID, update.Message.CommandArguments())
	case "stats":
		fn = h.handleStats(userID)
	case "reset":
		fn = h.handleReset(userID)
	default:
		fn = h.handleHelp(userID)
	}

	_ = h.withErrorHandling(userID, fn)(ctx, chatID)
}

// userTexts returns the settings of userID and the matching translation table.
// If the settings cannot be loaded, the defaults and the fallback table are returned
// together with the error.
func (h *Handler) userTexts(ctx context.Context, userID int64) (*entities.UserSettings, locale.Texts, error) {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, locale.Get(locale.Fallback), err
	}
	return settings, locale.Get(settings.Language), nil
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator, optionally showing text.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer error",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
