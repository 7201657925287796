package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	cd := decodeCallback(cb.Data)

	if err := h.userService.EnsureUser(ctx, userID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	var fn HandlerFunc
	switch cd.Action {
	case actionAnswer:
		fn = func(ctx context.Context, _ int64) error { return h.handleAnswer(ctx, cb, cd) }
	case actionQuiz:
		h.answerCallback(cb, "")
		fn = func(ctx context.Context, chatID int64) error { return h.startQuiz(ctx, chatID, userID) }
	case actionLanguage:
		fn = h.handleLanguageCallback(cb, cd.param(0))
	case actionLevel:
		fn = h.handleLevelCallback(cb, cd.param(0))
	case actionLength:
		fn = h.handleLengthCallback(cb, cd.param(0))
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	_ = h.withErrorHandling(userID, fn)(ctx, chatID)
}

func (h *Handler) handleLanguageCallback(cb *tgbotapi.CallbackQuery, tag string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(cb, "")
		if !contains(h.opts.Languages, tag) {
			return fmt.Errorf("%w: language %q", errInvalidCallback, tag)
		}

		if err := h.settingsService.UpdateLanguage(ctx, cb.From.ID, tag); err != nil {
			return err
		}

		texts := locale.Get(tag)
		name := texts.Name
		if !locale.Has(tag) {
			name = tag
		}

		edit := newEdit(chatID, cb.Message.MessageID, esc(fmt.Sprintf(texts.LanguageSet, name)))
		kb := buildLanguageKeyboard(h.opts.Languages, tag)
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func (h *Handler) handleLevelCallback(cb *tgbotapi.CallbackQuery, level string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(cb, "")
		if !contains(h.opts.Difficulties, level) {
			return fmt.Errorf("%w: level %q", errInvalidCallback, level)
		}

		if err := h.settingsService.UpdateDifficulty(ctx, cb.From.ID, level); err != nil {
			return err
		}

		_, texts, _ := h.userTexts(ctx, cb.From.ID)
		edit := newEdit(chatID, cb.Message.MessageID, esc(fmt.Sprintf(texts.LevelSet, levelName(level))))
		kb := buildLevelKeyboard(h.opts.Difficulties, level)
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func (h *Handler) handleLengthCallback(cb *tgbotapi.CallbackQuery, value string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(cb, "")
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: length %q", errInvalidCallback, value)
		}

		text, err := h.setLength(ctx, cb.From.ID, n)
		if err != nil {
			return err
		}

		_, texts, _ := h.userTexts(ctx, cb.From.ID)
		edit := newEdit(chatID, cb.Message.MessageID, esc(text))
		kb := buildLengthKeyboard(texts, h.opts.Lengths, n)
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
