package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

// handleQuiz starts a new quiz for the user, replacing any running one.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startQuiz(ctx, chatID, userID)
	}
}

func (h *Handler) handleLanguageMenu(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}

		msg := newPlainMessage(chatID, texts.ChooseLanguage)
		msg.ReplyMarkup = buildLanguageKeyboard(h.opts.Languages, settings.Language)
		return h.send(msg)
	}
}

func (h *Handler) handleLevelMenu(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}

		msg := newPlainMessage(chatID, texts.ChooseLevel)
		msg.ReplyMarkup = buildLevelKeyboard(h.opts.Difficulties, settings.Difficulty)
		return h.send(msg)
	}
}

// handleLength shows the length menu, or sets the length directly for "/length N".
func (h *Handler) handleLength(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}

		args = strings.TrimSpace(args)
		if args == "" {
			msg := newPlainMessage(chatID, texts.ChooseLength)
			msg.ReplyMarkup = buildLengthKeyboard(texts, h.opts.Lengths, settings.QuizLength)
			return h.send(msg)
		}

		n, err := strconv.Atoi(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, fmt.Sprintf(texts.InvalidLength, service.MinQuizLength, service.MaxQuizLength)))
		}

		text, err := h.setLength(ctx, userID, n)
		if err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, text))
	}
}

// setLength stores the quiz length and returns the confirmation to show.
func (h *Handler) setLength(ctx context.Context, userID int64, n int) (string, error) {
	_, texts, _ := h.userTexts(ctx, userID)

	err := h.settingsService.UpdateQuizLength(ctx, userID, n)
	if errors.Is(err, service.ErrInvalidQuizLength) {
		return fmt.Sprintf(texts.InvalidLength, service.MinQuizLength, service.MaxQuizLength), nil
	}
	if err != nil {
		return "", err
	}

	h.logger.Debug("quiz length updated",
		zap.Int64("user_id", userID),
		zap.Int("quiz_length", n),
	)
	return fmt.Sprintf(texts.LengthSet, n), nil
}
