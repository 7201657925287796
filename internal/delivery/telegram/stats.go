package telegram

import (
	"context"
	"fmt"
)

// handleStats shows the statistics of the finished sessions of the user.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}

		stats, err := h.progressService.GetStats(ctx, userID)
		if err != nil {
			return err
		}

		if stats.Played == 0 {
			return h.send(newPlainMessage(chatID, texts.StatsEmpty))
		}

		text := fmt.Sprintf(texts.Stats, stats.Played, stats.Perfect, stats.TopTier, stats.Accuracy())
		msg := newPlainMessage(chatID, text)
		msg.ReplyMarkup = buildNewQuizKeyboard(texts)
		return h.send(msg)
	}
}

// handleReset clears the statistics, restores the default settings and drops
// the running session of the chat.
func (h *Handler) handleReset(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.resetService.ResetUser(ctx, userID); err != nil {
			return err
		}
		h.quizStorage.Delete(chatID)

		// Texts are read after the reset so the reply uses the default language.
		_, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, texts.ResetDone))
	}
}
