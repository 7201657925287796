package telegram

import (
	"context"

	"go.uber.org/zap"
)

// handleStart greets the user, showing the intro when it is due.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, texts, err := h.userTexts(ctx, userID)
		if err != nil {
			return err
		}

		now := h.now()
		if !h.settingsService.ShouldShowIntro(settings, now) {
			msg := newPlainMessage(chatID, texts.Welcome)
			msg.ReplyMarkup = buildNewQuizKeyboard(texts)
			return h.send(msg)
		}

		msg := newHTMLMessage(chatID, renderIntro(texts))
		msg.ReplyMarkup = buildIntroKeyboard(texts)
		if err := h.send(msg); err != nil {
			return err
		}

		if err := h.settingsService.MarkIntroSeen(ctx, userID, now); err != nil {
			h.logger.Warn("failed to mark intro seen",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return nil
	}
}

func (h *Handler) handleHelp(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, texts, _ := h.userTexts(ctx, userID)
		return h.send(newPlainMessage(chatID, texts.Help))
	}
}
