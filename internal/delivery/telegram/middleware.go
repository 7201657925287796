package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(userID int64, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			_, texts, _ := h.userTexts(ctx, userID)
			h.sendError(chatID, texts.InternalError)
			return nil
		}
		return nil
	}
}
