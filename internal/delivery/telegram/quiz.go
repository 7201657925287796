package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

// startQuiz installs a fresh session for the chat and sends the first question.
func (h *Handler) startQuiz(ctx context.Context, chatID, userID int64) error {
	settings, texts, err := h.userTexts(ctx, userID)
	if err != nil {
		return err
	}

	engine := h.quizStorage.GetOrCreate(chatID)

	h.logger.Debug("starting quiz session",
		zap.Int64("chat_id", chatID),
		zap.String("language", settings.Language),
		zap.String("difficulty", settings.Difficulty),
		zap.Int("quiz_length", settings.QuizLength),
	)

	questions, err := engine.StartSession(ctx, settings.Language, settings.Difficulty, settings.QuizLength)
	switch {
	case errors.Is(err, service.ErrSessionSuperseded):
		return nil
	case errors.Is(err, service.ErrDataUnavailable):
		h.logger.Warn("question pool unavailable",
			zap.Int64("chat_id", chatID),
			zap.String("language", settings.Language),
			zap.Error(err),
		)
		return h.send(newPlainMessage(chatID, texts.DataUnavailable))
	case err != nil:
		return err
	}

	if len(questions) == 0 {
		return h.sendResult(ctx, chatID, userID, engine, texts)
	}
	return h.sendQuestion(chatID, engine, texts)
}

// sendQuestion sends the current question with its answer buttons.
func (h *Handler) sendQuestion(chatID int64, engine *service.Engine, texts locale.Texts) error {
	info, err := engine.Session()
	if err != nil {
		return err
	}
	q, err := engine.CurrentQuestion()
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, renderQuestion(texts, info, q))
	msg.ReplyMarkup = buildAnswerKeyboard(q, info.ID, info.Index)
	return h.send(msg)
}

// sendResult records and sends the final result of the session.
func (h *Handler) sendResult(ctx context.Context, chatID, userID int64, engine *service.Engine, texts locale.Texts) error {
	res, err := engine.FinalResult()
	if err != nil {
		return err
	}
	info, err := engine.Session()
	if err != nil {
		return err
	}

	if err := h.progressService.RecordResult(ctx, userID, info, res); err != nil {
		h.logger.Error("failed to record quiz result",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	h.logger.Debug("quiz session result",
		zap.Int64("chat_id", chatID),
		zap.Int("score", res.Score),
		zap.Int("total", res.Total),
		zap.String("tier", string(res.Tier)),
	)

	msg := newHTMLMessage(chatID, renderResult(texts, res, h.opts.Contact))
	msg.ReplyMarkup = buildNewQuizKeyboard(texts)
	return h.send(msg)
}

// handleAnswer scores a pressed answer button. Presses for another session or an
// already answered question only get a short notice.
func (h *Handler) handleAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) error {
	chatID := cb.Message.Chat.ID
	_, texts, _ := h.userTexts(ctx, cb.From.ID)

	params, err := cd.parseAnswer()
	if err != nil {
		h.answerCallback(cb, "")
		return err
	}

	engine, ok := h.quizStorage.Get(chatID)
	if !ok {
		h.answerCallback(cb, texts.StaleAnswer)
		return nil
	}

	info, err := engine.Session()
	if err != nil || info.ID != params.SessionID || info.Index != params.Question || info.Finished() {
		h.answerCallback(cb, texts.StaleAnswer)
		return nil
	}

	q, err := engine.CurrentQuestion()
	if err != nil {
		h.answerCallback(cb, texts.StaleAnswer)
		return nil
	}

	outcome, err := engine.SubmitAnswer(params.Option)
	if err != nil {
		h.answerCallback(cb, texts.StaleAnswer)
		return nil
	}
	h.answerCallback(cb, "")

	_ = h.send(newEdit(chatID, cb.Message.MessageID, renderAnswered(texts, info, q, params.Option)))

	if outcome == entities.OutcomeFinished {
		return h.sendResult(ctx, chatID, cb.From.ID, engine, texts)
	}
	return h.sendQuestion(chatID, engine, texts)
}
