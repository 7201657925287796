package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
)

const selectedMark = "✅ "

// buildAnswerKeyboard builds keyboard for quiz question.
func buildAnswerKeyboard(q entities.Question, sessionID string, questionIdx int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		data := buildAnswerCallback(sessionID, questionIdx, i)
		button := tgbotapi.NewInlineKeyboardButtonData(option, data)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildNewQuizKeyboard builds keyboard for quiz results screen.
func buildNewQuizKeyboard(t locale.Texts) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.NewQuiz, buildQuizStartCallback()),
		),
	)
}

// buildIntroKeyboard builds keyboard for the intro message.
func buildIntroKeyboard(t locale.Texts) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.IntroButton, buildQuizStartCallback()),
		),
	)
}

// buildLanguageKeyboard lists the languages, marking the current one.
func buildLanguageKeyboard(tags []string, current string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, tag := range tags {
		label := locale.Get(tag).Name
		if !locale.Has(tag) {
			label = tag
		}
		if tag == current {
			label = selectedMark + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildLanguageCallback(tag)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildLevelKeyboard lists the difficulty levels, marking the current one.
func buildLevelKeyboard(levels []string, current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, level := range levels {
		label := levelName(level)
		if level == current {
			label = selectedMark + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLevelCallback(level)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLengthKeyboard lists the session lengths two per row.
func buildLengthKeyboard(t locale.Texts, lengths []int, current int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, n := range lengths {
		label := fmt.Sprintf("%d %s", n, t.Questions)
		if n == current {
			label = selectedMark + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildLengthCallback(n)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
