package telegram

import (
	"fmt"
	"strings"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
)

// renderQuestion renders the current question with its position in the session.
func renderQuestion(t locale.Texts, info entities.SessionInfo, q entities.Question) string {
	return fmt.Sprintf("%s %s", bold(fmt.Sprintf(t.QuestionHeader+":", info.Index+1, info.Total)), esc(q.Prompt))
}

// renderAnswered renders a question after it was answered.
func renderAnswered(t locale.Texts, info entities.SessionInfo, q entities.Question, option int) string {
	var sb strings.Builder
	sb.WriteString(renderQuestion(t, info, q))
	sb.WriteString("\n\n")
	if q.IsCorrect(option) {
		sb.WriteString(esc(t.Correct))
	} else {
		sb.WriteString(esc(fmt.Sprintf(t.Wrong, q.CorrectText())))
	}
	return sb.String()
}

// renderResult renders the final score, tier and wrong-answer log.
func renderResult(t locale.Texts, res entities.Result, contact string) string {
	var sb strings.Builder

	if res.Total == 0 {
		sb.WriteString(esc(t.TierLabel(res.Tier)))
	} else {
		sb.WriteString(bold(fmt.Sprintf("%s: %d/%d", t.Score, res.Score, res.Total)))
		sb.WriteString("\n")
		sb.WriteString(esc(t.TierLabel(res.Tier)))
		sb.WriteString("\n\n")

		if len(res.WrongAnswers) == 0 {
			sb.WriteString(esc(t.Perfect))
		} else {
			sb.WriteString(bold(t.WrongAnswers))
			for i, w := range res.WrongAnswers {
				fmt.Fprintf(&sb, "\n\n%s %s\n%s %s\n%s %s",
					bold(fmt.Sprintf("%s %d:", t.Question, i+1)), esc(w.Question),
					bold(t.YourAnswer+":"), esc(t.AnswerText(w.YourAnswer)),
					bold(t.CorrectAnswer+":"), esc(w.CorrectAnswer),
				)
			}
		}
	}

	if contact != "" {
		sb.WriteString("\n\n")
		sb.WriteString(esc(fmt.Sprintf(t.Contact, contact)))
	}

	return sb.String()
}

// renderIntro renders the intro shown by /start.
func renderIntro(t locale.Texts) string {
	return bold(t.IntroTitle) + "\n\n" + esc(t.Help)
}

// levelName formats a difficulty tag for display.
func levelName(level string) string {
	if level == "" {
		return level
	}
	return strings.ToUpper(level[:1]) + level[1:]
}
