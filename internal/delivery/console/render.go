package console

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

var (
	colorHeading = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("244")
	colorCorrect = lipgloss.Color("42")
	colorWarn    = lipgloss.Color("220")
	colorError   = lipgloss.Color("196")
)

// printQuestion prints the question with lettered options.
func (p *Presenter) printQuestion(info entities.SessionInfo, q entities.Question) {
	header := fmt.Sprintf(p.opts.Texts.QuestionHeader+":", info.Index+1, info.Total)
	p.println("")
	p.println(stylize(header, p.opts.NoColor, colorHeading) + " " + q.Prompt)
	for i, option := range q.Options {
		p.println(fmt.Sprintf("  %s) %s", optionLetter(i), option))
	}
}

// printFeedback tells the user whether the answer was right.
func (p *Presenter) printFeedback(q entities.Question, choice int) {
	t := p.opts.Texts
	if q.IsCorrect(choice) {
		p.println(stylize(t.Correct, p.opts.NoColor, colorCorrect))
		return
	}
	p.println(stylize(fmt.Sprintf(t.Wrong, q.CorrectText()), p.opts.NoColor, colorError))
}

// printResult prints score, tier, the wrong-answer log and the contact line.
func (p *Presenter) printResult(res entities.Result) {
	t := p.opts.Texts
	p.println("")

	if res.Total == 0 {
		p.println(stylize(t.TierLabel(res.Tier), p.opts.NoColor, colorMuted))
	} else {
		p.println(stylize(fmt.Sprintf("%s: %d/%d", t.Score, res.Score, res.Total), p.opts.NoColor, colorHeading))
		p.println(stylize(t.TierLabel(res.Tier), p.opts.NoColor, tierColor(res.Tier)))

		if len(res.WrongAnswers) == 0 {
			p.println(t.Perfect)
		} else {
			p.println("")
			p.println(stylize(t.WrongAnswers, p.opts.NoColor, colorHeading))
			for i, w := range res.WrongAnswers {
				p.println(fmt.Sprintf("%s %d: %s", t.Question, i+1, w.Question))
				p.println(fmt.Sprintf("  %s: %s", t.YourAnswer, t.AnswerText(w.YourAnswer)))
				p.println(fmt.Sprintf("  %s: %s", t.CorrectAnswer, w.CorrectAnswer))
			}
		}
	}

	if p.opts.Contact != "" {
		p.println("")
		p.println(stylize(fmt.Sprintf(t.Contact, p.opts.Contact), p.opts.NoColor, colorMuted))
	}
}

func tierColor(tier entities.Tier) lipgloss.Color {
	switch tier {
	case entities.TierTop:
		return colorCorrect
	case entities.TierMid:
		return colorWarn
	case entities.TierEntry:
		return colorError
	default:
		return colorMuted
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
