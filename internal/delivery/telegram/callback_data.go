package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionLanguage = "lang"
	actionLevel    = "level"
	actionLength   = "len"
	actionQuiz     = "quiz"
	actionAnswer   = "ans"
)

// Quiz sub-actions.
const (
	quizStart = "start"
)

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// answerParams identifies one press of an answer button.
type answerParams struct {
	SessionID string
	Question  int // 0-based question index the button belongs to
	Option    int
}

// parseAnswer reads the parameters of an answer callback.
func (cd callbackData) parseAnswer() (answerParams, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 || cd.Params[0] == "" {
		return answerParams{}, fmt.Errorf("%w: %q", errInvalidCallback, cd.Raw)
	}

	question, err1 := strconv.Atoi(cd.Params[1])
	option, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || question < 0 || option < 0 {
		return answerParams{}, fmt.Errorf("%w: %q", errInvalidCallback, cd.Raw)
	}

	return answerParams{SessionID: cd.Params[0], Question: question, Option: option}, nil
}

func buildLanguageCallback(tag string) string {
	return callbackData{Action: actionLanguage, Params: []string{tag}}.encode()
}

func buildLevelCallback(level string) string {
	return callbackData{Action: actionLevel, Params: []string{level}}.encode()
}

func buildLengthCallback(n int) string {
	return callbackData{Action: actionLength, Params: []string{strconv.Itoa(n)}}.encode()
}

// buildQuizStartCallback builds callback data for starting a quiz session.
func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(sessionID string, questionIdx, answerIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			sessionID,
			strconv.Itoa(questionIdx),
			strconv.Itoa(answerIndex),
		},
	}.encode()
}
