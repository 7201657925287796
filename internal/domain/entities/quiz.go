package entities

import "time"

// Tier is the coarse grade derived from the score ratio at the end of a session.
type Tier string

const (
	TierTop    Tier = "top"     // ratio >= top threshold
	TierMid    Tier = "mid"     // ratio >= mid threshold
	TierEntry  Tier = "entry"   // everything below mid
	TierNoData Tier = "no-data" // session without questions
)

// Outcome tells the presenter what to do after an answer.
type Outcome int

const (
	OutcomeContinue Outcome = iota // more questions remain
	OutcomeFinished                // last question answered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// WrongAnswer records a question the user answered incorrectly.
type WrongAnswer struct {
	Question      string // question prompt
	YourAnswer    string // text of the chosen option, empty if the index was out of range
	CorrectAnswer string // text of the correct option
}

// SessionInfo is a read-only snapshot of the running session.
type SessionInfo struct {
	ID         string    // random session id
	Language   string    // language tag the pool was loaded for
	Difficulty string    // difficulty tag the pool was filtered by
	Index      int       // 0-based index of the current question
	Total      int       // number of questions in the session
	Score      int       // correct answers so far
	StartedAt  time.Time // time the session was installed
}

// Finished reports whether every question has been answered.
func (s SessionInfo) Finished() bool {
	return s.Index >= s.Total
}

// Result is the immutable summary of a session.
type Result struct {
	Score        int
	Total        int
	WrongAnswers []WrongAnswer
	Tier         Tier
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}
