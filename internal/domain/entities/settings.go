package entities

import (
	"time"
)

// UserSettings stores the quiz preferences of a single user.
type UserSettings struct {
	UserID      int64
	Language    string     // language tag of the question pool ("de", "en", "fr")
	Difficulty  string     // difficulty tag: "curious", "bitcoiner", "satoshi"
	QuizLength  int        // number of questions per session
	IntroSeenAt *time.Time // nullable, last time the intro was shown
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUserSettings creates a new UserSettings instance with the given defaults.
func NewUserSettings(userID int64, language, difficulty string, quizLength int) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:     userID,
		Language:   language,
		Difficulty: difficulty,
		QuizLength: quizLength,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IntroDue reports whether the intro should be shown again at now.
func (us *UserSettings) IntroDue(now time.Time, interval time.Duration) bool {
	if us.IntroSeenAt == nil {
		return true
	}
	return now.Sub(*us.IntroSeenAt) >= interval
}
