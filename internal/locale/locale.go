// Package locale holds the user-facing strings of the presenters.
package locale

import (
	"sort"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// Fallback is used for tags without a translation table.
const Fallback = "de"

// Texts is the translation table of one language.
type Texts struct {
	Name string // language name in that language

	Score         string
	Perfect       string
	WrongAnswers  string
	Question      string
	YourAnswer    string
	CorrectAnswer string
	NoAnswer      string

	TierTop    string
	TierMid    string
	TierEntry  string
	TierNoData string

	DataUnavailable string
	InternalError   string
	Contact         string // format with the configured contact

	IntroTitle  string
	IntroButton string
	Welcome     string
	Help        string

	ChooseLanguage string
	ChooseLevel    string
	ChooseLength   string
	LanguageSet    string // format with the language name
	LevelSet       string // format with the level
	LengthSet      string // format with the length
	InvalidLength  string

	QuestionHeader string // format with index and total
	Correct        string
	Wrong          string // format with the correct option
	StaleAnswer    string
	NewQuiz        string
	InvalidInput   string // format with the last option letter
	Questions      string // unit shown on length buttons

	Stats      string // format with played, perfect, top tier and accuracy
	StatsEmpty string
	ResetDone  string
}

var tables = map[string]Texts{
	"de": {
		Name:          "Deutsch",
		Score:         "Score",
		Perfect:       "Perfekt! 🎉 Du hast alles richtig beantwortet.",
		WrongAnswers:  "Falsche Antworten:",
		Question:      "Frage",
		YourAnswer:    "Deine Antwort",
		CorrectAnswer: "Richtige Antwort",
		NoAnswer:      "(keine)",

		TierTop:    "🟢 Satoshi-Level!",
		TierMid:    "🟡 Bitcoiner-Level",
		TierEntry:  "🔴 Curious-Level",
		TierNoData: "Keine Fragen für diese Auswahl.",

		DataUnavailable: "Die Fragen konnten nicht geladen werden. Bitte versuche es später erneut.",
		InternalError:   "Etwas ist schiefgelaufen. Bitte versuche es später erneut.",
		Contact:         "Fragen oder Feedback? %s",

		IntroTitle:  "Kannst du Satoshi überlisten?",
		IntroButton: "Quiz starten",
		Welcome:     "Willkommen zurück! Starte ein neues Quiz mit /quiz.",
		Help: "/quiz startet ein neues Quiz\n" +
			"/language wählt die Sprache\n" +
			"/level wählt den Schwierigkeitsgrad\n" +
			"/length wählt die Anzahl der Fragen\n" +
			"/stats zeigt deine Statistik\n" +
			"/reset setzt Statistik und Einstellungen zurück\n" +
			"/help zeigt diese Hilfe",

		ChooseLanguage: "Wähle deine Sprache:",
		ChooseLevel:    "Wähle deinen Schwierigkeitsgrad:",
		ChooseLength:   "Wie viele Fragen?",
		LanguageSet:    "Sprache: %s",
		LevelSet:       "Schwierigkeitsgrad: %s",
		LengthSet:      "Fragen pro Quiz: %d",
		InvalidLength:  "Ungültige Anzahl. Erlaubt sind %d bis %d Fragen.",

		QuestionHeader: "%d/%d",
		Correct:        "✅ Richtig!",
		Wrong:          "❌ Falsch. Richtig ist: %s",
		StaleAnswer:    "Diese Frage ist nicht mehr aktiv.",
		NewQuiz:        "🔄 Neues Quiz",
		InvalidInput:   "Bitte antworte mit A-%s oder der Nummer der Option.",
		Questions:      "Fragen",

		Stats:      "📊 Deine Statistik\n\nGespielte Quiz: %d\nPerfekte Runden: %d\nSatoshi-Level erreicht: %d\nTrefferquote: %.0f%%",
		StatsEmpty: "Du hast noch kein Quiz beendet. Starte eins mit /quiz.",
		ResetDone:  "Deine Statistik und Einstellungen wurden zurückgesetzt.",
	},
	"en": {
		Name:          "English",
		Score:         "Score",
		Perfect:       "Perfect! 🎉 You answered everything correctly.",
		WrongAnswers:  "Wrong Answers:",
		Question:      "Question",
		YourAnswer:    "Your Answer",
		CorrectAnswer: "Correct Answer",
		NoAnswer:      "(none)",

		TierTop:    "🟢 Satoshi Level!",
		TierMid:    "🟡 Bitcoiner Level",
		TierEntry:  "🔴 Curious Level",
		TierNoData: "No questions for this selection.",

		DataUnavailable: "The questions could not be loaded. Please try again later.",
		InternalError:   "Something went wrong. Please try again later.",
		Contact:         "Questions or feedback? %s",

		IntroTitle:  "Can you outsmart Satoshi?",
		IntroButton: "Start Quiz",
		Welcome:     "Welcome back! Start a new quiz with /quiz.",
		Help: "/quiz starts a new quiz\n" +
			"/language picks the language\n" +
			"/level picks the difficulty\n" +
			"/length picks the number of questions\n" +
			"/stats shows your stats\n" +
			"/reset clears your stats and settings\n" +
			"/help shows this help",

		ChooseLanguage: "Choose your language:",
		ChooseLevel:    "Choose your difficulty:",
		ChooseLength:   "How many questions?",
		LanguageSet:    "Language: %s",
		LevelSet:       "Difficulty: %s",
		LengthSet:      "Questions per quiz: %d",
		InvalidLength:  "Invalid number. Allowed are %d to %d questions.",

		QuestionHeader: "%d/%d",
		Correct:        "✅ Correct!",
		Wrong:          "❌ Wrong. The answer is: %s",
		StaleAnswer:    "This question is no longer active.",
		NewQuiz:        "🔄 New quiz",
		InvalidInput:   "Please answer with A-%s or the option number.",
		Questions:      "questions",

		Stats:      "📊 Your stats\n\nQuizzes played: %d\nPerfect runs: %d\nSatoshi Level reached: %d\nAccuracy: %.0f%%",
		StatsEmpty: "You have not finished a quiz yet. Start one with /quiz.",
		ResetDone:  "Your stats and settings have been reset.",
	},
	"fr": {
		Name:          "Français",
		Score:         "Score",
		Perfect:       "Parfait! 🎉 Vous avez tout répondu correctement.",
		WrongAnswers:  "Réponses incorrectes:",
		Question:      "Question",
		YourAnswer:    "Votre réponse",
		CorrectAnswer: "Bonne réponse",
		NoAnswer:      "(aucune)",

		TierTop:    "🟢 Niveau Satoshi!",
		TierMid:    "🟡 Niveau Bitcoiner",
		TierEntry:  "🔴 Niveau Curieux",
		TierNoData: "Aucune question pour cette sélection.",

		DataUnavailable: "Les questions n'ont pas pu être chargées. Veuillez réessayer plus tard.",
		InternalError:   "Une erreur est survenue. Veuillez réessayer plus tard.",
		Contact:         "Des questions ou des remarques? %s",

		IntroTitle:  "Pouvez-vous déjouer Satoshi?",
		IntroButton: "Commencer le quiz",
		Welcome:     "Bon retour! Lancez un nouveau quiz avec /quiz.",
		Help: "/quiz lance un nouveau quiz\n" +
			"/language choisit la langue\n" +
			"/level choisit la difficulté\n" +
			"/length choisit le nombre de questions\n" +
			"/stats affiche vos statistiques\n" +
			"/reset réinitialise statistiques et réglages\n" +
			"/help affiche cette aide",

		ChooseLanguage: "Choisissez votre langue:",
		ChooseLevel:    "Choisissez votre difficulté:",
		ChooseLength:   "Combien de questions?",
		LanguageSet:    "Langue: %s",
		LevelSet:       "Difficulté: %s",
		LengthSet:      "Questions par quiz: %d",
		InvalidLength:  "Nombre invalide. De %d à %d questions.",

		QuestionHeader: "%d/%d",
		Correct:        "✅ Correct!",
		Wrong:          "❌ Faux. La bonne réponse: %s",
		StaleAnswer:    "Cette question n'est plus active.",
		NewQuiz:        "🔄 Nouveau quiz",
		InvalidInput:   "Répondez avec A-%s ou le numéro de l'option.",
		Questions:      "questions",

		Stats:      "📊 Vos statistiques\n\nQuiz joués: %d\nParties parfaites: %d\nNiveau Satoshi atteint: %d\nPrécision: %.0f%%",
		StatsEmpty: "Vous n'avez pas encore terminé de quiz. Lancez-en un avec /quiz.",
		ResetDone:  "Vos statistiques et réglages ont été réinitialisés.",
	},
}

// Get returns the table for tag, or the German table when tag is unknown.
func Get(tag string) Texts {
	if t, ok := tables[tag]; ok {
		return t
	}
	return tables[Fallback]
}

// Has reports whether tag has its own table.
func Has(tag string) bool {
	_, ok := tables[tag]
	return ok
}

// Languages returns the tags with a table, sorted.
func Languages() []string {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TierLabel returns the label for tier.
func (t Texts) TierLabel(tier entities.Tier) string {
	switch tier {
	case entities.TierTop:
		return t.TierTop
	case entities.TierMid:
		return t.TierMid
	case entities.TierEntry:
		return t.TierEntry
	default:
		return t.TierNoData
	}
}

// AnswerText returns the given answer, or NoAnswer when it is empty.
func (t Texts) AnswerText(answer string) string {
	if answer == "" {
		return t.NoAnswer
	}
	return answer
}
