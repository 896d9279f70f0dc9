package domain

import "strings"

// Choice identifies one of a question's three options.
type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
	ChoiceC Choice = "C"
)

// ParseChoice normalizes raw player input into a Choice. Anything other
// than a single A, B or C (after trimming whitespace) is not a choice.
func ParseChoice(raw string) (Choice, bool) {
	c := Choice(strings.TrimSpace(raw))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Valid reports whether c is one of the three playable choices.
func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB || c == ChoiceC
}

// Question is a single multiple-choice question. Immutable once loaded;
// shared read-only across rounds.
type Question struct {
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	Answer  Choice `json:"answer"`
}

// Option returns the option text for a choice.
func (q Question) Option(c Choice) string {
	switch c {
	case ChoiceA:
		return q.OptionA
	case ChoiceB:
		return q.OptionB
	case ChoiceC:
		return q.OptionC
	}
	return ""
}

// QuestionSet is a named, ordered question bank as stored in Postgres.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Standing is one row of the ongoing scoreboard. Ranks are consecutive;
// ties do not share a rank.
type Standing struct {
	Rank     int
	Username string
	Score    int
}

// FinalStanding is one row of the final scoreboard. Tied scores share a
// rank and the display carries an ordinal suffix ("1st", "3rd").
type FinalStanding struct {
	Rank     string
	Username string
	Score    int
}
