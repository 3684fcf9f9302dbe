package models

import "time"

// Word types
const (
	WordTypeNoun         = "noun"
	WordTypeVerb         = "verb"
	WordTypeAdjective    = "adjective"
	WordTypeAdverb       = "adverb"
	WordTypePreposition  = "preposition"
	WordTypeConjunction  = "conjunction"
	WordTypePronoun      = "pronoun"
	WordTypeInterjection = "interjection"
	WordTypePhrase       = "phrase"
)

// CEFRLevels lists the supported difficulty levels, easiest first.
var CEFRLevels = []string{"A0", "A1", "A2", "B1", "B2", "C1", "C2"}

type Word struct {
	ID          int64     `json:"id"`
	Headword    string    `json:"headword"`
	Translation string    `json:"translation"`
	Definition  string    `json:"definition"`
	Example     string    `json:"example"`
	WordType    string    `json:"word_type"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}

// WordFilter narrows word listings.
type WordFilter struct {
	Level    string
	WordType string
	Search   string
	OrderBy  string
	OrderDir string
	Limit    int
	Offset   int
}

// ValidWordType reports whether t is one of the supported word types.
func ValidWordType(t string) bool {
	switch t {
	case WordTypeNoun, WordTypeVerb, WordTypeAdjective, WordTypeAdverb,
		WordTypePreposition, WordTypeConjunction, WordTypePronoun,
		WordTypeInterjection, WordTypePhrase:
		return true
	}
	return false
}

// ValidCEFRLevel reports whether level is a known CEFR level.
func ValidCEFRLevel(level string) bool {
	for _, l := range CEFRLevels {
		if l == level {
			return true
		}
	}
	return false
}
