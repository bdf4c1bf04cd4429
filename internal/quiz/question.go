// Package quiz generates multiple-choice, odd-one-out and missing-word
// questions from a vocabulary pool, and assembles them into printable tests.
package quiz

// Kind identifies the question type.
type Kind string

const (
	KindMCQ         Kind = "MCQ"
	KindOddOneOut   Kind = "OddOneOut"
	KindMissingWord Kind = "MissingWord"
)

// Blank replaces the target term in a cloze sentence.
const Blank = "________"

// MaxOptions is the number of options offered when the pool is large enough.
const MaxOptions = 4

// Question is a generated test question. It is never persisted.
type Question struct {
	Kind         Kind     `json:"kind"`
	Prompt       string   `json:"prompt"`
	PromptL1     string   `json:"promptL1"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctOptionIndex"`
	CorrectTerm  string   `json:"correctTerm"`
	Explanation  string   `json:"explanation,omitempty"`
	// Sentence is the original context sentence of a missing-word question.
	Sentence string `json:"sentence,omitempty"`
}

// Letter returns the option letter (A, B, C, ...) for an option index.
func Letter(i int) string {
	return string(rune('A' + i))
}

// CorrectLetter returns the letter of the correct option.
func (q Question) CorrectLetter() string {
	return Letter(q.CorrectIndex)
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectTerm
}

// Counts is the number of questions requested per kind.
type Counts struct {
	MCQ         int
	OddOneOut   int
	MissingWord int
}
