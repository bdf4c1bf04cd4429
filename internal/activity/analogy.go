package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/review"
)

// Analogy is single shot: Unanswered until the first answer, then Answered.
// A correct answer sets the test flag of the analogy's credited term.
type Analogy struct {
	data    curriculum.Analogy
	agg     review.Aggregator
	options []string
	phase   Phase
	choice  string
}

// AnalogyState is a read-only view of an Analogy.
type AnalogyState struct {
	Phase          Phase    `json:"phase"`
	SentencePrefix string   `json:"sentencePrefix"`
	SentenceSuffix string   `json:"sentenceSuffix"`
	Options        []string `json:"options"`
	Choice         string   `json:"choice,omitempty"`
	Verdict        Verdict  `json:"verdict,omitempty"`
	Answer         string   `json:"answer,omitempty"`
}

// NewAnalogy shuffles the options once for the lifetime of the machine.
func NewAnalogy(data curriculum.Analogy, agg review.Aggregator, src quiz.Source) *Analogy {
	options := append(slices.Clone(data.Distractors), data.CorrectAnswer)
	return &Analogy{
		data:    data,
		agg:     agg,
		options: quiz.Shuffle(src, options),
		phase:   PhaseUnanswered,
	}
}

// Answer records the learner's single choice.
func (a *Analogy) Answer(choice string) (bool, error) {
	if a.phase != PhaseUnanswered {
		return false, transitionErr("answer", a.phase)
	}
	if !slices.Contains(a.options, choice) {
		return false, fmt.Errorf("answer %q: %w", choice, ErrUnknownWord)
	}

	a.phase = PhaseAnswered
	a.choice = choice
	correct := choice == a.data.CorrectAnswer
	if correct && a.agg != nil {
		a.agg.SetFlag(a.data.CreditedTerm(), review.FlagTest, true)
	}
	return correct, nil
}

// Complete reports whether the analogy was answered correctly.
func (a *Analogy) Complete() bool {
	return a.phase == PhaseAnswered && a.choice == a.data.CorrectAnswer
}

// State returns a snapshot of the machine.
func (a *Analogy) State() AnalogyState {
	s := AnalogyState{
		Phase:          a.phase,
		SentencePrefix: a.data.SentencePrefix,
		SentenceSuffix: a.data.SentenceSuffix,
		Options:        slices.Clone(a.options),
	}
	if a.phase == PhaseAnswered {
		s.Choice = a.choice
		s.Verdict = verdictOf(a.choice == a.data.CorrectAnswer)
		s.Answer = a.data.CorrectAnswer
	}
	return s
}
