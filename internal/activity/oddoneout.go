package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

// OddOneOut presents each set in turn (Presenting). The first selection
// locks the set and reveals the answer (Revealed); Next moves on or, after
// the last set, completes. There is no retry and no mastery signal.
type OddOneOut struct {
	data   curriculum.OddOneOut
	phase  Phase
	set    int
	chosen string
	score  int
}

// OddOneOutState is a read-only view of an OddOneOut.
type OddOneOutState struct {
	Phase    Phase    `json:"phase"`
	SetIndex int      `json:"setIndex"`
	Sets     int      `json:"sets"`
	Words    []string `json:"words,omitempty"`
	Chosen   string   `json:"chosen,omitempty"`
	Verdict  Verdict  `json:"verdict,omitempty"`
	// Answer and Reason are only revealed after a selection.
	Answer string `json:"answer,omitempty"`
	Reason string `json:"reason,omitempty"`
	Score  int    `json:"score"`
}

// NewOddOneOut starts at the first set.
func NewOddOneOut(data curriculum.OddOneOut) *OddOneOut {
	o := &OddOneOut{data: data, phase: PhasePresenting}
	if len(data.Sets) == 0 {
		o.phase = PhaseComplete
	}
	return o
}

// Select locks in a choice for the current set and reports whether it was
// the odd one out.
func (o *OddOneOut) Select(word string) (bool, error) {
	if o.phase != PhasePresenting {
		return false, transitionErr("select", o.phase)
	}
	set := o.data.Sets[o.set]
	if !slices.Contains(set.Words, word) {
		return false, fmt.Errorf("select %q: %w", word, ErrUnknownWord)
	}

	o.phase = PhaseRevealed
	o.chosen = word
	correct := word == set.OddOneOut
	if correct {
		o.score++
	}
	return correct, nil
}

// Next moves to the following set.
func (o *OddOneOut) Next() error {
	if o.phase != PhaseRevealed {
		return transitionErr("next", o.phase)
	}
	o.chosen = ""
	if o.set == len(o.data.Sets)-1 {
		o.phase = PhaseComplete
		return nil
	}
	o.set++
	o.phase = PhasePresenting
	return nil
}

// Complete reports whether every set has been seen.
func (o *OddOneOut) Complete() bool {
	return o.phase == PhaseComplete
}

// State returns a snapshot of the machine.
func (o *OddOneOut) State() OddOneOutState {
	s := OddOneOutState{
		Phase:    o.phase,
		SetIndex: o.set,
		Sets:     len(o.data.Sets),
		Score:    o.score,
	}
	if o.phase == PhaseComplete {
		return s
	}
	set := o.data.Sets[o.set]
	s.Words = slices.Clone(set.Words)
	if o.phase == PhaseRevealed {
		s.Chosen = o.chosen
		s.Verdict = verdictOf(o.chosen == set.OddOneOut)
		s.Answer = set.OddOneOut
		s.Reason = set.Reason
	}
	return s
}
