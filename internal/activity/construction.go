package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/review"
)

// WordConstruction walks through the week's targets. For each target the
// learner places parts (Building), checks them (Checked) and, once correct,
// advances; after the last target the machine is Complete.
//
// Placed parts form an ordered set: placing a part twice is rejected, so
// correctness is plain set equality with the target's parts.
type WordConstruction struct {
	data   curriculum.WordConstruction
	agg    review.Aggregator
	phase  Phase
	target int
	placed []string
	result Verdict
}

// ConstructionState is a read-only view of a WordConstruction.
type ConstructionState struct {
	Phase       Phase    `json:"phase"`
	TargetIndex int      `json:"targetIndex"`
	Targets     int      `json:"targets"`
	Definition  string   `json:"definition,omitempty"`
	AllParts    []string `json:"allParts"`
	Placed      []string `json:"placed"`
	Verdict     Verdict  `json:"verdict,omitempty"`
	// Word is revealed once the current target is checked correct.
	Word string `json:"word,omitempty"`
}

// NewWordConstruction starts the activity at its first target.
func NewWordConstruction(data curriculum.WordConstruction, agg review.Aggregator) *WordConstruction {
	w := &WordConstruction{data: data, agg: agg, phase: PhaseBuilding}
	if len(data.Targets) == 0 {
		w.phase = PhaseComplete
	}
	return w
}

// Place appends a part to the current attempt.
func (w *WordConstruction) Place(part string) error {
	if w.phase != PhaseBuilding {
		return transitionErr("place", w.phase)
	}
	if !slices.Contains(w.data.AllParts, part) {
		return fmt.Errorf("place %q: %w", part, ErrUnknownPart)
	}
	if slices.Contains(w.placed, part) {
		return fmt.Errorf("place %q: %w", part, ErrDuplicatePart)
	}
	w.placed = append(w.placed, part)
	return nil
}

// Remove takes a placed part back.
func (w *WordConstruction) Remove(part string) error {
	if w.phase != PhaseBuilding {
		return transitionErr("remove", w.phase)
	}
	i := slices.Index(w.placed, part)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", part, ErrUnknownPart)
	}
	w.placed = slices.Delete(w.placed, i, i+1)
	return nil
}

// Clear removes every placed part.
func (w *WordConstruction) Clear() error {
	if w.phase != PhaseBuilding {
		return transitionErr("clear", w.phase)
	}
	w.placed = nil
	return nil
}

// Check compares the placed parts with the target. A correct answer sets the
// rule flag of the target word.
func (w *WordConstruction) Check() (Verdict, error) {
	if w.phase != PhaseBuilding {
		return VerdictNone, transitionErr("check", w.phase)
	}
	t := w.data.Targets[w.target]

	w.phase = PhaseChecked
	w.result = verdictOf(sameSet(w.placed, t.Parts))
	if w.result == VerdictCorrect && w.agg != nil {
		w.agg.SetFlag(t.Word(), review.FlagRule, true)
	}
	return w.result, nil
}

// Retry returns to Building with an empty attempt after an incorrect check.
func (w *WordConstruction) Retry() error {
	if w.phase != PhaseChecked || w.result != VerdictIncorrect {
		return transitionErr("retry", w.phase)
	}
	w.phase = PhaseBuilding
	w.placed = nil
	w.result = VerdictNone
	return nil
}

// Advance moves past a correctly built target.
func (w *WordConstruction) Advance() error {
	if w.phase != PhaseChecked || w.result != VerdictCorrect {
		return transitionErr("advance", w.phase)
	}
	w.placed = nil
	w.result = VerdictNone
	if w.target == len(w.data.Targets)-1 {
		w.phase = PhaseComplete
		return nil
	}
	w.target++
	w.phase = PhaseBuilding
	return nil
}

// Complete reports whether every target has been built.
func (w *WordConstruction) Complete() bool {
	return w.phase == PhaseComplete
}

// State returns a snapshot of the machine.
func (w *WordConstruction) State() ConstructionState {
	s := ConstructionState{
		Phase:       w.phase,
		TargetIndex: w.target,
		Targets:     len(w.data.Targets),
		AllParts:    slices.Clone(w.data.AllParts),
		Placed:      slices.Clone(w.placed),
		Verdict:     w.result,
	}
	if w.phase != PhaseComplete {
		t := w.data.Targets[w.target]
		s.Definition = t.Definition
		if w.result == VerdictCorrect {
			s.Word = t.Word()
		}
	}
	return s
}

// sameSet reports whether a and b hold the same elements. Both sides are
// duplicate-free: placements reject repeats and curricula are validated.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range b {
		if !slices.Contains(a, x) {
			return false
		}
	}
	return true
}
