// Package activity implements the per-week learning activities as explicit
// state machines. Each machine validates its own transitions and reports
// mastery signals to a review.Aggregator; none of them render or persist.
package activity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// machine's current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownPart is returned when a part is not in the activity's inventory.
	ErrUnknownPart = errors.New("unknown part")
	// ErrDuplicatePart is returned when a part is placed twice.
	ErrDuplicatePart = errors.New("part already placed")
	// ErrUnknownWord is returned when a word or option is not on offer.
	ErrUnknownWord = errors.New("unknown word")
	// ErrUnknownCategory is returned when a sort category does not exist.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnavailable is returned for an activity the week does not define.
	ErrUnavailable = errors.New("activity not available")
	// ErrUnknownOp is returned for an unrecognized action.
	ErrUnknownOp = errors.New("unknown operation")
)

// Verdict is the outcome of a check.
type Verdict string

const (
	VerdictNone      Verdict = ""
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

func verdictOf(ok bool) Verdict {
	if ok {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

// Phase is the current state of a machine. Each machine documents the phases
// it uses.
type Phase string

const (
	PhaseBuilding   Phase = "building"
	PhaseChecked    Phase = "checked"
	PhasePresenting Phase = "presenting"
	PhaseRevealed   Phase = "revealed"
	PhaseSorting    Phase = "sorting"
	PhaseReady      Phase = "ready"
	PhaseUnanswered Phase = "unanswered"
	PhaseAnswered   Phase = "answered"
	PhaseAnswering  Phase = "answering"
	PhaseExploring  Phase = "exploring"
	PhaseComplete   Phase = "complete"
	PhaseFinished   Phase = "finished"
)

func transitionErr(op string, p Phase) error {
	return fmt.Errorf("%s in phase %s: %w", op, p, ErrInvalidTransition)
}
