package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/quiz"
)

// DailyRecall is a short MCQ quiz generated fresh on every open. Each
// question is answered once (Answering then Answered); Next advances until
// the quiz is Finished. It records no mastery.
type DailyRecall struct {
	questions []quiz.Question
	phase     Phase
	current   int
	choice    string
	score     int
}

// RecallState is a read-only view of a DailyRecall.
type RecallState struct {
	Phase     Phase    `json:"phase"`
	Index     int      `json:"index"`
	Questions int      `json:"questions"`
	Prompt    string   `json:"prompt,omitempty"`
	PromptL1  string   `json:"promptL1,omitempty"`
	Options   []string `json:"options,omitempty"`
	Choice    string   `json:"choice,omitempty"`
	Verdict   Verdict  `json:"verdict,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Score     int      `json:"score"`
}

// NewDailyRecall starts a quiz over the given questions.
func NewDailyRecall(questions []quiz.Question) *DailyRecall {
	r := &DailyRecall{questions: questions, phase: PhaseAnswering}
	if len(questions) == 0 {
		r.phase = PhaseFinished
	}
	return r
}

// Answer grades the choice for the current question.
func (r *DailyRecall) Answer(choice string) (bool, error) {
	if r.phase != PhaseAnswering {
		return false, transitionErr("answer", r.phase)
	}
	q := r.questions[r.current]
	if !slices.Contains(q.Options, choice) {
		return false, fmt.Errorf("answer %q: %w", choice, ErrUnknownWord)
	}

	r.phase = PhaseAnswered
	r.choice = choice
	correct := q.IsCorrect(choice)
	if correct {
		r.score++
	}
	return correct, nil
}

// Next moves to the following question or finishes the quiz.
func (r *DailyRecall) Next() error {
	if r.phase != PhaseAnswered {
		return transitionErr("next", r.phase)
	}
	r.choice = ""
	r.current++
	if r.current >= len(r.questions) {
		r.phase = PhaseFinished
		return nil
	}
	r.phase = PhaseAnswering
	return nil
}

// Finished reports whether every question has been answered.
func (r *DailyRecall) Finished() bool {
	return r.phase == PhaseFinished
}

// Score returns the number of correct answers so far.
func (r *DailyRecall) Score() int {
	return r.score
}

// Len returns the number of questions.
func (r *DailyRecall) Len() int {
	return len(r.questions)
}

// State returns a snapshot of the quiz.
func (r *DailyRecall) State() RecallState {
	s := RecallState{
		Phase:     r.phase,
		Index:     r.current,
		Questions: len(r.questions),
		Score:     r.score,
	}
	if r.phase == PhaseFinished {
		return s
	}
	q := r.questions[r.current]
	s.Prompt = q.Prompt
	s.PromptL1 = q.PromptL1
	s.Options = slices.Clone(q.Options)
	if r.phase == PhaseAnswered {
		s.Choice = r.choice
		s.Verdict = verdictOf(q.IsCorrect(r.choice))
		s.Answer = q.CorrectTerm
	}
	return s
}
