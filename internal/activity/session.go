package activity

import (
	"fmt"
	"math"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/review"
)

// Kind names an activity in an Action.
type Kind string

const (
	KindMorphology   Kind = "morphology"
	KindConstruction Kind = "construction"
	KindOddOneOut    Kind = "oddOneOut"
	KindSort         Kind = "sort"
	KindAnalogy      Kind = "analogy"
	KindRecall       Kind = "recall"
)

// Operations accepted in an Action. Restart applies to every week activity.
const (
	OpExplore = "explore"
	OpPlace   = "place"
	OpRemove  = "remove"
	OpClear   = "clear"
	OpCheck   = "check"
	OpRetry   = "retry"
	OpAdvance = "advance"
	OpSelect  = "select"
	OpNext    = "next"
	OpReset   = "reset"
	OpAnswer  = "answer"
	OpRestart = "restart"
)

// Action is one learner input addressed to an activity.
type Action struct {
	Activity Kind   `json:"activity"`
	Op       string `json:"op"`
	Value    string `json:"value,omitempty"`
	Category string `json:"category,omitempty"`
}

// Outcome describes the effect of an applied action.
type Outcome struct {
	// Graded is true when the action produced a right/wrong answer.
	Graded  bool `json:"graded"`
	Correct bool `json:"correct"`
	// Completed is true when this action completed the activity for the
	// first time in the session.
	Completed bool `json:"completed"`
}

// Progress holds the one-time completion flags of a week.
type Progress struct {
	Morphology   bool `json:"morphology"`
	Construction bool `json:"construction"`
	OddOneOut    bool `json:"oddOneOut"`
	Sort         bool `json:"sort"`
	Analogy      bool `json:"analogy"`
}

// Completion is the completed share of the activities a week defines.
type Completion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Snapshot is the full observable state of a session.
type Snapshot struct {
	Week         int                `json:"week"`
	Title        string             `json:"title"`
	Progress     Progress           `json:"progress"`
	Completion   Completion         `json:"completion"`
	Morphology   *MorphologyState   `json:"morphology,omitempty"`
	Construction *ConstructionState `json:"construction,omitempty"`
	OddOneOut    *OddOneOutState    `json:"oddOneOut,omitempty"`
	Sort         *SortState         `json:"sort,omitempty"`
	Analogy      *AnalogyState      `json:"analogy,omitempty"`
}

// Session owns the activity machines of one week. Machines exist only for
// activities the week defines; a nil machine is excluded from completion.
// A Session is not safe for concurrent use.
type Session struct {
	week curriculum.Week
	agg  review.Aggregator
	src  quiz.Source

	morphology   *MorphologyLab
	construction *WordConstruction
	oddOneOut    *OddOneOut
	sort         *WordSort
	analogy      *Analogy

	progress Progress
}

// NewSession creates fresh machines for week. Mastery signals go to agg and
// analogy options are shuffled with src.
func NewSession(week curriculum.Week, agg review.Aggregator, src quiz.Source) *Session {
	s := &Session{week: week, agg: agg, src: src}
	for _, k := range []Kind{KindMorphology, KindConstruction, KindOddOneOut, KindSort, KindAnalogy} {
		s.restart(k)
	}
	return s
}

// Week returns the week number of the session.
func (s *Session) Week() int {
	return s.week.Week
}

// Available lists the activities the week defines.
func (s *Session) Available() []Kind {
	var kinds []Kind
	if s.morphology != nil {
		kinds = append(kinds, KindMorphology)
	}
	if s.construction != nil {
		kinds = append(kinds, KindConstruction)
	}
	if s.oddOneOut != nil {
		kinds = append(kinds, KindOddOneOut)
	}
	if s.sort != nil {
		kinds = append(kinds, KindSort)
	}
	if s.analogy != nil {
		kinds = append(kinds, KindAnalogy)
	}
	return kinds
}

// Progress returns the completion flags.
func (s *Session) Progress() Progress {
	return s.progress
}

// Completion computes completed / available activities.
func (s *Session) Completion() Completion {
	var c Completion
	for _, k := range s.Available() {
		c.Total++
		if s.done(k) {
			c.Completed++
		}
	}
	if c.Total > 0 {
		c.Percent = int(math.Round(float64(c.Completed) * 100 / float64(c.Total)))
	}
	return c
}

// Apply routes an action to its machine.
func (s *Session) Apply(a Action) (Outcome, error) {
	var (
		out Outcome
		err error
	)

	switch a.Activity {
	case KindMorphology:
		out, err = s.applyMorphology(a)
	case KindConstruction:
		out, err = s.applyConstruction(a)
	case KindOddOneOut:
		out, err = s.applyOddOneOut(a)
	case KindSort:
		out, err = s.applySort(a)
	case KindAnalogy:
		out, err = s.applyAnalogy(a)
	default:
		return Outcome{}, fmt.Errorf("activity %q: %w", a.Activity, ErrUnavailable)
	}
	if err != nil {
		return Outcome{}, err
	}

	out.Completed = s.markProgress(a.Activity)
	return out, nil
}

// Snapshot returns the state of every available machine.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Week:       s.week.Week,
		Title:      s.week.Title,
		Progress:   s.progress,
		Completion: s.Completion(),
	}
	if s.morphology != nil {
		st := s.morphology.State()
		snap.Morphology = &st
	}
	if s.construction != nil {
		st := s.construction.State()
		snap.Construction = &st
	}
	if s.oddOneOut != nil {
		st := s.oddOneOut.State()
		snap.OddOneOut = &st
	}
	if s.sort != nil {
		st := s.sort.State()
		snap.Sort = &st
	}
	if s.analogy != nil {
		st := s.analogy.State()
		snap.Analogy = &st
	}
	return snap
}

func (s *Session) applyMorphology(a Action) (Outcome, error) {
	if s.morphology == nil {
		return Outcome{}, unavailable(a.Activity)
	}
	switch a.Op {
	case OpExplore:
		_, err := s.morphology.Explore(a.Value)
		return Outcome{}, err
	case OpRestart:
		s.restart(KindMorphology)
		return Outcome{}, nil
	}
	return Outcome{}, unknownOp(a)
}

func (s *Session) applyConstruction(a Action) (Outcome, error) {
	w := s.construction
	if w == nil {
		return Outcome{}, unavailable(a.Activity)
	}
	switch a.Op {
	case OpPlace:
		return Outcome{}, w.Place(a.Value)
	case OpRemove:
		return Outcome{}, w.Remove(a.Value)
	case OpClear:
		return Outcome{}, w.Clear()
	case OpCheck:
		v, err := w.Check()
		return Outcome{Graded: err == nil, Correct: v == VerdictCorrect}, err
	case OpRetry:
		return Outcome{}, w.Retry()
	case OpAdvance:
		return Outcome{}, w.Advance()
	case OpRestart:
		s.restart(KindConstruction)
		return Outcome{}, nil
	}
	return Outcome{}, unknownOp(a)
}

func (s *Session) applyOddOneOut(a Action) (Outcome, error) {
	o := s.oddOneOut
	if o == nil {
		return Outcome{}, unavailable(a.Activity)
	}
	switch a.Op {
	case OpSelect:
		ok, err := o.Select(a.Value)
		return Outcome{Graded: err == nil, Correct: ok}, err
	case OpNext:
		return Outcome{}, o.Next()
	case OpRestart:
		s.restart(KindOddOneOut)
		return Outcome{}, nil
	}
	return Outcome{}, unknownOp(a)
}

func (s *Session) applySort(a Action) (Outcome, error) {
	w := s.sort
	if w == nil {
		return Outcome{}, unavailable(a.Activity)
	}
	switch a.Op {
	case OpPlace:
		ok, err := w.Place(a.Value, a.Category)
		return Outcome{Graded: err == nil, Correct: ok}, err
	case OpCheck:
		v, err := w.Check()
		return Outcome{Graded: err == nil, Correct: v == VerdictCorrect}, err
	case OpReset:
		return Outcome{}, w.Reset()
	case OpRestart:
		s.restart(KindSort)
		return Outcome{}, nil
	}
	return Outcome{}, unknownOp(a)
}

func (s *Session) applyAnalogy(a Action) (Outcome, error) {
	if s.analogy == nil {
		return Outcome{}, unavailable(a.Activity)
	}
	switch a.Op {
	case OpAnswer:
		ok, err := s.analogy.Answer(a.Value)
		return Outcome{Graded: err == nil, Correct: ok}, err
	case OpRestart:
		s.restart(KindAnalogy)
		return Outcome{}, nil
	}
	return Outcome{}, unknownOp(a)
}

// restart replaces a machine with a fresh one. Progress flags are kept.
func (s *Session) restart(k Kind) {
	acts := s.week.Activities
	switch k {
	case KindMorphology:
		if len(s.week.Morphology.Examples) > 0 {
			s.morphology = NewMorphologyLab(s.week.Morphology)
		}
	case KindConstruction:
		if acts.WordConstruction != nil && len(acts.WordConstruction.Targets) > 0 {
			s.construction = NewWordConstruction(*acts.WordConstruction, s.agg)
		}
	case KindOddOneOut:
		if acts.OddOneOut != nil && len(acts.OddOneOut.Sets) > 0 {
			s.oddOneOut = NewOddOneOut(*acts.OddOneOut)
		}
	case KindSort:
		if acts.WordSort != nil && len(acts.WordSort.Words) > 0 {
			s.sort = NewWordSort(*acts.WordSort, s.agg)
		}
	case KindAnalogy:
		if acts.Analogy != nil {
			s.analogy = NewAnalogy(*acts.Analogy, s.agg, s.src)
		}
	}
}

// markProgress sets the progress flag of k once its machine completes and
// reports whether the flag was newly set.
func (s *Session) markProgress(k Kind) bool {
	var flag *bool
	var complete bool
	switch k {
	case KindMorphology:
		flag, complete = &s.progress.Morphology, s.morphology.Complete()
	case KindConstruction:
		flag, complete = &s.progress.Construction, s.construction.Complete()
	case KindOddOneOut:
		flag, complete = &s.progress.OddOneOut, s.oddOneOut.Complete()
	case KindSort:
		flag, complete = &s.progress.Sort, s.sort.Complete()
	case KindAnalogy:
		flag, complete = &s.progress.Analogy, s.analogy.Complete()
	default:
		return false
	}
	if !complete || *flag {
		return false
	}
	*flag = true
	return true
}

func (s *Session) done(k Kind) bool {
	switch k {
	case KindMorphology:
		return s.progress.Morphology
	case KindConstruction:
		return s.progress.Construction
	case KindOddOneOut:
		return s.progress.OddOneOut
	case KindSort:
		return s.progress.Sort
	case KindAnalogy:
		return s.progress.Analogy
	}
	return false
}

func unavailable(k Kind) error {
	return fmt.Errorf("activity %q: %w", k, ErrUnavailable)
}

func unknownOp(a Action) error {
	return fmt.Errorf("%s %q: %w", a.Activity, a.Op, ErrUnknownOp)
}
