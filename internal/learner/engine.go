// Package learner orchestrates learner sessions: the current week, the L1
// support toggle, review tracking, the week's activities and the daily
// recall quiz. Every change is saved best-effort through a progress.Store.
package learner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/p-n-ai/word-forge/internal/activity"
	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/events"
	"github.com/p-n-ai/word-forge/internal/progress"
	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/review"
)

const defaultRecallQuestions = 3

var (
	// ErrSessionNotFound is returned for an unknown learner session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoRecall is returned for a recall action when no quiz is open.
	ErrNoRecall = errors.New("no recall quiz open")
)

// EngineConfig holds dependencies for the learner engine.
type EngineConfig struct {
	Curriculum      *curriculum.Curriculum
	Store           progress.Store
	Events          events.Logger
	Source          quiz.Source // random source for shuffling (default: process-wide)
	RecallQuestions int         // questions per daily recall (default 3)
}

// Engine manages live learner sessions.
type Engine struct {
	curriculum      *curriculum.Curriculum
	store           progress.Store
	events          events.Logger
	src             quiz.Source
	gen             *quiz.Generator
	recallQuestions int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewEngine creates a new learner engine.
func NewEngine(cfg EngineConfig) *Engine {
	store := cfg.Store
	if store == nil {
		store = progress.NewMemoryStore()
	}
	logger := cfg.Events
	if logger == nil {
		logger = events.NopLogger{}
	}
	recall := cfg.RecallQuestions
	if recall == 0 {
		recall = defaultRecallQuestions
	}
	return &Engine{
		curriculum:      cfg.Curriculum,
		store:           store,
		events:          logger,
		src:             cfg.Source,
		gen:             quiz.NewGenerator(cfg.Source),
		recallQuestions: recall,
		sessions:        make(map[string]*session),
	}
}

// Curriculum returns the curriculum the engine serves.
func (e *Engine) Curriculum() *curriculum.Curriculum {
	return e.curriculum
}

// View is the observable state of a learner session.
type View struct {
	LearnerID     string                `json:"learnerId"`
	CurrentWeek   int                   `json:"currentWeek"`
	ShowL1Support bool                  `json:"showL1Support"`
	Activities    activity.Snapshot     `json:"activities"`
	Recall        *activity.RecallState `json:"recall,omitempty"`
	Review        review.Stats          `json:"review"`
}

// session is one learner's live state. All fields are guarded by mu.
type session struct {
	mu         sync.Mutex
	id         string
	week       int
	showL1     bool
	tracker    *review.Tracker
	activities *activity.Session
	recall     *activity.DailyRecall
}

// Start opens a session for learnerID, restoring saved state. An empty id
// starts a new learner. Starting an already open session returns it as is.
func (e *Engine) Start(ctx context.Context, learnerID string) (View, error) {
	if learnerID == "" {
		learnerID = uuid.NewString()
	}

	e.mu.Lock()
	s, ok := e.sessions[learnerID]
	e.mu.Unlock()
	if ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		return e.view(s), nil
	}

	st, err := e.store.Load(ctx, learnerID)
	if err != nil {
		slog.Warn("loading learner state failed, using defaults", "learner_id", learnerID, "error", err)
		st = progress.DefaultState()
	}

	week := st.CurrentWeek
	if _, ok := e.curriculum.Week(week); !ok {
		slog.Warn("stored week not in curriculum", "learner_id", learnerID, "week", week)
		week = e.curriculum.First()
	}

	s = &session{
		id:      learnerID,
		week:    week,
		showL1:  st.ShowL1Support,
		tracker: review.NewTracker(st.ReviewItems),
	}

	e.mu.Lock()
	if existing, ok := e.sessions[learnerID]; ok {
		// Lost a race with a concurrent Start.
		s = existing
	} else {
		e.sessions[learnerID] = s
	}
	e.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activities == nil {
		e.enterWeek(s)
		e.logEvent(s, events.TypeSessionStarted, nil)
		e.save(ctx, s)
		slog.Info("learner session started", "learner_id", s.id, "week", s.week)
	}
	return e.view(s), nil
}

// Get returns the current view of a session.
func (e *Engine) Get(learnerID string) (View, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.view(s), nil
}

// SwitchWeek makes week the active week. Review records gain the new
// week's terms; activities restart and any open recall quiz is closed.
func (e *Engine) SwitchWeek(ctx context.Context, learnerID string, week int) (View, error) {
	if _, ok := e.curriculum.Week(week); !ok {
		return View{}, fmt.Errorf("week %d: %w", week, curriculum.ErrWeekNotFound)
	}
	s, err := e.session(learnerID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.week
	s.week = week
	e.enterWeek(s)
	e.logEvent(s, events.TypeWeekSwitched, map[string]any{"from": from, "to": week})
	e.save(ctx, s)
	return e.view(s), nil
}

// SetL1Support turns L1 support text on or off.
func (e *Engine) SetL1Support(ctx context.Context, learnerID string, on bool) (View, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.showL1 = on
	e.save(ctx, s)
	return e.view(s), nil
}

// Week returns the learner's current week, with L1 text removed unless the
// learner has L1 support on.
func (e *Engine) Week(learnerID string) (curriculum.Week, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return curriculum.Week{}, err
	}

	s.mu.Lock()
	week, showL1 := s.week, s.showL1
	s.mu.Unlock()

	w, ok := e.curriculum.Week(week)
	if !ok {
		return curriculum.Week{}, fmt.Errorf("week %d: %w", week, curriculum.ErrWeekNotFound)
	}
	if !showL1 {
		w = w.WithoutL1()
	}
	return w, nil
}

// OpenRecall generates a fresh daily recall quiz from every week up to the
// current one, replacing any quiz already open.
func (e *Engine) OpenRecall(ctx context.Context, learnerID string) (View, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := e.curriculum.Cumulative(s.week)
	s.recall = activity.NewDailyRecall(e.gen.MCQ(pool, e.recallQuestions))
	slog.Debug("recall opened", "learner_id", s.id, "pool", len(pool), "questions", s.recall.Len())
	return e.view(s), nil
}

// Apply routes one action to the week's activities or the recall quiz.
func (e *Engine) Apply(ctx context.Context, learnerID string, a activity.Action) (activity.Outcome, View, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return activity.Outcome{}, View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out activity.Outcome
	if a.Activity == activity.KindRecall {
		out, err = e.applyRecall(s, a)
	} else {
		out, err = s.activities.Apply(a)
	}
	if err != nil {
		slog.Debug("action rejected", "learner_id", s.id, "activity", a.Activity, "op", a.Op, "error", err)
		return activity.Outcome{}, e.view(s), err
	}

	if out.Completed {
		e.logEvent(s, events.TypeActivityCompleted, map[string]any{"activity": string(a.Activity)})
	}
	e.save(ctx, s)
	return out, e.view(s), nil
}

// Review returns the learner's review records and their summary.
func (e *Engine) Review(learnerID string) ([]review.Record, review.Stats, error) {
	s, err := e.session(learnerID)
	if err != nil {
		return nil, review.Stats{}, err
	}
	return s.tracker.Records(), s.tracker.Stats(), nil
}

// Close drops a session from memory. Its state stays in the store.
func (e *Engine) Close(learnerID string) {
	e.mu.Lock()
	delete(e.sessions, learnerID)
	e.mu.Unlock()
}

func (e *Engine) applyRecall(s *session, a activity.Action) (activity.Outcome, error) {
	if s.recall == nil {
		return activity.Outcome{}, ErrNoRecall
	}
	switch a.Op {
	case activity.OpAnswer:
		ok, err := s.recall.Answer(a.Value)
		return activity.Outcome{Graded: err == nil, Correct: ok}, err
	case activity.OpNext:
		if err := s.recall.Next(); err != nil {
			return activity.Outcome{}, err
		}
		if s.recall.Finished() {
			e.logEvent(s, events.TypeRecallFinished, map[string]any{
				"score":     s.recall.Score(),
				"questions": s.recall.Len(),
			})
		}
		return activity.Outcome{}, nil
	}
	return activity.Outcome{}, fmt.Errorf("recall %q: %w", a.Op, activity.ErrUnknownOp)
}

// enterWeek syncs review records with the week's terms and restarts its
// activities. Caller holds s.mu.
func (e *Engine) enterWeek(s *session) {
	s.tracker.EnsureTerms(e.curriculum.ReviewTerms(s.week))
	w, _ := e.curriculum.Week(s.week)
	agg := &recordingAggregator{tracker: s.tracker, engine: e, session: s}
	s.activities = activity.NewSession(w, agg, e.src)
	s.recall = nil
}

// save persists the session. Failures are logged and not retried: the
// in-memory state stays authoritative. Caller holds s.mu.
func (e *Engine) save(ctx context.Context, s *session) {
	st := progress.State{
		CurrentWeek:   s.week,
		ShowL1Support: s.showL1,
		ReviewItems:   s.tracker.Records(),
	}
	if err := e.store.Save(ctx, s.id, st); err != nil {
		slog.Warn("saving learner state failed", "learner_id", s.id, "error", err)
	}
}

func (e *Engine) logEvent(s *session, typ string, data map[string]any) {
	if err := e.events.LogEvent(events.Event{
		LearnerID: s.id,
		Week:      s.week,
		Type:      typ,
		Data:      data,
	}); err != nil {
		slog.Warn("logging event failed", "type", typ, "learner_id", s.id, "error", err)
	}
}

func (e *Engine) session(learnerID string) (*session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[learnerID]
	if !ok {
		return nil, fmt.Errorf("learner %q: %w", learnerID, ErrSessionNotFound)
	}
	return s, nil
}

// view renders a session. Caller holds s.mu.
func (e *Engine) view(s *session) View {
	v := View{
		LearnerID:     s.id,
		CurrentWeek:   s.week,
		ShowL1Support: s.showL1,
		Activities:    s.activities.Snapshot(),
		Review:        s.tracker.Stats(),
	}
	if s.recall != nil {
		st := s.recall.State()
		v.Recall = &st
	}
	return v
}
