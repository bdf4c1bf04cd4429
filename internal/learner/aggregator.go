package learner

import (
	"github.com/p-n-ai/word-forge/internal/events"
	"github.com/p-n-ai/word-forge/internal/review"
)

// recordingAggregator forwards mastery signals to the session's tracker and
// logs an event the first time a flag is set on a term. It is only called
// from activity machines while the session lock is held.
type recordingAggregator struct {
	tracker *review.Tracker
	engine  *Engine
	session *session
}

var _ review.Aggregator = (*recordingAggregator)(nil)

func (a *recordingAggregator) EnsureTerms(terms []string) {
	a.tracker.EnsureTerms(terms)
}

func (a *recordingAggregator) SetFlag(term string, flag review.Flag, value bool) {
	before, _ := a.tracker.Get(term)
	a.tracker.SetFlag(term, flag, value)

	if value && !before.Has(flag) {
		a.engine.logEvent(a.session, events.TypeMasteryFlagSet, map[string]any{
			"term": term,
			"flag": string(flag),
		})
	}
}
