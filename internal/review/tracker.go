package review

import "sync"

// Aggregator receives mastery signals from activities.
type Aggregator interface {
	// EnsureTerms adds an all-false record for every term not yet tracked.
	EnsureTerms(terms []string)
	// SetFlag sets a flag on a term, creating the record if needed.
	SetFlag(term string, flag Flag, value bool)
}

// Stats summarizes a tracker.
type Stats struct {
	Total    int `json:"total"`
	Rule     int `json:"rule"`
	Relate   int `json:"relate"`
	Test     int `json:"test"`
	Mastered int `json:"mastered"`
}

// Tracker is the in-memory Aggregator. Records keep first-seen order and the
// spelling of the first encounter. Flags never go from true to false.
type Tracker struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int
}

var _ Aggregator = (*Tracker)(nil)

// NewTracker restores a tracker from saved records. Records that share a
// case-insensitive key are merged.
func NewTracker(saved []Record) *Tracker {
	t := &Tracker{index: make(map[string]int)}
	for _, r := range saved {
		if i, ok := t.lookup(r.Term); ok {
			t.records[i].merge(r)
			continue
		}
		t.add(r)
	}
	return t
}

// EnsureTerms implements Aggregator.
func (t *Tracker) EnsureTerms(terms []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, term := range terms {
		if _, ok := t.lookup(term); ok {
			continue
		}
		t.add(Record{Term: term})
	}
}

// SetFlag implements Aggregator. A false value never clears a flag that is
// already set; it only makes sure the record exists.
func (t *Tracker) SetFlag(term string, flag Flag, value bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.lookup(term)
	if !ok {
		i, ok = t.add(Record{Term: term})
		if !ok {
			return
		}
	}
	if value {
		t.records[i].set(flag)
	}
}

// Get returns the record for term.
func (t *Tracker) Get(term string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.lookup(term)
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// Records returns a copy of all records in first-seen order.
func (t *Tracker) Records() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of tracked terms.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Stats counts records per flag.
func (t *Tracker) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Stats{Total: len(t.records)}
	for _, r := range t.records {
		if r.Rule {
			s.Rule++
		}
		if r.Relate {
			s.Relate++
		}
		if r.Test {
			s.Test++
		}
		if r.Mastered() {
			s.Mastered++
		}
	}
	return s
}

func (t *Tracker) lookup(term string) (int, bool) {
	i, ok := t.index[Key(term)]
	return i, ok
}

// add appends r unless its term is blank.
func (t *Tracker) add(r Record) (int, bool) {
	key := Key(r.Term)
	if key == "" {
		return 0, false
	}
	t.records = append(t.records, r)
	t.index[key] = len(t.records) - 1
	return len(t.records) - 1, true
}
