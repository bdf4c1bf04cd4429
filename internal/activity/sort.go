package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/review"
)

// WordSort collects placements (Sorting) until every word has one (Ready),
// then checks them all at once (Checked). Each correct placement sets the
// word's relate flag immediately. An incorrect check can be Reset back to
// an empty Sorting phase; a correct one is final.
type WordSort struct {
	data       curriculum.WordSort
	agg        review.Aggregator
	phase      Phase
	placements map[string]string
	result     Verdict
}

// SortState is a read-only view of a WordSort.
type SortState struct {
	Phase      Phase             `json:"phase"`
	Categories []string          `json:"categories"`
	Words      []string          `json:"words"`
	Placements map[string]string `json:"placements"`
	Verdict    Verdict           `json:"verdict,omitempty"`
}

// NewWordSort starts with no placements.
func NewWordSort(data curriculum.WordSort, agg review.Aggregator) *WordSort {
	return &WordSort{
		data:       data,
		agg:        agg,
		phase:      PhaseSorting,
		placements: make(map[string]string),
	}
}

// Place puts word into category, replacing any earlier placement, and
// reports whether that matches the word's canonical category.
func (s *WordSort) Place(word, category string) (bool, error) {
	if s.phase != PhaseSorting && s.phase != PhaseReady {
		return false, transitionErr("place", s.phase)
	}
	i := slices.IndexFunc(s.data.Words, func(w curriculum.SortWord) bool { return w.Text == word })
	if i < 0 {
		return false, fmt.Errorf("place %q: %w", word, ErrUnknownWord)
	}
	if !slices.Contains(s.data.Categories, category) {
		return false, fmt.Errorf("place %q in %q: %w", word, category, ErrUnknownCategory)
	}

	s.placements[word] = category
	if s.allPlaced() {
		s.phase = PhaseReady
	}

	correct := s.data.Words[i].Category == category
	if correct && s.agg != nil {
		s.agg.SetFlag(word, review.FlagRelate, true)
	}
	return correct, nil
}

// Check grades every placement. It is only legal once all words are placed.
func (s *WordSort) Check() (Verdict, error) {
	if s.phase != PhaseReady {
		return VerdictNone, transitionErr("check", s.phase)
	}
	ok := true
	for _, w := range s.data.Words {
		if s.placements[w.Text] != w.Category {
			ok = false
			break
		}
	}
	s.phase = PhaseChecked
	s.result = verdictOf(ok)
	return s.result, nil
}

// Reset clears every placement after an incorrect check.
func (s *WordSort) Reset() error {
	if s.phase != PhaseChecked || s.result != VerdictIncorrect {
		return transitionErr("reset", s.phase)
	}
	clear(s.placements)
	s.phase = PhaseSorting
	s.result = VerdictNone
	return nil
}

// Complete reports whether the sort was checked correct.
func (s *WordSort) Complete() bool {
	return s.phase == PhaseChecked && s.result == VerdictCorrect
}

// State returns a snapshot of the machine.
func (s *WordSort) State() SortState {
	words := make([]string, len(s.data.Words))
	for i, w := range s.data.Words {
		words[i] = w.Text
	}
	placements := make(map[string]string, len(s.placements))
	for k, v := range s.placements {
		placements[k] = v
	}
	return SortState{
		Phase:      s.phase,
		Categories: slices.Clone(s.data.Categories),
		Words:      words,
		Placements: placements,
		Verdict:    s.result,
	}
}

func (s *WordSort) allPlaced() bool {
	for _, w := range s.data.Words {
		if _, ok := s.placements[w.Text]; !ok {
			return false
		}
	}
	return true
}
