package activity

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

// MorphologyLab lets the learner explore the example words built from the
// week's root. Exploring any example completes it.
type MorphologyLab struct {
	data     curriculum.Morphology
	selected int
	explored bool
}

// MorphologyState is a read-only view of a MorphologyLab.
type MorphologyState struct {
	Phase    Phase                         `json:"phase"`
	Root     curriculum.Morpheme           `json:"root"`
	Prefixes []curriculum.Morpheme         `json:"prefixes"`
	Suffixes []curriculum.Suffix           `json:"suffixes"`
	Words    []string                      `json:"words"`
	Selected *curriculum.MorphologyExample `json:"selected,omitempty"`
}

// NewMorphologyLab starts with nothing selected.
func NewMorphologyLab(data curriculum.Morphology) *MorphologyLab {
	return &MorphologyLab{data: data, selected: -1}
}

// Explore selects an example word and reveals its definition.
func (m *MorphologyLab) Explore(word string) (curriculum.MorphologyExample, error) {
	i := slices.IndexFunc(m.data.Examples, func(e curriculum.MorphologyExample) bool { return e.Word == word })
	if i < 0 {
		return curriculum.MorphologyExample{}, fmt.Errorf("explore %q: %w", word, ErrUnknownWord)
	}
	m.selected = i
	m.explored = true
	return m.data.Examples[i], nil
}

// Complete reports whether any example has been explored.
func (m *MorphologyLab) Complete() bool {
	return m.explored
}

// State returns a snapshot of the lab.
func (m *MorphologyLab) State() MorphologyState {
	s := MorphologyState{
		Phase:    PhaseExploring,
		Root:     m.data.Root,
		Prefixes: slices.Clone(m.data.Prefixes),
		Suffixes: slices.Clone(m.data.Suffixes),
	}
	if m.explored {
		s.Phase = PhaseComplete
	}
	for _, e := range m.data.Examples {
		s.Words = append(s.Words, e.Word)
	}
	if m.selected >= 0 {
		e := m.data.Examples[m.selected]
		s.Selected = &e
	}
	return s
}
