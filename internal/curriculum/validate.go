package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks the structural invariants of a week's data.
// All violations are reported together.
func (w Week) Validate() error {
	var errs []error

	if w.Week < 1 {
		errs = append(errs, fmt.Errorf("week number must be >= 1, got %d", w.Week))
	}

	seen := make(map[string]bool, len(w.Vocabulary))
	for _, t := range w.Vocabulary {
		if strings.TrimSpace(t.Term) == "" {
			errs = append(errs, fmt.Errorf("week %d: vocabulary term is empty", w.Week))
			continue
		}
		if seen[t.Term] {
			errs = append(errs, fmt.Errorf("week %d: duplicate term %q", w.Week, t.Term))
		}
		seen[t.Term] = true
	}

	if wc := w.Activities.WordConstruction; wc != nil {
		for i, target := range wc.Targets {
			if len(target.Parts) == 0 {
				errs = append(errs, fmt.Errorf("week %d: construction target %d has no parts", w.Week, i))
			}
			for _, p := range target.Parts {
				if !slices.Contains(wc.AllParts, p) {
					errs = append(errs, fmt.Errorf("week %d: construction target %d part %q not in all_parts", w.Week, i, p))
				}
			}
			if hasDuplicates(target.Parts) {
				errs = append(errs, fmt.Errorf("week %d: construction target %d repeats a part", w.Week, i))
			}
		}
	}

	if ooo := w.Activities.OddOneOut; ooo != nil {
		for i, set := range ooo.Sets {
			if len(set.Words) != 4 {
				errs = append(errs, fmt.Errorf("week %d: odd-one-out set %d has %d words, want 4", w.Week, i, len(set.Words)))
			}
			if !slices.Contains(set.Words, set.OddOneOut) {
				errs = append(errs, fmt.Errorf("week %d: odd-one-out set %d answer %q not among its words", w.Week, i, set.OddOneOut))
			}
		}
	}

	if ws := w.Activities.WordSort; ws != nil {
		for _, word := range ws.Words {
			if !slices.Contains(ws.Categories, word.Category) {
				errs = append(errs, fmt.Errorf("week %d: sort word %q has unknown category %q", w.Week, word.Text, word.Category))
			}
		}
	}

	if a := w.Activities.Analogy; a != nil {
		if a.CorrectAnswer == "" {
			errs = append(errs, fmt.Errorf("week %d: analogy has no correct answer", w.Week))
		}
		if slices.Contains(a.Distractors, a.CorrectAnswer) {
			errs = append(errs, fmt.Errorf("week %d: analogy distractors include the correct answer", w.Week))
		}
	}

	return errors.Join(errs...)
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			return true
		}
		seen[it] = true
	}
	return false
}
