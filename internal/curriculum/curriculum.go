// Package curriculum holds the static catalog of weeks: morphology units,
// vocabulary and contextual activities.
package curriculum

import (
	"errors"
	"fmt"
	"slices"
)

// ErrWeekNotFound is returned when a week number is not in the curriculum.
var ErrWeekNotFound = errors.New("week not found")

// Curriculum is an immutable, ordered sequence of weeks.
type Curriculum struct {
	weeks []Week
	index map[int]int
}

// New validates the weeks and returns them as a curriculum ordered by week number.
func New(weeks []Week) (*Curriculum, error) {
	sorted := slices.Clone(weeks)
	slices.SortFunc(sorted, func(a, b Week) int { return a.Week - b.Week })

	c := &Curriculum{
		weeks: sorted,
		index: make(map[int]int, len(sorted)),
	}

	var errs []error
	for i, w := range sorted {
		if _, dup := c.index[w.Week]; dup {
			errs = append(errs, fmt.Errorf("duplicate week %d", w.Week))
			continue
		}
		if err := w.Validate(); err != nil {
			errs = append(errs, err)
		}
		c.index[w.Week] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid curriculum: %w", err)
	}

	return c, nil
}

// Week returns a week by number.
func (c *Curriculum) Week(n int) (Week, bool) {
	i, ok := c.index[n]
	if !ok {
		return Week{}, false
	}
	return c.weeks[i], true
}

// Weeks returns all weeks in order.
func (c *Curriculum) Weeks() []Week {
	return slices.Clone(c.weeks)
}

// Len returns the number of weeks.
func (c *Curriculum) Len() int {
	return len(c.weeks)
}

// First returns the lowest week number, or 0 for an empty curriculum.
func (c *Curriculum) First() int {
	if len(c.weeks) == 0 {
		return 0
	}
	return c.weeks[0].Week
}

// Cumulative returns the vocabulary of every week up to and including n.
func (c *Curriculum) Cumulative(n int) []Term {
	var terms []Term
	for _, w := range c.weeks {
		if w.Week > n {
			break
		}
		terms = append(terms, w.Vocabulary...)
	}
	return terms
}

// Range returns the vocabulary of weeks start through end inclusive.
// Weeks missing from the curriculum contribute nothing.
func (c *Curriculum) Range(start, end int) []Term {
	var terms []Term
	for _, w := range c.weeks {
		if w.Week >= start && w.Week <= end {
			terms = append(terms, w.Vocabulary...)
		}
	}
	return terms
}

// ReviewTerms lists the words tracked for review once week n is active:
// vocabulary terms and morphology example words of every week up to n.
// Duplicates are left in; the review tracker folds them.
func (c *Curriculum) ReviewTerms(n int) []string {
	var terms []string
	for _, w := range c.weeks {
		if w.Week > n {
			break
		}
		for _, v := range w.Vocabulary {
			terms = append(terms, v.Term)
		}
		for _, ex := range w.Morphology.Examples {
			terms = append(terms, ex.Word)
		}
	}
	return terms
}
