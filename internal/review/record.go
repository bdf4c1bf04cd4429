// Package review tracks per-term mastery across weeks. Each term seen by a
// learner gets one record with three monotonic flags: rule, relate and test.
package review

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Flag names one of the three mastery dimensions.
type Flag string

const (
	// FlagRule is set by morphological construction.
	FlagRule Flag = "rule"
	// FlagRelate is set by contextual categorization.
	FlagRelate Flag = "relate"
	// FlagTest is set by assessment-style recall.
	FlagTest Flag = "test"
)

// Flags lists every flag in display order.
var Flags = []Flag{FlagRule, FlagRelate, FlagTest}

// ParseFlag converts a flag name to a Flag.
func ParseFlag(s string) (Flag, error) {
	switch f := Flag(strings.ToLower(strings.TrimSpace(s))); f {
	case FlagRule, FlagRelate, FlagTest:
		return f, nil
	}
	return "", fmt.Errorf("unknown mastery flag %q", s)
}

// Record is the mastery state of one term.
type Record struct {
	Term   string `json:"term"`
	Rule   bool   `json:"rule"`
	Relate bool   `json:"relate"`
	Test   bool   `json:"test"`
}

// Has reports whether flag f is set.
func (r Record) Has(f Flag) bool {
	switch f {
	case FlagRule:
		return r.Rule
	case FlagRelate:
		return r.Relate
	case FlagTest:
		return r.Test
	}
	return false
}

// Mastered reports whether all three flags are set.
func (r Record) Mastered() bool {
	return r.Rule && r.Relate && r.Test
}

// merge ORs the flags of other into r.
func (r *Record) merge(other Record) {
	r.Rule = r.Rule || other.Rule
	r.Relate = r.Relate || other.Relate
	r.Test = r.Test || other.Test
}

func (r *Record) set(f Flag) {
	switch f {
	case FlagRule:
		r.Rule = true
	case FlagRelate:
		r.Relate = true
	case FlagTest:
		r.Test = true
	}
}

// Key returns the case-insensitive identity of a term.
// A cases.Caser is stateful, so a fresh one is made per call.
func Key(term string) string {
	return cases.Fold().String(strings.TrimSpace(term))
}
