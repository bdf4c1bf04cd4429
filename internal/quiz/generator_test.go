package quiz_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
)

const seeds = 50

func term(name string, subjects ...string) curriculum.Term {
	t := curriculum.Term{
		Term:       name,
		Definition: "definition of " + name,
	}
	for _, s := range subjects {
		t.Contexts = append(t.Contexts, curriculum.Context{
			Subject:  s,
			Sentence: "In " + s + " we " + strings.ToLower(name) + " things, then " + name + " again.",
		})
	}
	return t
}

func poolTerms(pool []curriculum.Term) []string {
	names := make([]string, len(pool))
	for i, t := range pool {
		names[i] = t.Term
	}
	return names
}

func checkOptions(t *testing.T, q quiz.Question, pool []curriculum.Term) {
	t.Helper()
	names := poolTerms(pool)

	seen := make(map[string]bool)
	for _, o := range q.Options {
		if seen[o] {
			t.Errorf("duplicate option %q in %v", o, q.Options)
		}
		seen[o] = true
		if !slices.Contains(names, o) {
			t.Errorf("option %q not drawn from the pool", o)
		}
	}
	if len(q.Options) > quiz.MaxOptions {
		t.Errorf("len(Options) = %d, want <= %d", len(q.Options), quiz.MaxOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		t.Fatalf("CorrectIndex = %d out of range for %v", q.CorrectIndex, q.Options)
	}
	if q.Options[q.CorrectIndex] != q.CorrectTerm {
		t.Errorf("Options[%d] = %q, want correct term %q", q.CorrectIndex, q.Options[q.CorrectIndex], q.CorrectTerm)
	}
}

func TestMCQ_OptionIntegrity(t *testing.T) {
	pool := []curriculum.Term{
		term("Identify"), term("Rule"), term("Relate"),
		term("Instruct"), term("Test"), term("Observe"),
	}

	for seed := range uint64(seeds) {
		gen := quiz.NewGenerator(quiz.NewSeededSource(seed))
		qs := gen.MCQ(pool, 4)
		if len(qs) != 4 {
			t.Fatalf("seed %d: len(MCQ) = %d, want 4", seed, len(qs))
		}
		for _, q := range qs {
			if q.Kind != quiz.KindMCQ {
				t.Errorf("Kind = %q, want MCQ", q.Kind)
			}
			if len(q.Options) != 4 {
				t.Errorf("len(Options) = %d, want 4", len(q.Options))
			}
			checkOptions(t, q, pool)
			if !strings.Contains(q.Prompt, "definition of "+q.CorrectTerm) {
				t.Errorf("Prompt %q does not embed the definition of %q", q.Prompt, q.CorrectTerm)
			}
			if !strings.HasPrefix(q.PromptL1, "Perkataan mana yang bermaksud") {
				t.Errorf("PromptL1 = %q", q.PromptL1)
			}
		}
	}
}

func TestMCQ_DuplicateTermsInPool(t *testing.T) {
	// Cumulative pools can repeat a term across weeks.
	pool := []curriculum.Term{term("Measure"), term("Measure"), term("Infer"), term("Predict"), term("Guess")}

	for seed := range uint64(seeds) {
		gen := quiz.NewGenerator(quiz.NewSeededSource(seed))
		for _, q := range gen.MCQ(pool, 5) {
			checkOptions(t, q, pool)
		}
	}
}

func TestGenerators_SmallPools(t *testing.T) {
	tests := []struct {
		name        string
		pool        []curriculum.Term
		wantMCQ     int
		wantOptions int
	}{
		{"empty", nil, 0, 0},
		{"one", []curriculum.Term{term("Solo", "Science")}, 1, 1},
		{"two", []curriculum.Term{term("A", "Science"), term("B", "Math")}, 2, 2},
		{"three", []curriculum.Term{term("A", "Science"), term("B", "Science"), term("C", "Science")}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := quiz.NewGenerator(quiz.NewSeededSource(7))

			mcq := gen.MCQ(tt.pool, 4)
			if len(mcq) != tt.wantMCQ {
				t.Fatalf("len(MCQ) = %d, want %d", len(mcq), tt.wantMCQ)
			}
			for _, q := range mcq {
				if len(q.Options) != tt.wantOptions {
					t.Errorf("len(Options) = %d, want %d", len(q.Options), tt.wantOptions)
				}
				checkOptions(t, q, tt.pool)
			}

			if got := gen.OddOneOut(tt.pool, 4); len(got) != 0 {
				t.Errorf("len(OddOneOut) = %d, want 0", len(got))
			}
			for _, q := range gen.MissingWord(tt.pool, 4) {
				checkOptions(t, q, tt.pool)
			}
		})
	}
}

func TestGenerators_NonPositiveCount(t *testing.T) {
	pool := []curriculum.Term{term("A", "S"), term("B", "S"), term("C", "S")}
	gen := quiz.NewGenerator(nil)

	if got := gen.MCQ(pool, 0); len(got) != 0 {
		t.Errorf("MCQ(pool, 0) = %d questions, want 0", len(got))
	}
	if got := gen.MissingWord(pool, -1); len(got) != 0 {
		t.Errorf("MissingWord(pool, -1) = %d questions, want 0", len(got))
	}
}

func TestOddOneOut_Validity(t *testing.T) {
	pool := []curriculum.Term{
		term("Cell", "Science"), term("Atom", "Science"), term("Energy", "Science"), term("Force", "Science"),
		term("Fraction", "Math"), term("Angle", "Math"), term("Ratio", "Math"),
		term("Empire", "History"), term("Treaty", "History"), term("Colony", "History"),
	}
	subjectOf := make(map[string]string)
	for _, t := range pool {
		subjectOf[t.Term] = t.Contexts[0].Subject
	}

	for seed := range uint64(seeds) {
		gen := quiz.NewGenerator(quiz.NewSeededSource(seed))
		qs := gen.OddOneOut(pool, 6)
		if len(qs) != 6 {
			t.Fatalf("seed %d: len(OddOneOut) = %d, want 6", seed, len(qs))
		}

		for i, q := range qs {
			checkOptions(t, q, pool)
			if len(q.Options) != 4 {
				t.Fatalf("len(Options) = %d, want 4", len(q.Options))
			}

			matches := 0
			for _, o := range q.Options {
				if o == q.CorrectTerm {
					matches++
				}
			}
			if matches != 1 {
				t.Errorf("odd term %q appears %d times", q.CorrectTerm, matches)
			}

			var others []string
			for j, o := range q.Options {
				if j != q.CorrectIndex {
					others = append(others, subjectOf[o])
				}
			}
			shared := others[0]
			for _, s := range others {
				if s != shared {
					t.Errorf("non-odd options span subjects %v", others)
				}
			}
			if subjectOf[q.CorrectTerm] == shared {
				t.Errorf("odd term %q shares subject %q with the others", q.CorrectTerm, shared)
			}

			// Round robin: question i uses subject i as main, i+1 as odd.
			subjects := []string{"Science", "Math", "History"}
			if shared != subjects[i%3] || subjectOf[q.CorrectTerm] != subjects[(i+1)%3] {
				t.Errorf("question %d pairs %s/%s, want %s/%s", i, shared, subjectOf[q.CorrectTerm], subjects[i%3], subjects[(i+1)%3])
			}
			if !strings.Contains(q.Explanation, shared) || !strings.Contains(q.Explanation, subjectOf[q.CorrectTerm]) {
				t.Errorf("Explanation %q should name both subjects", q.Explanation)
			}
		}
	}
}

func TestOddOneOut_InsufficientSubjects(t *testing.T) {
	// Science qualifies (4 >= 3) but Math does not (2 < 3).
	pool := []curriculum.Term{
		term("Cell", "Science"), term("Atom", "Science"), term("Energy", "Science"), term("Force", "Science"),
		term("Fraction", "Math"), term("Angle", "Math"),
	}

	gen := quiz.NewGenerator(quiz.NewSeededSource(1))
	if got := gen.OddOneOut(pool, 1); len(got) != 0 {
		t.Errorf("len(OddOneOut) = %d, want 0", len(got))
	}
}

func TestOddOneOut_OverlappingSubjects(t *testing.T) {
	// Every term carries both subjects, so no odd term exists.
	c, err := curriculum.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	w, _ := c.Week(1)

	gen := quiz.NewGenerator(quiz.NewSeededSource(3))
	if got := gen.OddOneOut(w.Vocabulary, 4); len(got) != 0 {
		t.Errorf("len(OddOneOut) = %d, want 0 when subjects fully overlap", len(got))
	}
}

func TestMissingWord_Cloze(t *testing.T) {
	pool := []curriculum.Term{
		term("Observe", "Science"), term("Measure", "Math"), term("Predict", "Science"),
		term("Infer", "Science"), {Term: "Bare", Definition: "no contexts"},
	}

	for seed := range uint64(seeds) {
		gen := quiz.NewGenerator(quiz.NewSeededSource(seed))
		qs := gen.MissingWord(pool, len(pool))
		if len(qs) != 4 {
			t.Fatalf("seed %d: len(MissingWord) = %d, want 4 (Bare has no context)", seed, len(qs))
		}
		for _, q := range qs {
			checkOptions(t, q, pool)

			cloze, ok := quiz.Cloze(q.Sentence, q.CorrectTerm)
			if !ok {
				t.Fatalf("term %q not found in %q", q.CorrectTerm, q.Sentence)
			}
			if !strings.Contains(q.Prompt, cloze) {
				t.Errorf("Prompt %q does not contain cloze %q", q.Prompt, cloze)
			}
			restored := strings.ReplaceAll(cloze, quiz.Blank, q.CorrectTerm)
			if !strings.EqualFold(restored, q.Sentence) {
				t.Errorf("restored %q, want %q", restored, q.Sentence)
			}
		}
	}
}

func TestMissingWord_NoBackfill(t *testing.T) {
	pool := []curriculum.Term{
		term("Observe", "Science"),
		{Term: "A"}, {Term: "B"}, {Term: "C"},
	}

	for seed := range uint64(seeds) {
		gen := quiz.NewGenerator(quiz.NewSeededSource(seed))
		if got := gen.MissingWord(pool, 1); len(got) > 1 {
			t.Fatalf("len(MissingWord) = %d, want <= 1", len(got))
		}
	}
}

func TestCloze(t *testing.T) {
	tests := []struct {
		sentence string
		term     string
		want     string
		wantOK   bool
	}{
		{"Observe the pattern.", "Observe", "________ the pattern.", true},
		{"We will test the test.", "Test", "We will ________ the ________.", true},
		{"Follow the order (BODMAS).", "BODMAS", "Follow the order (________).", true},
		{"Nothing here.", "Infer", "Nothing here.", false},
		{"Anything", "", "Anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, ok := quiz.Cloze(tt.sentence, tt.term)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Cloze(%q, %q) = %q, %v; want %q, %v", tt.sentence, tt.term, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestShuffle_Permutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := quiz.Shuffle(quiz.NewSeededSource(9), in)

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	sorted := slices.Clone(out)
	slices.Sort(sorted)
	if !slices.Equal(sorted, in) {
		t.Errorf("Shuffle() = %v is not a permutation of %v", out, in)
	}
	if !slices.Equal(in, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Error("Shuffle() modified its input")
	}
}

func TestShuffle_Reproducible(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	a := quiz.Shuffle(quiz.NewSeededSource(42), in)
	b := quiz.Shuffle(quiz.NewSeededSource(42), in)
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}
