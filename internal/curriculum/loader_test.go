package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

func TestDefault(t *testing.T) {
	c, err := curriculum.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if c.Len() < 2 {
		t.Fatalf("Len() = %d, want at least 2", c.Len())
	}

	w, ok := c.Week(1)
	if !ok {
		t.Fatal("Week(1) not found")
	}
	if w.Title != "Identify & Report" {
		t.Errorf("Title = %q, want %q", w.Title, "Identify & Report")
	}
	if len(w.Vocabulary) != 6 {
		t.Errorf("len(Vocabulary) = %d, want 6", len(w.Vocabulary))
	}
	if w.Activities.WordConstruction == nil || len(w.Activities.WordConstruction.Targets) != 9 {
		t.Error("week 1 should have 9 word construction targets")
	}
	if w.Activities.Analogy == nil || w.Activities.Analogy.CreditedTerm() != "Instruct" {
		t.Error("week 1 analogy should credit Instruct")
	}

	w2, ok := c.Week(2)
	if !ok {
		t.Fatal("Week(2) not found")
	}
	if w2.Activities.WordConstruction != nil || w2.Activities.Analogy != nil {
		t.Error("week 2 should have no contextual activities")
	}
}

func TestLoadDir(t *testing.T) {
	dir := setupTestCurriculum(t)

	c, err := curriculum.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.First() != 3 {
		t.Errorf("First() = %d, want 3", c.First())
	}
}

func TestLoadDir_SkipsNotesAndInvalidYAML(t *testing.T) {
	dir := setupTestCurriculum(t)

	os.WriteFile(filepath.Join(dir, "levels", "03.notes.yaml"), []byte("week: 99\ntitle: notes\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "levels", "broken.yaml"), []byte("week: [unclosed"), 0o644)
	os.WriteFile(filepath.Join(dir, "levels", "readme.yaml"), []byte("title: not a week\n"), 0o644)

	c, err := curriculum.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Week(99); ok {
		t.Error("notes file should not be loaded as a week")
	}
}

func TestLoadDir_EmptyDir(t *testing.T) {
	c, err := curriculum.LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.First() != 0 {
		t.Errorf("First() = %d, want 0", c.First())
	}
}

func TestLoadDir_RejectsBrokenInvariants(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "01.yaml"), []byte(`
week: 1
title: Broken
vocabulary:
  - term: Infer
    definition: "To conclude from evidence."
activities:
  odd_one_out:
    sets:
      - words: [A, B, C, D]
        odd_one_out: E
`), 0o644)

	if _, err := curriculum.LoadDir(dir); err == nil {
		t.Fatal("LoadDir() should reject an odd-one-out answer outside its words")
	}
}

func TestCurriculum_Cumulative(t *testing.T) {
	c := mustDefault(t)

	if got := len(c.Cumulative(1)); got != 6 {
		t.Errorf("len(Cumulative(1)) = %d, want 6", got)
	}
	if got := len(c.Cumulative(2)); got != 8 {
		t.Errorf("len(Cumulative(2)) = %d, want 8", got)
	}
	if got := len(c.Range(2, 4)); got != 2 {
		t.Errorf("len(Range(2, 4)) = %d, want 2", got)
	}
	if got := len(c.Range(5, 8)); got != 0 {
		t.Errorf("len(Range(5, 8)) = %d, want 0", got)
	}
}

func TestCurriculum_ReviewTerms(t *testing.T) {
	c := mustDefault(t)

	terms := c.ReviewTerms(1)
	// 6 vocabulary terms + 5 morphology examples
	if len(terms) != 11 {
		t.Fatalf("len(ReviewTerms(1)) = %d, want 11", len(terms))
	}
	if terms[6] != "construction" {
		t.Errorf("terms[6] = %q, want construction", terms[6])
	}
}

func TestNew_DuplicateWeek(t *testing.T) {
	_, err := curriculum.New([]curriculum.Week{
		{Week: 1, Title: "a"},
		{Week: 1, Title: "b"},
	})
	if err == nil {
		t.Fatal("New() should reject duplicate week numbers")
	}
}

func TestWeek_NotFound(t *testing.T) {
	c := mustDefault(t)
	if _, ok := c.Week(42); ok {
		t.Error("Week(42) should not be found")
	}
}

func mustDefault(t *testing.T) *curriculum.Curriculum {
	t.Helper()
	c, err := curriculum.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return c
}

func setupTestCurriculum(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	levelsDir := filepath.Join(dir, "levels")
	os.MkdirAll(levelsDir, 0o755)

	os.WriteFile(filepath.Join(levelsDir, "04-argue.yaml"), []byte(`
week: 4
title: "Argue & Persuade"
morphology:
  root: { text: duc, meaning: "to lead" }
vocabulary:
  - term: Argue
    definition: "Give reasons in support of an idea."
    l1_translation: "Berhujah"
`), 0o644)

	os.WriteFile(filepath.Join(levelsDir, "03-compare.yaml"), []byte(`
week: 3
title: "Compare & Contrast"
morphology:
  root: { text: spect, meaning: "to look" }
vocabulary:
  - term: Compare
    definition: "Estimate the similarity or dissimilarity between things."
    l1_translation: "Membandingkan"
    contexts:
      - { subject: Science, sentence: "Compare the two leaves under the microscope." }
activities:
  word_sort:
    categories: [Look, Say]
    words:
      - { text: Compare, category: Look }
`), 0o644)

	return dir
}

func TestWeek_WithoutL1(t *testing.T) {
	c := mustDefault(t)
	w, _ := c.Week(1)

	stripped := w.WithoutL1()
	for _, term := range stripped.Vocabulary {
		if term.L1Translation != "" {
			t.Errorf("%s still has L1 translation %q", term.Term, term.L1Translation)
		}
	}
	if w.Vocabulary[0].L1Translation == "" {
		t.Error("WithoutL1() modified the original week")
	}
}
