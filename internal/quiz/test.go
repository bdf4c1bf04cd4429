package quiz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

// Levels is the number of level tests in the teacher materials.
const Levels = 12

// FormalQuestions caps the length of a formal test.
const FormalQuestions = 20

// FormalRanges lists the level range covered by each formal test.
var FormalRanges = [...][2]int{{1, 4}, {5, 8}, {9, 12}}

// LevelCounts is the question mix of a level test.
var LevelCounts = Counts{MCQ: 4, OddOneOut: 4, MissingWord: 4}

// FormalCounts is the question mix drawn before a formal test is shuffled
// and truncated.
var FormalCounts = Counts{MCQ: 10, OddOneOut: 5, MissingWord: 5}

// TestKind distinguishes level tests from formal assessments.
type TestKind string

const (
	TestLevel  TestKind = "level"
	TestFormal TestKind = "formal"
)

// Test is a printable test with its answer key.
type Test struct {
	ID        string     `json:"id"`
	Kind      TestKind   `json:"kind"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	FromLevel int        `json:"fromLevel"`
	ToLevel   int        `json:"toLevel"`
	Questions []Question `json:"questions"`
}

// PassMark returns the marks needed to pass the test.
func (t Test) PassMark() int {
	return PassMark(len(t.Questions))
}

// Bands returns the performance bands of the test.
func (t Test) Bands() []Band {
	return Bands(len(t.Questions))
}

// PassMark is ceil(60% of n).
func PassMark(n int) int {
	return ceilPercent(n, 60)
}

// Band is a grade awarded from a minimum score.
type Band struct {
	Grade string `json:"grade"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// Bands splits 0..n into the four performance bands, best first.
func Bands(n int) []Band {
	excellent := ceilPercent(n, 90)
	good := ceilPercent(n, 75)
	pass := ceilPercent(n, 60)
	return []Band{
		{Grade: "A", Label: "Excellent", Min: excellent, Max: n},
		{Grade: "B", Label: "Good", Min: good, Max: max(excellent-1, good)},
		{Grade: "C", Label: "Satisfactory", Min: pass, Max: max(good-1, pass)},
		{Grade: "D", Label: "Needs Improvement", Min: 0, Max: max(pass-1, 0)},
	}
}

// Grade returns the band a score falls into.
func Grade(score, n int) Band {
	bands := Bands(n)
	for _, b := range bands {
		if score >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}

func ceilPercent(n, percent int) int {
	return (n*percent + 99) / 100
}

// LevelTest builds the test for one level from that week's vocabulary.
// A level missing from the curriculum yields a test with no questions.
func (g *Generator) LevelTest(c *curriculum.Curriculum, level int) Test {
	w, _ := c.Week(level)
	return Test{
		ID:        uuid.NewString(),
		Kind:      TestLevel,
		Number:    level,
		Title:     w.Title,
		FromLevel: level,
		ToLevel:   level,
		Questions: g.Generate(w.Vocabulary, LevelCounts),
	}
}

// FormalTest builds formal test number (1-based) over its level range.
func (g *Generator) FormalTest(c *curriculum.Curriculum, number int) (Test, error) {
	if number < 1 || number > len(FormalRanges) {
		return Test{}, fmt.Errorf("formal test %d out of range 1-%d", number, len(FormalRanges))
	}
	r := FormalRanges[number-1]

	qs := Shuffle(g.src, g.Generate(c.Range(r[0], r[1]), FormalCounts))
	if len(qs) > FormalQuestions {
		qs = qs[:FormalQuestions]
	}

	return Test{
		ID:        uuid.NewString(),
		Kind:      TestFormal,
		Number:    number,
		Title:     fmt.Sprintf("Levels %d-%d", r[0], r[1]),
		FromLevel: r[0],
		ToLevel:   r[1],
		Questions: qs,
	}, nil
}
