package teacher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
)

// ErrTestNotFound is returned for a level or formal test number that does
// not exist.
var ErrTestNotFound = errors.New("test not found")

// Index lists every test on the teacher index page.
type Index struct {
	Levels []IndexEntry
	Formal []IndexEntry
}

// IndexEntry is one test on the index page.
type IndexEntry struct {
	Number  int
	Title   string
	Href    string
	KeyHref string
}

// LinkStyle decides how index entries link to tests.
type LinkStyle int

const (
	// LinkRoutes links to the HTTP routes under /teacher/.
	LinkRoutes LinkStyle = iota
	// LinkFiles links to the files written by WriteAll.
	LinkFiles
)

// Materials generates tests from a curriculum.
type Materials struct {
	curriculum *curriculum.Curriculum
	gen        *quiz.Generator
	renderer   *Renderer
}

// NewMaterials creates a materials generator. A nil gen uses the
// process-wide random source.
func NewMaterials(c *curriculum.Curriculum, gen *quiz.Generator) (*Materials, error) {
	if gen == nil {
		gen = quiz.NewGenerator(nil)
	}
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Materials{curriculum: c, gen: gen, renderer: r}, nil
}

// Renderer returns the document renderer.
func (m *Materials) Renderer() *Renderer {
	return m.renderer
}

// LevelTest generates a fresh test for level 1..quiz.Levels.
func (m *Materials) LevelTest(level int) (quiz.Test, error) {
	if level < 1 || level > quiz.Levels {
		return quiz.Test{}, fmt.Errorf("level %d out of range 1-%d: %w", level, quiz.Levels, ErrTestNotFound)
	}
	return m.gen.LevelTest(m.curriculum, level), nil
}

// FormalTest generates a fresh formal assessment.
func (m *Materials) FormalTest(number int) (quiz.Test, error) {
	t, err := m.gen.FormalTest(m.curriculum, number)
	if err != nil {
		return quiz.Test{}, fmt.Errorf("%w: %v", ErrTestNotFound, err)
	}
	return t, nil
}

// Index builds the index page data.
func (m *Materials) Index(style LinkStyle) Index {
	var idx Index
	for level := 1; level <= quiz.Levels; level++ {
		w, _ := m.curriculum.Week(level)
		e := IndexEntry{Number: level, Title: w.Title}
		switch style {
		case LinkFiles:
			e.Href = levelFile(level, ".html")
			e.KeyHref = levelFile(level, ".xlsx")
		default:
			e.Href = fmt.Sprintf("/teacher/levels/%d", level)
			e.KeyHref = e.Href + "?format=xlsx"
		}
		idx.Levels = append(idx.Levels, e)
	}
	for n, r := range quiz.FormalRanges {
		e := IndexEntry{Number: n + 1, Title: fmt.Sprintf("Levels %d-%d", r[0], r[1])}
		switch style {
		case LinkFiles:
			e.Href = formalFile(n+1, ".html")
			e.KeyHref = formalFile(n+1, ".xlsx")
		default:
			e.Href = fmt.Sprintf("/teacher/formal/%d", n+1)
			e.KeyHref = e.Href + "?format=xlsx"
		}
		idx.Formal = append(idx.Formal, e)
	}
	return idx
}

// BatchResult counts what WriteAll produced.
type BatchResult struct {
	Files     []string
	Questions int
}

// WriteAll writes every level test, formal test, answer key workbook and
// the index page into dir.
func (m *Materials) WriteAll(dir string) (BatchResult, error) {
	var res BatchResult
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating %s: %w", dir, err)
	}

	var tests []quiz.Test
	for level := 1; level <= quiz.Levels; level++ {
		t, err := m.LevelTest(level)
		if err != nil {
			return res, err
		}
		tests = append(tests, t)
	}
	for n := 1; n <= len(quiz.FormalRanges); n++ {
		t, err := m.FormalTest(n)
		if err != nil {
			return res, err
		}
		tests = append(tests, t)
	}

	for _, t := range tests {
		base := levelFile(t.Number, "")
		if t.Kind == quiz.TestFormal {
			base = formalFile(t.Number, "")
		}

		if err := writeFile(filepath.Join(dir, base+".html"), func(f *os.File) error {
			return m.renderer.RenderTest(f, t)
		}); err != nil {
			return res, err
		}
		if err := writeFile(filepath.Join(dir, base+".xlsx"), func(f *os.File) error {
			return WriteAnswerKey(f, t)
		}); err != nil {
			return res, err
		}

		res.Files = append(res.Files, base+".html", base+".xlsx")
		res.Questions += len(t.Questions)
		slog.Debug("test written", "test", base, "questions", len(t.Questions))
	}

	if err := writeFile(filepath.Join(dir, "index.html"), func(f *os.File) error {
		return m.renderer.RenderIndex(f, m.Index(LinkFiles))
	}); err != nil {
		return res, err
	}
	res.Files = append(res.Files, "index.html")

	return res, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func levelFile(level int, ext string) string {
	return fmt.Sprintf("level-%02d%s", level, ext)
}

func formalFile(n int, ext string) string {
	return fmt.Sprintf("formal-%d%s", n, ext)
}
