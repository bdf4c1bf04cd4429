package teacher

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/p-n-ai/word-forge/internal/quiz"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the printable documents.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"add":          func(a, b int) int { return a + b },
		"optionLetter": quiz.Letter,
	}

	templates := make(map[string]*template.Template)
	for _, page := range []string{"index.html", "test.html"} {
		tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

type testPage struct {
	Heading   string
	Test      quiz.Test
	ShowBands bool
}

// RenderTest writes the printable test with its answer key.
func (r *Renderer) RenderTest(w io.Writer, t quiz.Test) error {
	return r.render(w, "test.html", testPage{
		Heading:   Heading(t),
		Test:      t,
		ShowBands: t.Kind == quiz.TestFormal,
	})
}

// RenderIndex writes the teacher index page.
func (r *Renderer) RenderIndex(w io.Writer, idx Index) error {
	return r.render(w, "index.html", idx)
}

func (r *Renderer) render(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Heading is the document heading of a test.
func Heading(t quiz.Test) string {
	if t.Kind == quiz.TestFormal {
		return fmt.Sprintf("Formal Assessment %d", t.Number)
	}
	return fmt.Sprintf("Level %d Vocabulary Test", t.Number)
}
