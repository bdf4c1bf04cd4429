// Command forge-tests writes the printable teacher materials (level tests,
// formal assessments, answer key workbooks and an index page) to a
// directory, and can export the curriculum as week-data JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/teacher"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "forge-tests:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("forge-tests", flag.ContinueOnError)
	curriculumPath := fs.String("curriculum", "", "Week YAML directory or week-data JSON file (default: bundled curriculum)")
	outDir := fs.String("out", "teacher-materials", "Directory to write the tests into")
	exportPath := fs.String("export", "", "Write the curriculum as week-data JSON to this file and exit")
	seed := fs.Uint64("seed", 0, "Random seed for reproducible tests (0: random)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := curriculum.Load(*curriculumPath)
	if err != nil {
		return err
	}

	if *exportPath != "" {
		data, err := curriculum.ExportJSON(c)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(stdout, "Exported %d weeks to %s\n", c.Len(), *exportPath)
		return nil
	}

	var src quiz.Source
	if *seed != 0 {
		src = quiz.NewSeededSource(*seed)
	}
	m, err := teacher.NewMaterials(c, quiz.NewGenerator(src))
	if err != nil {
		return err
	}

	res, err := m.WriteAll(*outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generated %d files (%d questions) in %s\n", len(res.Files), res.Questions, *outDir)
	for _, f := range res.Files {
		fmt.Fprintf(stdout, "  %s\n", f)
	}
	return nil
}
