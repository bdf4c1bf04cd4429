package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

func TestRun_WritesMaterials(t *testing.T) {
	out := filepath.Join(t.TempDir(), "materials")

	var stdout bytes.Buffer
	if err := run([]string{"-out", out, "-seed", "42"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Generated 31 files") {
		t.Errorf("stdout = %q, want 31 files reported", stdout.String())
	}
	for _, name := range []string{"index.html", "level-01.html", "level-01.xlsx", "formal-1.html", "formal-3.xlsx"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRun_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week-data.json")

	var stdout bytes.Buffer
	if err := run([]string{"-export", path}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	c, err := curriculum.LoadJSONFile(path)
	if err != nil {
		t.Fatalf("LoadJSONFile() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	// The export feeds straight back in as a curriculum source.
	out := filepath.Join(t.TempDir(), "from-json")
	if err := run([]string{"-curriculum", path, "-out", out}, &stdout); err != nil {
		t.Fatalf("run(-curriculum) error = %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"missing curriculum", []string{"-curriculum", filepath.Join(t.TempDir(), "nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(tt.args, &stdout); err == nil {
				t.Error("run() error = nil, want error")
			}
		})
	}
}
