package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

func TestExportImport_RoundTrip(t *testing.T) {
	c := mustDefault(t)

	data, err := curriculum.ExportJSON(c)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "week-data.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := curriculum.LoadJSONFile(path)
	if err != nil {
		t.Fatalf("LoadJSONFile() error = %v", err)
	}
	if got.Len() != c.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), c.Len())
	}

	w, _ := got.Week(1)
	if w.Vocabulary[0].L1Translation != "Mengenal pasti" {
		t.Errorf("L1Translation = %q, want Mengenal pasti", w.Vocabulary[0].L1Translation)
	}
	if w.Activities.WordSort == nil || len(w.Activities.WordSort.Words) != 5 {
		t.Error("word sort activity lost in export")
	}
}

func TestImportJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not-an-array", `{"week": 1}`},
		{"missing-title", `[{"week": 1, "vocabulary": []}]`},
		{"week-zero", `[{"week": 0, "title": "x", "vocabulary": []}]`},
		{"empty-term", `[{"week": 1, "title": "x", "vocabulary": [{"term": "", "definition": "d"}]}]`},
		{"three-word-set", `[{"week": 1, "title": "x", "vocabulary": [],
			"activities": {"oddOneOut": {"sets": [{"words": ["a","b","c"], "oddOneOut": "a"}]}}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := curriculum.ImportJSON([]byte(tt.data)); err == nil {
				t.Error("ImportJSON() should fail")
			}
		})
	}
}

func TestImportJSON_InvariantViolation(t *testing.T) {
	// Valid against the schema, but the sort word's category is unknown.
	data := `[{"week": 1, "title": "x", "vocabulary": [],
		"activities": {"wordSort": {"categories": ["A"], "words": [{"text": "w", "category": "B"}]}}}]`

	if _, err := curriculum.ImportJSON([]byte(data)); err == nil {
		t.Error("ImportJSON() should reject unknown sort category")
	}
}

func TestLoad(t *testing.T) {
	exported, err := curriculum.ExportJSON(mustDefault(t))
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	jsonPath := filepath.Join(t.TempDir(), "week-data.json")
	if err := os.WriteFile(jsonPath, exported, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		path      string
		wantWeeks int
		wantErr   bool
	}{
		{"bundled default", "", 2, false},
		{"yaml directory", setupTestCurriculum(t), 2, false},
		{"json export", jsonPath, 2, false},
		{"missing path", filepath.Join(t.TempDir(), "nope"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := curriculum.Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err == nil && c.Len() != tt.wantWeeks {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantWeeks)
			}
		})
	}
}
