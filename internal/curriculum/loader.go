package curriculum

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed weeks/*.yaml
var defaultWeeks embed.FS

// Default returns the curriculum bundled with the binary.
func Default() (*Curriculum, error) {
	sub, err := fs.Sub(defaultWeeks, "weeks")
	if err != nil {
		return nil, fmt.Errorf("opening embedded weeks: %w", err)
	}
	return LoadFS(sub)
}

// Load picks a loader from path: empty uses the bundled curriculum, a
// directory is read as week YAML files and anything else as a JSON export.
func Load(path string) (*Curriculum, error) {
	if path == "" {
		return Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening curriculum: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadJSONFile(path)
}

// LoadDir loads every week YAML file under rootDir.
func LoadDir(rootDir string) (*Curriculum, error) {
	return LoadFS(os.DirFS(rootDir))
}

// LoadFS loads every week YAML file in fsys. Files that fail to parse or carry
// no week number are skipped with a warning.
func LoadFS(fsys fs.FS) (*Curriculum, error) {
	var weeks []Week

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if strings.HasSuffix(p, ".notes.yaml") {
			return nil // Teacher notes, not a week
		}

		w, ok, err := loadWeek(fsys, p)
		if err != nil {
			return err
		}
		if ok {
			weeks = append(weeks, w)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	c, err := New(weeks)
	if err != nil {
		return nil, err
	}

	slog.Info("curriculum loaded", "weeks", c.Len())
	return c, nil
}

func loadWeek(fsys fs.FS, p string) (Week, bool, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Week{}, false, err
	}

	var w Week
	if err := yaml.Unmarshal(data, &w); err != nil {
		slog.Warn("skipping invalid week YAML", "path", p, "error", err)
		return Week{}, false, nil
	}

	if w.Week == 0 {
		return Week{}, false, nil // Not a week file
	}

	if a := w.Activities.Analogy; a != nil && a.TargetTerm == "" {
		slog.Warn("analogy has no target term, crediting legacy default",
			"week", w.Week,
			"term", LegacyAnalogyTarget,
		)
	}

	return w, true, nil
}
