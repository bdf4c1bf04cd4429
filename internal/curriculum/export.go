package curriculum

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var weekDataSchema string

// ExportJSON renders the curriculum as the week-data JSON document consumed by
// the offline test generator.
func ExportJSON(c *Curriculum) ([]byte, error) {
	data, err := json.MarshalIndent(c.weeks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal week data: %w", err)
	}
	return data, nil
}

// ImportJSON validates a week-data JSON document against the schema and
// builds a curriculum from it.
func ImportJSON(data []byte) (*Curriculum, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(weekDataSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating week data: %w", err)
	}
	if !result.Valid() {
		errs := make([]error, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, errors.New(e.String()))
		}
		return nil, fmt.Errorf("week data does not match schema: %w", errors.Join(errs...))
	}

	var weeks []Week
	if err := json.Unmarshal(data, &weeks); err != nil {
		return nil, fmt.Errorf("decoding week data: %w", err)
	}
	return New(weeks)
}

// LoadJSONFile reads and imports a week-data JSON file.
func LoadJSONFile(path string) (*Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ImportJSON(data)
}
