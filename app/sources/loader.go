package sources

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultCategory = "uncategorized"

// Load reads the source list from a YAML file, preserving file order.
// A missing file is not an error: the engine treats an empty source list
// as an empty batch, so the service still starts.
func Load(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Source configuration file not found", "file", path)
			return []Spec{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var parsed file
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	specs := parsed.Sources
	for i := range specs {
		setDefaults(&specs[i])
	}

	if err := validateFilters(specs); err != nil {
		return nil, err
	}

	return specs, nil
}

func setDefaults(spec *Spec) {
	if spec.Category == "" {
		spec.Category = DefaultCategory
	}
}

// validateFilters rejects filter rules the engine would silently ignore.
// Entries with a missing name or URL are left in place; the engine skips
// those at scheduling time with a warning rather than failing the load.
func validateFilters(specs []Spec) error {
	validFields := map[string]bool{
		"title":       true,
		"text":        true,
		"description": true,
		"url":         true,
	}

	for _, spec := range specs {
		for i, filter := range spec.Filters {
			if !validFields[filter.Field] {
				return fmt.Errorf("source %q: invalid filter field at index %d: %s", spec.Name, i, filter.Field)
			}
			if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
				return fmt.Errorf("source %q: filter at index %d must have at least one include or exclude rule", spec.Name, i)
			}
		}
	}

	return nil
}
