package scrape

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sduras/webwatch/app/sources"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the records that survive the source's filters. Dropped
// records are logged at debug level with the rule that removed them.
func (f *Filterer) Run(records []Record, filters []sources.Filter) []Record {
	if len(filters) == 0 {
		return records
	}

	kept := make([]Record, 0, len(records))
	for _, record := range records {
		dropped, reason := f.applyFilters(record, filters)
		if dropped {
			slog.Debug("Record dropped by filter", "url", record.URL, "reason", reason)
			continue
		}
		kept = append(kept, record)
	}

	return kept
}

func (f *Filterer) applyFilters(record Record, filters []sources.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(record, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(record Record, field string) string {
	switch field {
	case "title":
		return record.Title
	case "text":
		return record.Text
	case "description":
		return record.Description
	case "url":
		return record.URL
	default:
		return ""
	}
}
