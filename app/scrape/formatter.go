package scrape

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const digestDivider = "--------------------"

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Run renders a batch as a plain-text digest suitable for chat or email
// delivery. Categories keep their batch order, sources are listed
// alphabetically within each category, and a failed source announces
// itself instead of disappearing.
func (f *Formatter) Run(batch BatchResult) string {
	parts := []string{"Updates\n"}

	for _, category := range batch.Metadata.Categories {
		group := batch.Updates[category]

		names := make([]string, 0, len(group))
		for name := range group {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("**Updates from %s**\n", name))

			records := group[name]
			if len(records) == 0 {
				parts = append(parts, "Failed to fetch info.\n")
			} else {
				for _, record := range records {
					text := cmp.Or(record.Text, record.Description, record.Title)
					parts = append(parts, fmt.Sprintf("%s\n[URL](%s)\n", text, record.URL))
				}
			}

			parts = append(parts, digestDivider+"\n")
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}
