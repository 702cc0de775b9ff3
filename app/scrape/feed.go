package scrape

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// feedParser is shared by all feed tasks; gofeed parsers are stateless.
var feedParser = gofeed.NewParser()

// FetchFeed extracts the newest entries of an RSS or Atom feed. Published
// timestamps travel with the records so the consolidation step preserves
// them instead of stamping the batch time.
func FetchFeed(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	feed, err := feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > MaxHeadlines {
		items = items[:MaxHeadlines]
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		record := Record{
			Title:       Clean(item.Title, MaxChars),
			Description: Clean(item.Description, MaxChars),
			URL:         item.Link,
		}

		if item.PublishedParsed != nil {
			record.FetchedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}

		records = append(records, record)
	}

	return records, nil
}
