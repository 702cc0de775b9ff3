package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-shiori/go-readability"
)

// FetchArticle distills a whole page into a single record using readability
// extraction. Useful for release history pages that are prose rather than
// lists.
func FetchArticle(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	text := Clean(article.TextContent, MaxChars)
	if text == "" {
		return []Record{}, nil
	}

	return []Record{{
		Title:       Clean(article.Title, MaxChars),
		Text:        text,
		Description: FirstSentence(text),
		URL:         url,
	}}, nil
}
