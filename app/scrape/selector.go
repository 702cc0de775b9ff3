package scrape

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// MaxHeadlines caps how many entries a list-style source contributes.
const MaxHeadlines = 5

// FetchBySelector extracts up to MaxHeadlines records from the elements
// matching selector. The cap is applied before blank elements are dropped,
// so a page with blank leading entries yields fewer records rather than
// pulling in later ones. Relative links are resolved against pageURL.
func FetchBySelector(ctx context.Context, f *Fetcher, pageURL, selector string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	elements := doc.Find(selector)
	if elements.Length() == 0 {
		slog.Warn("Selector matched no elements", "url", pageURL, "selector", selector)
		return []Record{}, nil
	}

	if elements.Length() > MaxHeadlines {
		elements = elements.Slice(0, MaxHeadlines)
	}

	records := make([]Record, 0, elements.Length())
	elements.Each(func(_ int, el *goquery.Selection) {
		text := Clean(el.Text(), MaxChars)
		if text == "" {
			return
		}

		href := el.AttrOr("href", "")
		if href == "" {
			href = el.Find("a").AttrOr("href", "")
		}
		if href == "" {
			href = "#"
		}

		records = append(records, Record{
			Text: text,
			URL:  resolveURL(pageURL, href),
		})
	})

	return records, nil
}

// resolveURL resolves a potentially relative href against a base URL.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
