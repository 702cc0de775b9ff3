package scrape

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxHeadlineWords bounds how many words of a headline are kept before
// the rest is replaced with an ellipsis.
const maxHeadlineWords = 15

// fetchHeadlines extracts up to MaxHeadlines front-page headlines from the
// article containers carrying className. Headline records carry no
// fetched_at; the consolidation step stamps them with the batch time.
func fetchHeadlines(ctx context.Context, f *Fetcher, pageURL, className string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	articles := doc.Find("div." + className)
	if articles.Length() == 0 {
		slog.Warn("No article containers matched", "url", pageURL, "class", className)
		return []Record{}, nil
	}

	if articles.Length() > MaxHeadlines {
		articles = articles.Slice(0, MaxHeadlines)
	}

	records := make([]Record, 0, articles.Length())
	articles.Each(func(_ int, article *goquery.Selection) {
		title := article.Find("a").First()
		if title.Length() == 0 {
			return
		}

		words := strings.Fields(title.Text())
		headline := strings.Join(words, " ")
		if len(words) > maxHeadlineWords {
			headline = strings.Join(words[:maxHeadlineWords], " ") + "..."
		}

		records = append(records, Record{
			Text: headline,
			URL:  resolveURL(pageURL, title.AttrOr("href", "#")),
		})
	})

	return records, nil
}

func fetchBBC(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	return fetchHeadlines(ctx, f, url, "bbc-14zb6im")
}

func fetchDW(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	return fetchHeadlines(ctx, f, url, "news-title")
}

func fetchCNN(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	return fetchHeadlines(ctx, f, url, "container_lead-plus-headlines__item")
}

func fetchIrishTimes(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	return fetchHeadlines(ctx, f, url, "b-flex-promo-card__text")
}
