package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Dedicated strategies for software release pages. Each one knows the
// layout of a single site; when the layout drifts the strategy logs a
// warning and yields nothing instead of failing the whole batch.

func fetchDebian(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	paragraph := doc.Find("#content > dl > dd:nth-of-type(1) > p:nth-of-type(3)").First()
	if paragraph.Length() == 0 {
		slog.Warn("Could not find Debian stable release paragraph", "url", url)
		return []Record{}, nil
	}

	rawText := Clean(paragraph.Text(), MaxChars)
	version := ExtractPattern(rawText, `version\s+(\d+(?:\.\d+)?)`, "Unknown")

	return []Record{{
		Title:         "Debian",
		LatestVersion: version,
		Description:   FirstSentence(rawText),
		URL:           url,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}

func fetchPython(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	releaseLink := doc.Find("#content > div > section > article > ul > li a[href*='/downloads/release/python']").First()
	if releaseLink.Length() == 0 {
		slog.Warn("No release link found on Python page", "url", url)
		return []Record{}, nil
	}

	titleText := Clean(releaseLink.Text(), MaxChars)
	version := ExtractPattern(titleText, `(\d+\.\d+(?:\.\d+)*)`, "Unknown")

	return []Record{{
		Title:         "Python",
		LatestVersion: version,
		Description:   titleText,
		URL:           resolveURL(url, releaseLink.AttrOr("href", "")),
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}

// fetchVim reads the version announcement from the text node that follows
// the "Version" heading, not from an element of its own.
func fetchVim(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	var heading *goquery.Selection
	doc.Find("h1").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(h.Text()), "version") {
			heading = h
			return false
		}
		return true
	})
	if heading == nil {
		slog.Warn("Could not find version heading on Vim page", "url", url)
		return []Record{}, nil
	}

	var versionText string
	for node := heading.Get(0).NextSibling; node != nil; node = node.NextSibling {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) != "" {
			versionText = Clean(node.Data, MaxChars)
			break
		}
	}
	if versionText == "" {
		slog.Warn("No version description found after Vim heading", "url", url)
		return []Record{}, nil
	}

	version := ExtractPattern(versionText, `Vim\s+(\d+(?:\.\d+)*)`, "Unknown")

	// No fetched_at here: the consolidation step stamps this record with
	// the shared batch time.
	return []Record{{
		Title:         "Vim",
		LatestVersion: version,
		Description:   FirstSentence(versionText),
		URL:           url,
	}}, nil
}

func fetchGnuPG(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	paragraph := doc.Find("#text-1 > p:nth-of-type(3)").First()
	if paragraph.Length() == 0 {
		slog.Warn("No matching paragraph found on GnuPG page", "url", url)
		return []Record{}, nil
	}

	rawText := Clean(paragraph.Text(), MaxChars)
	version := ExtractPattern(rawText, `version(?:\s+\w+)*\s+(\d+(?:\.\d+)+)`, "Unknown")

	return []Record{{
		Title:         "GnuPG",
		LatestVersion: version,
		Description:   FirstSentence(rawText),
		URL:           url,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}

func fetchCmus(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	item := doc.Find("#content > div:nth-child(8) > ul > li:nth-child(1)").First()
	if item.Length() == 0 {
		slog.Warn("Could not find cmus release list item", "url", url)
		return []Record{}, nil
	}

	fullText := Clean(item.Text(), MaxChars)
	version := ExtractPattern(fullText, `(\d+\.\d+(?:\.\d+)*)`, "Unknown")

	releaseURL := url
	item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.TrimSpace(a.Text()) == "release notes" {
			releaseURL = a.AttrOr("href", url)
			return false
		}
		return true
	})

	return []Record{{
		Title:         "cmus",
		LatestVersion: version,
		Description:   FirstSentence(fullText),
		URL:           releaseURL,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}

// fetchAShell collects the "What's New" and "Improvements" bullet lists
// that follow the latest version heading, up to the next release heading.
func fetchAShell(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	heading := doc.Find("article h1[id^='version']").First()
	if heading.Length() == 0 {
		slog.Warn("No version heading found on a-Shell page", "url", url)
		return []Record{}, nil
	}

	versionText := strings.TrimSpace(heading.Text())
	version := ExtractPattern(versionText, `Version\s*([\d\.]+)`, "Unknown")

	var whatsNew, improvements []string
	for current := heading.Next(); current.Length() > 0 && !current.Is("h1"); current = current.Next() {
		if !current.Is("h4") {
			continue
		}

		list := current.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			continue
		}

		var items []string
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, strings.TrimSpace(li.Text()))
		})

		switch current.AttrOr("id", "") {
		case "whats-new":
			whatsNew = items
		case "improvements":
			improvements = items
		}
	}

	rawDescription := versionText
	if len(whatsNew) > 0 {
		rawDescription = whatsNew[0]
	} else if len(improvements) > 0 {
		rawDescription = improvements[0]
	}

	parts := []string{versionText}
	if len(whatsNew) > 0 {
		parts = append(parts, "\nWhat’s New:")
		for _, item := range whatsNew {
			parts = append(parts, "• "+item)
		}
	}
	if len(improvements) > 0 {
		parts = append(parts, "\nImprovements:")
		for _, item := range improvements {
			parts = append(parts, "• "+item)
		}
	}

	fullText := strings.Join(parts, "\n")
	if utf8.RuneCountInString(fullText) > MaxChars {
		runes := []rune(fullText)
		fullText = strings.TrimRightFunc(string(runes[:MaxChars]), unicode.IsSpace) + "..."
	}

	return []Record{{
		Title:         "aShell",
		LatestVersion: version,
		Description:   FirstSentence(rawDescription),
		Text:          fullText,
		URL:           url,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}

// fetchPicoOpenPGP is a two-stage strategy: the releases listing points at
// the latest release page, which is fetched in turn within the same task.
func fetchPicoOpenPGP(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	label := doc.Find("a.Link span.Label--success").First()
	if label.Length() == 0 {
		slog.Warn("Could not find latest release label on pico-openpgp page", "url", url)
		return []Record{}, nil
	}

	href := label.Parent().AttrOr("href", "")
	if href == "" {
		slog.Warn("Latest release label has no link on pico-openpgp page", "url", url)
		return []Record{}, nil
	}

	latestURL := resolveURL(url, href)
	releaseDoc, err := f.FetchDocument(ctx, latestURL)
	if err != nil {
		return nil, err
	}

	version := ExtractPattern(latestURL, `/tag/v?(\d+\.\d+(?:\.\d+)?)`, "")
	if version == "" {
		version = ExtractPattern(releaseDoc.Text(), `Version\s+(\d+\.\d+(?:\.\d+)?)`, "Unknown")
	}

	description := version
	markdown := releaseDoc.Find("div.markdown-body").First()
	if markdown.Length() > 0 {
		markdown.Find("h2").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			if !strings.Contains(strings.ToLower(heading.Text()), "new") {
				return true
			}
			item := heading.NextAllFiltered("ul").First().Find("li").First()
			if item.Length() > 0 {
				description = Clean(item.Text(), MaxChars)
			}
			return false
		})
	}

	return []Record{{
		Title:         "pico-openpgp",
		LatestVersion: version,
		Description:   description,
		URL:           latestURL,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}}, nil
}
