package api

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"slices"
	"time"

	"github.com/sduras/webwatch/app/cfg"
	"github.com/sduras/webwatch/app/scrape"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders a batch as an RSS 2.0 document. Categories keep their batch
// order and sources are listed alphabetically within each category, so the
// feed reads the same way the digest does.
func (g *Generator) Run(batch scrape.BatchResult) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", "WebWatch Updates", 4)
	g.writeElement(&buf, "description", "Aggregated software releases and news headlines", 4)

	var selfLink string
	if cfg.Get().BaseUrl != "" {
		selfLink = fmt.Sprintf("%s/updates.rss", cfg.Get().BaseUrl)
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s/updates.rss", cfg.Get().Port)
	}
	g.writeElement(&buf, "link", selfLink, 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().In(time.Local)
	if t, err := time.Parse(time.RFC3339, batch.Metadata.FetchedAt); err == nil {
		lastBuildDate = t
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("WebWatch/%s", cfg.Get().Version), 4)

	for _, category := range batch.Metadata.Categories {
		group := batch.Updates[category]

		names := make([]string, 0, len(group))
		for name := range group {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			for _, record := range group[name] {
				g.writeItem(&buf, category, name, record)
			}
		}
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, category, source string, record scrape.Record) {
	buf.WriteString("    <item>\n")

	if record.URL != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(record.URL)))
		xml.EscapeText(buf, []byte(record.URL))
		buf.WriteString("</guid>\n")
	}

	title := cmp.Or(record.Title, record.Text)
	if title == "" {
		title = fmt.Sprintf("Update from %s", source)
	}
	g.writeElement(buf, "title", title, 6)

	if record.URL != "" {
		g.writeElement(buf, "link", record.URL, 6)
	}

	g.writeElement(buf, "description", cmp.Or(record.Description, record.Text, "No description available"), 6)

	g.writeElement(buf, "category", category, 6)
	g.writeElement(buf, "category", source, 6)

	if t, err := time.Parse(time.RFC3339, record.FetchedAt); err == nil {
		g.writeElement(buf, "pubDate", t.Format(time.RFC1123Z), 6)
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
