package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchArticle(t *testing.T) {
	server := serveHTML(t, `<html><head><title>Release History</title></head><body>
		<article>
			<p>Go 1.23 is the latest major release and includes improvements to the
			toolchain, runtime, and libraries that most users will benefit from.</p>
			<p>As always, the release maintains the compatibility promise, and we
			expect almost all Go programs to continue to compile and run as before.
			Minor releases continue to be issued for critical problems.</p>
			<p>Earlier releases remain documented on this page together with their
			patch histories, so the full lineage of the language can be traced
			from here without digging through the issue tracker.</p>
		</article>
	</body></html>`)
	defer server.Close()

	records, err := FetchArticle(context.Background(), newTestFetcher(server.Client()), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.Title != "Release History" {
		t.Errorf("Expected page title, got %q", record.Title)
	}
	if !strings.Contains(record.Text, "Go 1.23") {
		t.Errorf("Expected extracted text to carry the article body, got %q", record.Text)
	}
	if record.Description == "" {
		t.Error("Expected a non-empty description")
	}
	if !strings.HasPrefix(record.Text, record.Description) {
		t.Errorf("Expected description to be the leading sentence of the text, got %q", record.Description)
	}
	if record.URL != server.URL {
		t.Errorf("Expected page URL, got %q", record.URL)
	}
	if record.FetchedAt != "" {
		t.Errorf("Expected article records left unstamped, got %q", record.FetchedAt)
	}
}

func TestFetchArticle_TextLengthBounded(t *testing.T) {
	long := strings.Repeat("This sentence pads the article body with more words. ", 40)
	server := serveHTML(t, `<html><head><title>Long Page</title></head><body>
		<article><p>`+long+`</p></article>
	</body></html>`)
	defer server.Close()

	records, err := FetchArticle(context.Background(), newTestFetcher(server.Client()), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	if len([]rune(records[0].Text)) > MaxChars+3 {
		t.Errorf("Expected text bounded at %d characters, got %d", MaxChars+3, len([]rune(records[0].Text)))
	}
}

func TestFetchArticle_FetchErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchArticle(context.Background(), newTestFetcher(server.Client()), server.URL)
	if err == nil {
		t.Fatal("Expected error when the page cannot be fetched, got nil")
	}
}
