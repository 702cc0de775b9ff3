package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(client *http.Client) *Fetcher {
	f := NewFetcher(client, "test-agent", nil)
	f.backoffMin = time.Millisecond
	f.backoffMax = 2 * time.Millisecond
	return f
}

func TestFetcher_Fetch_Success(t *testing.T) {
	var gotUserAgent, gotAcceptLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAcceptLanguage = r.Header.Get("Accept-Language")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(string(body), "ok") {
		t.Errorf("Expected body to contain 'ok', got %q", string(body))
	}
	if gotUserAgent != "test-agent" {
		t.Errorf("Expected User-Agent 'test-agent', got %q", gotUserAgent)
	}
	if gotAcceptLanguage != "uk-UA,uk;q=0.5" {
		t.Errorf("Expected Accept-Language 'uk-UA,uk;q=0.5', got %q", gotAcceptLanguage)
	}
}

func TestFetcher_Fetch_RetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if string(body) != "recovered" {
		t.Errorf("Expected body 'recovered', got %q", string(body))
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetcher_Fetch_FailsAfterAllAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error after exhausting attempts, got nil")
	}
	if attempts.Load() != RetryAttempts {
		t.Errorf("Expected %d attempts, got %d", RetryAttempts, attempts.Load())
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("Expected error to mention attempt count, got %v", err)
	}
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected error to mention status code, got %v", err)
	}
}

func TestFetcher_Fetch_CancelledContext(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(server.Client())

	_, err := f.Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
	if attempts.Load() > 1 {
		t.Errorf("Expected no retries after cancellation, got %d attempts", attempts.Load())
	}
}

func TestFetcher_Fetch_DecodesCharset(t *testing.T) {
	// "Привіт" encoded as windows-1251.
	encoded := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xB3, 0xF2}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		w.Write(encoded)
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "Привіт" {
		t.Errorf("Expected decoded UTF-8 'Привіт', got %q", string(body))
	}
}

func TestFetcher_FetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1 class="title">Release notes</h1></body></html>`))
	}))
	defer server.Close()

	f := newTestFetcher(server.Client())

	doc, err := f.FetchDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	title := doc.Find("h1.title").Text()
	if title != "Release notes" {
		t.Errorf("Expected 'Release notes', got %q", title)
	}
}
