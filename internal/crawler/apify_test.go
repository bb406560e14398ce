package crawler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestApifyClientCrawl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/acts/apify~puppeteer-scraper/run-sync-get-dataset-items" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "tok-123" {
			t.Errorf("token not forwarded: %q", r.URL.RawQuery)
		}

		var input runInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decoding input: %v", err)
		}
		if len(input.StartURLs) != 1 || input.StartURLs[0].URL != "https://example.com" {
			t.Errorf("startUrls = %v", input.StartURLs)
		}
		if input.MaxPagesPerCrawl != 5 {
			t.Errorf("maxPagesPerCrawl = %d", input.MaxPagesPerCrawl)
		}
		if input.PageFunction == "" {
			t.Error("pageFunction missing")
		}

		json.NewEncoder(w).Encode([]datasetItem{
			{URL: "https://example.com", Title: "Example", Text: "body", Images: []string{"https://example.com/a.png"}},
			{URL: "https://example.com/err", Error: "timeout"},
		})
	}))
	defer srv.Close()

	c := NewApifyClientWithConfig("tok-123", srv.URL, DefaultActorID, 5*time.Second)

	pages, err := c.Crawl(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Crawl: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("page count = %d, want 1 (errored page filtered)", len(pages))
	}
	if pages[0].Title != "Example" || pages[0].Text != "body" {
		t.Errorf("page = %+v", pages[0])
	}
	if len(pages[0].Images) != 1 {
		t.Errorf("images = %v", pages[0].Images)
	}
}

func TestApifyClientCrawlAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"actor not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewApifyClientWithConfig("tok", srv.URL, DefaultActorID, 5*time.Second)

	if _, err := c.Crawl(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error for non-2xx actor response")
	}
}
