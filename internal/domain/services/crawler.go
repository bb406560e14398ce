package services

import "context"

// CrawledPage is one page returned by a managed crawl.
type CrawledPage struct {
	URL    string
	Title  string
	Images []string
	Text   string
}

// Crawler runs a managed (headless-browser) crawl of a URL and returns the
// pages it visited. Implementations include the Apify actor client.
type Crawler interface {
	Crawl(ctx context.Context, url string) ([]CrawledPage, error)
}
