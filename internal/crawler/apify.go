// Package crawler integrates the managed web-crawling actor used by the
// enterprise scrape pipeline.
package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
)

const (
	// DefaultBaseURL is the Apify API endpoint.
	DefaultBaseURL = "https://api.apify.com"
	// DefaultActorID is the headless-browser scraper actor. Slashes in actor
	// IDs are written as '~' in API paths.
	DefaultActorID = "apify~puppeteer-scraper"
	// DefaultTimeout covers the synchronous actor run, which includes a full
	// browser render of the target page.
	DefaultTimeout = 120 * time.Second

	maxConcurrency   = 10
	maxPagesPerCrawl = 5
)

// pageFunction runs inside the actor's browser context for every crawled
// page and returns its text plus the de-duplicated image URLs.
const pageFunction = `async ({ page, request }) => {
    try {
        await page.waitForSelector('img');
        const images = await page.$$eval('img', imgs => imgs.map(img => img.src || img.getAttribute('ng-src')));
        const validImages = [...new Set(images)].filter(url => url && url.startsWith('http'));
        const textContent = await page.evaluate(() => document.body.innerText);
        return { url: request.url, title: await page.title(), images: validImages, text: textContent };
    } catch (error) {
        return { url: request.url, error: error.message };
    }
}`

// ApifyClient implements services.Crawler against the Apify actor API using
// the synchronous run-and-collect endpoint.
type ApifyClient struct {
	token      string
	baseURL    string
	actorID    string
	httpClient *http.Client
}

// NewApifyClient creates a crawler client authenticated with the given API
// token.
func NewApifyClient(token string) *ApifyClient {
	return &ApifyClient{
		token:   token,
		baseURL: DefaultBaseURL,
		actorID: DefaultActorID,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewApifyClientWithConfig creates a crawler client with custom endpoint and
// timeout, used by tests.
func NewApifyClientWithConfig(token, baseURL, actorID string, timeout time.Duration) *ApifyClient {
	return &ApifyClient{
		token:   token,
		baseURL: baseURL,
		actorID: actorID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type startURL struct {
	URL string `json:"url"`
}

type runInput struct {
	StartURLs        []startURL `json:"startUrls"`
	MaxConcurrency   int        `json:"maxConcurrency"`
	MaxPagesPerCrawl int        `json:"maxPagesPerCrawl"`
	PageFunction     string     `json:"pageFunction"`
}

type datasetItem struct {
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
	Text   string   `json:"text"`
	Error  string   `json:"error,omitempty"`
}

// Crawl runs the actor against the given URL and returns the crawled pages.
// Pages the actor itself failed to render are filtered out.
func (c *ApifyClient) Crawl(ctx context.Context, rawURL string) ([]services.CrawledPage, error) {
	input := runInput{
		StartURLs:        []startURL{{URL: rawURL}},
		MaxConcurrency:   maxConcurrency,
		MaxPagesPerCrawl: maxPagesPerCrawl,
		PageFunction:     pageFunction,
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, c.actorID, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actor run failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read actor response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("actor API error (status %d): %s", resp.StatusCode, string(body))
	}

	var items []datasetItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset items: %w", err)
	}

	pages := make([]services.CrawledPage, 0, len(items))
	for _, item := range items {
		if item.Error != "" {
			continue
		}
		pages = append(pages, services.CrawledPage{
			URL:    item.URL,
			Title:  item.Title,
			Images: item.Images,
			Text:   item.Text,
		})
	}
	return pages, nil
}
