// Package scrape implements the web ingestion pipeline: fetch a page,
// extract its structure into ordered content nodes, embed or reference its
// images, and render a Markdown artifact.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "DocProcessor/1.0"
)

// disallowedExtensions are file types a scrape URL must not point at.
// Matched case-insensitively against the URL path before any network call.
var disallowedExtensions = map[string]bool{
	".pdf":  true,
	".xls":  true,
	".xlsx": true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".zip":  true,
	".rar":  true,
}

// ValidateURL rejects URLs without an http:// or https:// scheme and URLs
// whose path ends in a disallowed file extension. It runs before any fetch;
// a rejected URL never reaches the network.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("invalid URL: %v", err)}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &domain.ValidationError{Message: "URL must include http:// or https://"}
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	if disallowedExtensions[ext] {
		return &domain.ValidationError{Message: fmt.Sprintf("URL points to a disallowed file type (%s)", ext)}
	}

	return nil
}

// Fetcher retrieves raw bytes for a unit of input: the HTML document at a
// URL, or binary content for an embedded resource referenced from it.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a sensible timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewFetcherWithClient creates a Fetcher using the given HTTP client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves the bytes at the given URL. Non-2xx responses and
// transport failures surface as domain.NetworkError; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("creating request for %s: %v", rawURL, err)}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("fetching %s: %v", rawURL, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, rawURL)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("reading response from %s: %v", rawURL, err)}
	}

	return body, nil
}
