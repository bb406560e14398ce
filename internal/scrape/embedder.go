package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// maxConcurrentFetches bounds the image fetch fan-out per document.
const maxConcurrentFetches = 4

// Embedder turns image references into image nodes, either fetching and
// inline-embedding the bytes as a base64 data URI or leaving the node as an
// external reference, per configuration.
type Embedder struct {
	fetcher *Fetcher
	inline  bool
	logger  *slog.Logger
}

// NewEmbedder creates an Embedder. When inline is false, images stay as
// external references and no image bytes are fetched.
func NewEmbedder(fetcher *Fetcher, inline bool, logger *slog.Logger) *Embedder {
	return &Embedder{fetcher: fetcher, inline: inline, logger: logger}
}

// EmbedAll converts image references into image nodes. Fetches fan out
// across a bounded set of workers and results fan back in; document order
// is restored before returning, so output is identical to sequential
// execution. A failed fetch drops that one image and records a warning;
// it never aborts the rest of the document.
func (e *Embedder) EmbedAll(ctx context.Context, refs []ImageRef) ([]*models.ImageNode, []string) {
	if !e.inline {
		nodes := make([]*models.ImageNode, 0, len(refs))
		for _, ref := range refs {
			nodes = append(nodes, &models.ImageNode{Alt: ref.Alt, Payload: &models.Reference{URL: ref.URL}})
		}
		return nodes, nil
	}

	type slot struct {
		index int
		node  *models.ImageNode
		warn  string
	}

	jobs := make(chan int)
	results := make(chan slot, len(refs))

	var wg sync.WaitGroup
	workers := maxConcurrentFetches
	if len(refs) < workers {
		workers = len(refs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				node, err := e.embed(ctx, refs[i])
				if err != nil {
					e.logger.Warn("dropping image",
						"url", refs[i].URL,
						"error", err,
					)
					results <- slot{index: i, warn: "failed to download image " + refs[i].URL}
					continue
				}
				results <- slot{index: i, node: node}
			}
		}()
	}

	for i := range refs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	collected := make([]slot, 0, len(refs))
	for s := range results {
		collected = append(collected, s)
	}
	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })

	var nodes []*models.ImageNode
	var warnings []string
	for _, s := range collected {
		if s.node != nil {
			nodes = append(nodes, s.node)
		}
		if s.warn != "" {
			warnings = append(warnings, s.warn)
		}
	}
	return nodes, warnings
}

// embed fetches one image and wraps it as an inline blob.
func (e *Embedder) embed(ctx context.Context, ref ImageRef) (*models.ImageNode, error) {
	data, err := e.fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	return &models.ImageNode{
		Alt:     ref.Alt,
		Payload: &models.InlineBlob{MIMEType: mimeTypeFromURL(ref.URL), Data: data},
	}, nil
}

// mimeTypeFromURL infers the image MIME type solely from the URL's file
// extension. Anything that is not .png or .gif defaults to image/jpeg;
// there is no content sniffing of magic bytes.
func mimeTypeFromURL(rawURL string) string {
	ext := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		ext = strings.ToLower(path.Ext(parsed.Path))
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
