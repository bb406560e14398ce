package scrape

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// Extractor parses raw HTML into a sequence of typed content nodes: image
// references, tables, and one cleaned text segment. It is a pure function
// of its input; malformed HTML yields empty collections, not errors.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ImageRef is an image found in the document, before embedding. URLs are
// resolved against the document base URL; elements with no resolvable src
// are skipped entirely (they consume no position).
type ImageRef struct {
	URL string
	Alt string
}

// Extracted holds the raw structural extraction of one HTML document.
// Images are collected into their own section rather than interleaved at
// their source position; text and tables keep document order.
type Extracted struct {
	Text   string
	Tables []*models.TableNode
	Images []ImageRef
}

// Extract parses the HTML and returns its structure. baseURL resolves
// relative image sources.
func (e *Extractor) Extract(html []byte, baseURL string) (*Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	out := &Extracted{
		Images: extractImages(doc, base),
		Tables: extractTables(doc),
	}

	// Text extraction mutates the document (script/style removal), so it
	// runs last.
	out.Text = extractText(doc)

	return out, nil
}

// extractImages enumerates img elements in document order, resolving each
// src against the base URL. Elements with no resolvable source are skipped
// but still occupy a position: the default alt text "Image {n}" is
// 1-indexed by img element within the document, not by emitted node.
func extractImages(doc *goquery.Document, base *url.URL) []ImageRef {
	var images []ImageRef
	doc.Find("img").Each(func(i int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}
		ref, err := base.Parse(src)
		if err != nil {
			return
		}
		alt, ok := sel.Attr("alt")
		if !ok {
			alt = fmt.Sprintf("Image %d", i+1)
		}
		images = append(images, ImageRef{URL: ref.String(), Alt: alt})
	})
	return images
}

// extractTables enumerates table elements in document order. The header
// row is every <th> cell across the table when any exist, else the first
// row's cell text (header-by-position). Rows that yield zero cells are
// discarded; the row consumed as a positional header is skipped.
func extractTables(doc *goquery.Document) []*models.TableNode {
	var tables []*models.TableNode
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		node := &models.TableNode{}

		headerByPosition := false
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			node.Headers = append(node.Headers, cellText(th))
		})
		if len(node.Headers) == 0 {
			if first := table.Find("tr").First(); first.Length() > 0 {
				first.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
					node.Headers = append(node.Headers, cellText(cell))
				})
				headerByPosition = len(node.Headers) > 0
			}
		}

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				// Skip the exact row already consumed as a header: either
				// the positional header, or a first row made up entirely
				// of <th> cells.
				if headerByPosition {
					return
				}
				if len(node.Headers) > 0 && row.Find("td").Length() == 0 && row.Find("th").Length() > 0 {
					return
				}
			}
			var cells []string
			row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cellText(cell))
			})
			if len(cells) > 0 {
				node.Rows = append(node.Rows, cells)
			}
		})

		tables = append(tables, node)
	})
	return tables
}

// extractText removes script and style elements, then collapses the
// remaining visible text: split into lines, strip each, split lines on
// double-space sequences into sub-phrases, drop empties, and join
// survivors with single newlines. This is a lossy whitespace heuristic,
// not a layout-preserving extraction.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style").Remove()

	text := doc.Text()

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, phrase := range strings.Split(line, "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, "\n")
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
