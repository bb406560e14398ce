package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/tabula"
	tabulamodel "github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/markdown"
)

// PDFConverter extracts text, tables, and images from PDF files and renders
// them as markdown. Extraction runs fully in-process.
type PDFConverter struct {
	renderer *markdown.Renderer
}

// NewPDFConverter creates a PDF to markdown converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{renderer: &markdown.Renderer{Title: "Extracted PDF Content"}}
}

// Convert renders the extracted document content as markdown.
func (c *PDFConverter) Convert(ctx context.Context, input []byte) (string, error) {
	result, err := c.ExtractNodes(ctx, input)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(result), nil
}

// ExtractNodes parses the PDF and returns its content nodes: one text node
// per paragraph-level element, one table node per detected table, and one
// image node per embedded page image (re-encoded as PNG).
func (c *PDFConverter) ExtractNodes(ctx context.Context, input []byte) (*models.ExtractionResult, error) {
	path, cleanup, err := writeTempPDF(input)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	doc, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, fmt.Errorf("failed to extract PDF content: %w", err)
	}

	result := &models.ExtractionResult{}
	if len(warnings) > 0 {
		result.AddWarning("pdf extraction: %s", tabula.FormatWarnings(warnings))
	}

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, elem := range page.Elements {
			switch el := elem.(type) {
			case *tabulamodel.Table:
				result.Nodes = append(result.Nodes, toTable(el))
			case tabulamodel.TextElement:
				if text := el.GetText(); text != "" {
					result.Nodes = append(result.Nodes, &models.TextNode{Text: text})
				}
			}
		}
	}

	if err := c.appendImages(path, result); err != nil {
		result.AddWarning("failed to extract embedded images: %v", err)
	}

	return result, nil
}

// appendImages walks every page and attaches embedded images as inline
// PNG payloads. Images that cannot be decoded are skipped with a warning.
func (c *PDFConverter) appendImages(path string, result *models.ExtractionResult) error {
	r, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	count, err := r.PageCount()
	if err != nil {
		return err
	}

	imageIndex := 0
	for i := 0; i < count; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			result.AddWarning("failed to read page %d: %v", i+1, err)
			continue
		}
		images, err := r.ExtractPageImages(page)
		if err != nil {
			result.AddWarning("failed to extract images from page %d: %v", i+1, err)
			continue
		}
		for _, img := range images {
			imageIndex++
			png, err := img.ToPNG()
			if err != nil {
				result.AddWarning("failed to decode image %s on page %d: %v", img.Name, i+1, err)
				continue
			}
			result.Nodes = append(result.Nodes, &models.ImageNode{
				Alt: fmt.Sprintf("Image %d", imageIndex),
				Payload: &models.InlineBlob{
					MIMEType: "image/png",
					Data:     png,
				},
			})
		}
	}
	return nil
}

// toTable maps a detected table onto a table node. When the first row is
// marked as header cells it becomes the header; otherwise all rows are
// carried as data and downstream rendering decides how to present them.
func toTable(t *tabulamodel.Table) *models.TableNode {
	node := &models.TableNode{}
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		isHeader := len(row) > 0
		for j, cell := range row {
			cells[j] = cell.Text
			if !cell.IsHeader {
				isHeader = false
			}
		}
		if i == 0 && isHeader {
			node.Headers = cells
			continue
		}
		node.Rows = append(node.Rows, cells)
	}
	return node
}

func (c *PDFConverter) SupportedExtensions() []string {
	return []string{".pdf"}
}

func (c *PDFConverter) Name() string {
	return "pdf"
}

// PageCount reports the number of pages in the PDF, used to enforce
// per-upload page limits before any extraction work starts.
func PageCount(input []byte) (int, error) {
	path, cleanup, err := writeTempPDF(input)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	r, err := reader.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = r.Close() }()

	return r.PageCount()
}

// writeTempPDF stages PDF bytes on disk. The extraction library reads from
// files, not byte slices.
func writeTempPDF(input []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(input); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to stage PDF: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to stage PDF: %w", err)
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}

var _ services.ContentConverter = (*PDFConverter)(nil)
