package markdown

import (
	"strconv"
	"strings"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Extracted Web Content"

// Renderer serializes an ordered node sequence into one Markdown document.
//
// Section order is fixed regardless of how nodes interleave in the source:
// title, then a Content section with every text node, then a Tables section
// (only if at least one table exists), then an Images section (only if at
// least one image exists). This is a deliberate rendering policy kept for
// output compatibility, not a reflection of source layout.
type Renderer struct {
	// Title is the top-level document title. Empty means DefaultTitle.
	Title string
}

// Render produces the Markdown document for the given extraction result.
// Rendering is deterministic: the same result always yields byte-identical
// output.
func (r *Renderer) Render(result *models.ExtractionResult) string {
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")

	b.WriteString("## Content\n\n")
	texts := result.Texts()
	for i, t := range texts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t.Text)
	}
	b.WriteString("\n\n")

	if tables := result.Tables(); len(tables) > 0 {
		b.WriteString("## Tables\n\n")
		for i, t := range tables {
			writeTable(&b, i+1, NormalizeTable(t))
		}
	}

	if images := result.Images(); len(images) > 0 {
		b.WriteString("## Images\n\n")
		for _, img := range images {
			b.WriteString("![" + img.Alt + "](" + img.Payload.Src() + ")\n\n")
		}
	}

	return b.String()
}

func writeTable(b *strings.Builder, n int, t *models.TableNode) {
	b.WriteString("### Table " + strconv.Itoa(n) + "\n\n")

	if len(t.Headers) > 0 {
		b.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
		seps := make([]string, len(t.Headers))
		for i := range seps {
			seps[i] = "---"
		}
		b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	}

	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	b.WriteString("\n")
}
