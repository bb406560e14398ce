// Package markdown renders ordered content nodes into a single Markdown
// document and normalizes table shapes for pipe-delimited output.
package markdown

import (
	"strings"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// NormalizeTable reconciles a heterogeneous table shape into a grid safe for
// pipe-delimited rendering:
//
//   - rows shorter than the header are padded with trailing empty cells
//     until they match the header width
//   - rows longer than the header are preserved verbatim; excess cells will
//     misalign columns in the rendered table, which is an accepted edge case
//   - literal '|' characters in every cell (headers included) are escaped
//     as '\|' so they cannot corrupt the column delimiters
//
// The input node is not mutated.
func NormalizeTable(t *models.TableNode) *models.TableNode {
	out := &models.TableNode{
		Headers: make([]string, len(t.Headers)),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, h := range t.Headers {
		out.Headers[i] = escapePipes(h)
	}
	for i, row := range t.Rows {
		width := len(row)
		if len(t.Headers) > width {
			width = len(t.Headers)
		}
		cells := make([]string, width)
		for j, cell := range row {
			cells[j] = escapePipes(cell)
		}
		// cells beyond len(row) stay "" (padding)
		out.Rows[i] = cells
	}
	return out
}

func escapePipes(cell string) string {
	return strings.ReplaceAll(cell, "|", "\\|")
}
