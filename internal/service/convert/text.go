package convert

import (
	"context"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
)

// textConverter handles plain text files. Plain text is valid markdown,
// so this is effectively a passthrough.
type textConverter struct{}

// NewTextConverter creates a plain text converter.
func NewTextConverter() services.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return string(input), nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
