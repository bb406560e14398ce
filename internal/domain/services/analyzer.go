package services

import (
	"context"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// LayoutAnalyzer extracts document structure through a hosted
// document-intelligence service. Implementations include the Azure
// Document Intelligence client.
type LayoutAnalyzer interface {
	// Analyze submits document bytes and returns the recognized content
	// nodes in reading order.
	Analyze(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error)
}
