package services

import (
	"context"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// ArtifactSink persists rendered artifacts and raw inputs to durable blob
// storage and hands back addressable locations.
type ArtifactSink interface {
	// Put stores bytes under the given key and returns a pre-signed URL
	// for retrieval.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Get retrieves the bytes stored under the given key.
	Get(ctx context.Context, key string) ([]byte, error)

	// PresignGet returns a time-limited URL for an existing object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// List returns the objects under the given key prefix.
	List(ctx context.Context, prefix string) ([]models.Artifact, error)

	// ListFolders returns the immediate sub-prefixes ("folders") under the
	// given prefix.
	ListFolders(ctx context.Context, prefix string) ([]string, error)
}
