package repositories

import (
	"context"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

// JobStore persists ingestion jobs keyed by ID.
//
// This replaces the single-slot "most recent result" record: concurrent
// requests each own their job, and Latest is derived from creation time
// instead of last-writer-wins overwriting.
type JobStore interface {
	// Create stores a new job record.
	Create(ctx context.Context, job *models.Job) error

	// Update overwrites an existing job record.
	Update(ctx context.Context, job *models.Job) error

	// Get returns the job with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Job, error)

	// Latest returns the most recently created job of the given kind,
	// or domain.ErrNotFound when none exists. An empty kind matches any.
	Latest(ctx context.Context, kind models.JobKind) (*models.Job, error)
}
