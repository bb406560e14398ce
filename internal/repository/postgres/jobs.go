package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/repositories"
)

// JobStore persists job records in Postgres.
type JobStore struct {
	pool *pgxpool.Pool
}

// NewJobStore creates a Postgres-backed job store and ensures its table
// exists.
func NewJobStore(ctx context.Context, pool *pgxpool.Pool) (*JobStore, error) {
	store := &JobStore{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *JobStore) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS jobs (
			id          TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			filename    TEXT NOT NULL DEFAULT '',
			source_url  TEXT NOT NULL DEFAULT '',
			storage_key TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			local_path  TEXT NOT NULL DEFAULT '',
			warnings    TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL
		)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure jobs table: %w", err)
	}
	return nil
}

func (s *JobStore) Create(ctx context.Context, job *models.Job) error {
	const query = `
		INSERT INTO jobs (id, kind, filename, source_url, storage_key, location, local_path, warnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.pool.Exec(ctx, query,
		job.ID, string(job.Kind), job.Filename, job.SourceURL,
		job.StorageKey, job.Location, job.LocalPath, job.Warnings, job.CreatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ValidationError{Message: fmt.Sprintf("job %s already exists", job.ID)}
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *JobStore) Update(ctx context.Context, job *models.Job) error {
	const query = `
		UPDATE jobs
		SET kind = $2, filename = $3, source_url = $4, storage_key = $5,
		    location = $6, local_path = $7, warnings = $8
		WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		job.ID, string(job.Kind), job.Filename, job.SourceURL,
		job.StorageKey, job.Location, job.LocalPath, job.Warnings,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("job %s not found", job.ID)}
	}
	return nil
}

func (s *JobStore) Get(ctx context.Context, id string) (*models.Job, error) {
	const query = `
		SELECT id, kind, filename, source_url, storage_key, location, local_path, warnings, created_at
		FROM jobs WHERE id = $1`
	job, err := s.scanJob(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("job %s not found", id)}
		}
		return nil, fmt.Errorf("select job: %w", err)
	}
	return job, nil
}

func (s *JobStore) Latest(ctx context.Context, kind models.JobKind) (*models.Job, error) {
	const query = `
		SELECT id, kind, filename, source_url, storage_key, location, local_path, warnings, created_at
		FROM jobs
		WHERE $1 = '' OR kind = $1
		ORDER BY created_at DESC
		LIMIT 1`
	job, err := s.scanJob(s.pool.QueryRow(ctx, query, string(kind)))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "no jobs recorded"}
		}
		return nil, fmt.Errorf("select latest job: %w", err)
	}
	return job, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *JobStore) scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	var kind string
	err := row.Scan(&job.ID, &kind, &job.Filename, &job.SourceURL,
		&job.StorageKey, &job.Location, &job.LocalPath, &job.Warnings, &job.CreatedAt)
	if err != nil {
		return nil, err
	}
	job.Kind = models.JobKind(kind)
	return &job, nil
}

var _ repositories.JobStore = (*JobStore)(nil)
