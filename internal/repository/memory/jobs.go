// Package memory provides in-process repository implementations, used when
// no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/repositories"
)

// JobStore keeps job records in memory. Records do not survive restarts.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

// NewJobStore creates an empty in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*models.Job)}
}

func (s *JobStore) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *JobStore) Update(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return &domain.NotFoundError{Message: "job " + job.ID + " not found"}
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *JobStore) Get(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "job " + id + " not found"}
	}
	out := *job
	return &out, nil
}

func (s *JobStore) Latest(_ context.Context, kind models.JobKind) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Job
	for _, job := range s.jobs {
		if kind != "" && job.Kind != kind {
			continue
		}
		if latest == nil || job.CreatedAt.After(latest.CreatedAt) {
			latest = job
		}
	}
	if latest == nil {
		return nil, &domain.NotFoundError{Message: "no jobs recorded"}
	}
	out := *latest
	return &out, nil
}

var _ repositories.JobStore = (*JobStore)(nil)
