package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

func TestJobStoreCRUD(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	job := &models.Job{ID: "j1", Kind: models.JobKindUpload, Filename: "a.pdf", CreatedAt: time.Now()}
	if err := store.Create(ctx, job); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, "j1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Filename != "a.pdf" {
		t.Errorf("Filename = %q", got.Filename)
	}

	// Mutating the returned copy must not affect the stored record.
	got.Filename = "mutated"
	again, _ := store.Get(ctx, "j1")
	if again.Filename != "a.pdf" {
		t.Error("stored record was mutated through a returned copy")
	}

	job.Location = "https://example.com/a.pdf"
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, _ := store.Get(ctx, "j1")
	if updated.Location == "" {
		t.Error("Update did not persist")
	}
}

func TestJobStoreNotFound(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() error = %v, want not found", err)
	}
	if err := store.Update(ctx, &models.Job{ID: "missing"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v, want not found", err)
	}
	if _, err := store.Latest(ctx, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Latest() error = %v, want not found", err)
	}
}

func TestJobStoreLatestByKind(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	base := time.Now()
	for _, job := range []*models.Job{
		{ID: "u1", Kind: models.JobKindUpload, CreatedAt: base},
		{ID: "s1", Kind: models.JobKindScrape, CreatedAt: base.Add(time.Second)},
		{ID: "u2", Kind: models.JobKindUpload, CreatedAt: base.Add(2 * time.Second)},
	} {
		if err := store.Create(ctx, job); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := store.Latest(ctx, models.JobKindUpload)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != "u2" {
		t.Errorf("Latest(upload) = %q, want u2", latest.ID)
	}

	any, err := store.Latest(ctx, "")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if any.ID != "u2" {
		t.Errorf("Latest(any) = %q, want u2", any.ID)
	}
}
