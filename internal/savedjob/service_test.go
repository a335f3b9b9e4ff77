package savedjob

import (
	"context"
	"errors"
	"testing"

	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/logging"
)

func newTestService(t *testing.T) (*Service, job.Repository) {
	t.Helper()
	jobs := job.NewMemoryRepository()
	svc := NewService(NewMemoryRepository(), jobs, logging.Discard())
	return svc, jobs
}

func seedJob(t *testing.T, jobs job.Repository, id string) {
	t.Helper()
	if err := jobs.Create(context.Background(), job.Job{ID: id, CompanyID: "c1", Title: "Backend Engineer"}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func TestSaveAndList(t *testing.T) {
	svc, jobs := newTestService(t)
	seedJob(t, jobs, "j1")
	seedJob(t, jobs, "j2")

	for _, jobID := range []string{"j1", "j2"} {
		if _, err := svc.Save(context.Background(), "u1", jobID); err != nil {
			t.Fatalf("save %s: %v", jobID, err)
		}
	}

	saved, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved jobs, got %d", len(saved))
	}
	for _, entry := range saved {
		if entry.Job == nil {
			t.Fatalf("expected posting attached to entry %s", entry.ID)
		}
		if entry.Job.Title != "Backend Engineer" {
			t.Fatalf("unexpected posting: %+v", entry.Job)
		}
	}
}

func TestSaveUnknownJob(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Save(context.Background(), "u1", "missing"); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound, got %v", err)
	}
}

func TestSaveTwiceRejected(t *testing.T) {
	svc, jobs := newTestService(t)
	seedJob(t, jobs, "j1")

	if _, err := svc.Save(context.Background(), "u1", "j1"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := svc.Save(context.Background(), "u1", "j1"); !errors.Is(err, ErrAlreadySaved) {
		t.Fatalf("expected ErrAlreadySaved, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "u2", "j1"); err != nil {
		t.Fatalf("another user saving the same job: %v", err)
	}
}

func TestListSkipsRemovedPostings(t *testing.T) {
	svc, jobs := newTestService(t)
	seedJob(t, jobs, "j1")
	seedJob(t, jobs, "j2")

	for _, jobID := range []string{"j1", "j2"} {
		if _, err := svc.Save(context.Background(), "u1", jobID); err != nil {
			t.Fatalf("save %s: %v", jobID, err)
		}
	}
	if err := jobs.Delete(context.Background(), "j1"); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	saved, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(saved) != 1 || saved[0].JobID != "j2" {
		t.Fatalf("expected only j2 to remain, got %+v", saved)
	}
}

func TestDeleteAndCount(t *testing.T) {
	svc, jobs := newTestService(t)
	seedJob(t, jobs, "j1")

	entry, err := svc.Save(context.Background(), "u1", "j1")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	count, err := svc.CountByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 saved job, got %d", count)
	}

	if err := svc.Delete(context.Background(), entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
