package savedjob

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	saved map[string]SavedJob
}

// NewMemoryRepository builds an in-memory saved-job store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{saved: make(map[string]SavedJob)}
}

func (r *memoryRepository) Create(_ context.Context, s SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.saved {
		if existing.UserID == s.UserID && existing.JobID == s.JobID {
			return ErrAlreadySaved
		}
	}
	r.saved[s.ID] = s
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]SavedJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var saved []SavedJob
	for _, s := range r.saved {
		if s.UserID == userID {
			saved = append(saved, s)
		}
	}
	sort.Slice(saved, func(i, k int) bool { return saved[i].CreatedAt.After(saved[k].CreatedAt) })
	return saved, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.saved[id]; !ok {
		return ErrNotFound
	}
	delete(r.saved, id)
	return nil
}

func (r *memoryRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, s := range r.saved {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}
