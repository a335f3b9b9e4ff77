package application

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	apps map[string]Application
}

// NewMemoryRepository builds an in-memory application store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{apps: make(map[string]Application)}
}

func (r *memoryRepository) Create(_ context.Context, a Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return ErrDuplicate
		}
	}
	r.apps[a.ID] = a
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *memoryRepository) ListByJob(_ context.Context, jobID string, offset, limit int) ([]Application, error) {
	return r.page(func(a Application) bool { return a.JobID == jobID }, offset, limit), nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string, offset, limit int) ([]Application, error) {
	return r.page(func(a Application) bool { return a.UserID == userID }, offset, limit), nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	r.apps[id] = a
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *memoryRepository) CountByJob(_ context.Context, jobID string) (int64, error) {
	return r.count(func(a Application) bool { return a.JobID == jobID }), nil
}

func (r *memoryRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	return r.count(func(a Application) bool { return a.UserID == userID }), nil
}

func (r *memoryRepository) page(keep func(Application) bool, offset, limit int) []Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var apps []Application
	for _, a := range r.apps {
		if keep(a) {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, k int) bool { return apps[i].CreatedAt.After(apps[k].CreatedAt) })
	if offset >= len(apps) {
		return nil
	}
	apps = apps[offset:]
	if limit > 0 && limit < len(apps) {
		apps = apps[:limit]
	}
	return apps
}

func (r *memoryRepository) count(keep func(Application) bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, a := range r.apps {
		if keep(a) {
			n++
		}
	}
	return n
}
