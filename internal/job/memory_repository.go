package job

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemoryRepository builds an in-memory job store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{jobs: make(map[string]Job)}
}

func (r *memoryRepository) Create(_ context.Context, j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = j
	return nil
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]Job, error) {
	jobs := r.filter(func(Job) bool { return true })
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
	if offset >= len(jobs) {
		return nil, nil
	}
	jobs = jobs[offset:]
	if limit > 0 && limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (r *memoryRepository) ListByCompany(_ context.Context, companyID string) ([]Job, error) {
	return r.filter(func(j Job) bool { return j.CompanyID == companyID }), nil
}

func (r *memoryRepository) ListBySalary(_ context.Context) ([]Job, error) {
	jobs := r.filter(func(Job) bool { return true })
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].SalaryMax > jobs[k].SalaryMax })
	return jobs, nil
}

func (r *memoryRepository) ListByState(_ context.Context, state string) ([]Job, error) {
	return r.filter(func(j Job) bool { return j.State == state }), nil
}

func (r *memoryRepository) Update(_ context.Context, j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[j.ID]
	if !ok {
		return ErrNotFound
	}
	j.SeekersCount = existing.SeekersCount
	r.jobs[j.ID] = j
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *memoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[string]Job)
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.jobs)), nil
}

func (r *memoryRepository) CountByState(_ context.Context, state string) (int64, error) {
	return int64(len(r.filter(func(j Job) bool { return j.State == state }))), nil
}

func (r *memoryRepository) CountByCompany(_ context.Context, companyID string) (int64, error) {
	return int64(len(r.filter(func(j Job) bool { return j.CompanyID == companyID }))), nil
}

func (r *memoryRepository) IncrementSeekers(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	j.SeekersCount++
	r.jobs[id] = j
	return nil
}

func (r *memoryRepository) filter(keep func(Job) bool) []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var jobs []Job
	for _, j := range r.jobs {
		if keep(j) {
			jobs = append(jobs, j)
		}
	}
	return jobs
}
