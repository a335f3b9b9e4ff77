package company

import (
	"context"
	"sync"

	"github.com/careershub/careers_api/internal/account"
)

type memoryRepository struct {
	mu        sync.RWMutex
	companies map[string]Company // keyed by id
}

// NewMemoryRepository builds an in-memory company store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{companies: make(map[string]Company)}
}

func (r *memoryRepository) Create(_ context.Context, co Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Email == co.Email {
			return account.ErrEmailTaken
		}
	}
	r.companies[co.ID] = co
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	companies := make([]Company, 0, len(r.companies))
	for _, co := range r.companies {
		companies = append(companies, co)
	}
	return companies, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	co, ok := r.companies[id]
	if !ok {
		return Company{}, account.ErrNotFound
	}
	return co, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, co := range r.companies {
		if co.Email == email {
			return co, nil
		}
	}
	return Company{}, account.ErrNotFound
}

func (r *memoryRepository) ListByCity(_ context.Context, city string) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var companies []Company
	for _, co := range r.companies {
		if co.City == city {
			companies = append(companies, co)
		}
	}
	return companies, nil
}

func (r *memoryRepository) CountByCity(ctx context.Context, city string) (int64, error) {
	companies, err := r.ListByCity(ctx, city)
	if err != nil {
		return 0, err
	}
	return int64(len(companies)), nil
}

func (r *memoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.companies)), nil
}

func (r *memoryRepository) Update(_ context.Context, co Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[co.ID]
	if !ok {
		return account.ErrNotFound
	}
	co.PasswordHash = existing.PasswordHash
	r.companies[co.ID] = co
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return account.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

func (r *memoryRepository) LookupByEmail(ctx context.Context, email string) (account.Ref, error) {
	co, err := r.FindByEmail(ctx, email)
	if err != nil {
		return account.Ref{}, err
	}
	return account.Ref{ID: co.ID, Email: co.Email, Name: co.Name}, nil
}

func (r *memoryRepository) SetPasswordHash(_ context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	co, ok := r.companies[id]
	if !ok {
		return account.ErrNotFound
	}
	co.PasswordHash = hash
	r.companies[id] = co
	return nil
}
