package otp

import (
	"context"
	"sync"
)

// Store holds pending OTP records keyed by account identifier. Put overwrites
// any existing record for the key. Get reports found=false for absent keys;
// expiry is the caller's concern.
type Store interface {
	Get(ctx context.Context, accountID string) (Record, bool, error)
	Put(ctx context.Context, accountID string, record Record) error
	Delete(ctx context.Context, accountID string) error
}

// MemoryStore is a process-wide in-memory store. Records survive until
// overwritten or deleted; a process restart discards all pending codes.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore builds an empty in-memory OTP store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, accountID string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[accountID]
	return record, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, accountID string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[accountID] = record
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, accountID)
	return nil
}
