package service

import (
	"sync"

	"tubegrabbot/internal/core/domain"
)

// PendingStore holds the per-user pending jobs. Last write wins: a newer URL
// from the same user replaces the previous one. Entries are never evicted and
// nothing survives a restart.
type PendingStore struct {
	mu   sync.RWMutex
	jobs map[int64]domain.PendingJob
}

// NewPendingStore creates an empty store.
func NewPendingStore() *PendingStore {
	return &PendingStore{jobs: make(map[int64]domain.PendingJob)}
}

// Put records the user's pending job, replacing any previous one.
func (s *PendingStore) Put(job domain.PendingJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.UserID] = job
}

// Get returns the user's pending job, if any.
func (s *PendingStore) Get(userID int64) (domain.PendingJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[userID]
	return job, ok
}
