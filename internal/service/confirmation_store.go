package service

import (
	"sync"
	"time"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

type pendingConfirmation struct {
	WorkspaceID  string
	Context      models.EditContext
	Confirmation models.Confirmation
}

// confirmationStore keeps drop confirmations until they are decided or expire.
type confirmationStore struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]pendingConfirmation
}

func newConfirmationStore(ttl time.Duration) *confirmationStore {
	return &confirmationStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]pendingConfirmation),
	}
}

// Save stores the confirmation and drops expired entries.
func (s *confirmationStore) Save(pending pendingConfirmation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
	s.items[pending.Confirmation.ID] = pending
	return len(s.items)
}

// Get returns an unexpired confirmation without removing it. Expired entries are evicted.
func (s *confirmationStore) Get(id string) (pendingConfirmation, bool) {
	s.mu.RLock()
	pending, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return pendingConfirmation{}, false
	}
	if s.expired(pending) {
		s.Delete(id)
		return pendingConfirmation{}, false
	}
	return pending, true
}

// Take returns the confirmation and removes it so it can be decided only once.
func (s *confirmationStore) Take(id string) (pendingConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.items[id]
	if !ok {
		return pendingConfirmation{}, false
	}
	delete(s.items, id)
	if s.expired(pending) {
		return pendingConfirmation{}, false
	}
	return pending, true
}

// Delete removes the confirmation if present.
func (s *confirmationStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Len returns the number of stored confirmations, expired ones included until evicted.
func (s *confirmationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *confirmationStore) expired(pending pendingConfirmation) bool {
	return s.now().Sub(pending.Confirmation.CreatedAt) > s.ttl
}
