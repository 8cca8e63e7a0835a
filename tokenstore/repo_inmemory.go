package tokenstore

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// InMemoryRepo is a process-local Repo. Expired slots are dropped when read.
type InMemoryRepo struct {
	mu    sync.RWMutex
	slots map[string]entry
	now   func() time.Time
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		slots: make(map[string]entry),
		now:   time.Now,
	}
}

func (r *InMemoryRepo) Upsert(_ context.Context, slotID, token string, ttl time.Duration) error {
	if slotID == "" {
		return fmt.Errorf("slotID is required")
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slotID] = entry{token: token, expiresAt: expiresAt}
	return nil
}

func (r *InMemoryRepo) Get(_ context.Context, slotID string) (string, error) {
	if slotID == "" {
		return "", fmt.Errorf("slotID is required")
	}

	r.mu.RLock()
	e, ok := r.slots[slotID]
	r.mu.RUnlock()
	if !ok {
		return "", ErrSlotNotFound
	}

	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		r.mu.Lock()
		delete(r.slots, slotID)
		r.mu.Unlock()
		return "", ErrSlotNotFound
	}
	return e.token, nil
}

// Delete removes a slot; deleting a missing slot is not an error
func (r *InMemoryRepo) Delete(_ context.Context, slotID string) error {
	if slotID == "" {
		return fmt.Errorf("slotID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, slotID)
	return nil
}
