package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo. The single record is
// guarded by a RWMutex so a replace is never observed half-written.
type MemoryRepo struct {
	mu      sync.RWMutex
	current *Profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Get returns the stored profile.
func (r *MemoryRepo) Get(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return Profile{}, ErrNotFound
	}
	return *r.current, nil
}

// Create stores the profile, keeping the id and created_at of an existing
// record so create acts as an upsert on the singleton.
func (r *MemoryRepo) Create(ctx context.Context, p Profile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if r.current != nil {
		p.ID = r.current.ID
		p.CreatedAt = r.current.CreatedAt
	} else {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.current = &p
	return p.ID, nil
}

// Replace overwrites the existing record or fails with ErrNotFound.
func (r *MemoryRepo) Replace(ctx context.Context, p Profile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return "", ErrNotFound
	}
	p.ID = r.current.ID
	p.CreatedAt = r.current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.current = &p
	return p.ID, nil
}

var _ Repo = (*MemoryRepo)(nil)
