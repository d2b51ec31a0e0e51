package businesses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Business // userID -> businesses
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Business)}
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Business, len(r.data[userID]))
	copy(out, r.data[userID])
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, businessID string) (Business, error) {
	if err := ctx.Err(); err != nil {
		return Business{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, biz := range r.data[userID] {
		if biz.ID == businessID {
			return biz, nil
		}
	}
	return Business{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, biz Business) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[biz.UserID] = append(r.data[biz.UserID], biz)
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, biz Business) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.data[biz.UserID]
	for i := range rows {
		if rows[i].ID == biz.ID {
			biz.CreatedAt = rows[i].CreatedAt
			biz.UpdatedAt = time.Now().UTC()
			rows[i] = biz
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, businessID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.data[userID]
	for i := range rows {
		if rows[i].ID == businessID {
			r.data[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
