package permits

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Permit // businessID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Permit)}
}

func (r *MemoryRepo) ListByBusiness(ctx context.Context, businessID string) ([]Permit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Permit, len(r.data[businessID]))
	copy(out, r.data[businessID])
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, businessID, documentID string) (Permit, error) {
	if err := ctx.Err(); err != nil {
		return Permit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[businessID] {
		if doc.ID == documentID {
			return doc, nil
		}
	}
	return Permit{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, doc Permit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.BusinessID] = append(r.data[doc.BusinessID], doc)
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, doc Permit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.data[doc.BusinessID]
	for i := range rows {
		if rows[i].ID == doc.ID {
			doc.CreatedAt = rows[i].CreatedAt
			doc.UpdatedAt = time.Now().UTC()
			rows[i] = doc
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) DeleteByBusiness(ctx context.Context, businessID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, businessID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
