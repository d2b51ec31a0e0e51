package lookups

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[Kind]map[string]Lookup // kind -> lower(name) -> row
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[Kind]map[string]Lookup)}
}

func (r *MemoryRepo) FindOrCreate(ctx context.Context, kind Kind, name string) (Lookup, error) {
	if err := ctx.Err(); err != nil {
		return Lookup{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Lookup{}, errors.New("lookup name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rows, ok := r.data[kind]
	if !ok {
		rows = make(map[string]Lookup)
		r.data[kind] = rows
	}
	key := strings.ToLower(name)
	if row, ok := rows[key]; ok {
		return row, nil
	}
	row := Lookup{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	rows[key] = row
	return row, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, kind Kind, id string) (Lookup, error) {
	if err := ctx.Err(); err != nil {
		return Lookup{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.data[kind] {
		if row.ID == id {
			return row, nil
		}
	}
	return Lookup{}, ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
