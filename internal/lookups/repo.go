package lookups

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "lookup not found" }

// Repo persists the shared lookup tables.
type Repo interface {
	// FindOrCreate returns the row matching name (case-insensitive),
	// inserting it when absent. Name must be nonblank.
	FindOrCreate(ctx context.Context, kind Kind, name string) (Lookup, error)
	GetByID(ctx context.Context, kind Kind, id string) (Lookup, error)
}
