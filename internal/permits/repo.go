package permits

import "context"

// Repo defines persistence operations for business documents. Ownership is
// enforced one level up: callers resolve the business first.
type Repo interface {
	ListByBusiness(ctx context.Context, businessID string) ([]Permit, error)
	GetByID(ctx context.Context, businessID, documentID string) (Permit, error)
	Create(ctx context.Context, doc Permit) error
	Update(ctx context.Context, doc Permit) error
	DeleteByBusiness(ctx context.Context, businessID string) error
}
