package businesses

import "context"

// Repo defines persistence operations for businesses, all scoped by the
// owning user id.
type Repo interface {
	ListByUser(ctx context.Context, userID string) ([]Business, error)
	GetByID(ctx context.Context, userID, businessID string) (Business, error)
	Create(ctx context.Context, biz Business) error
	Update(ctx context.Context, biz Business) error
	Delete(ctx context.Context, userID, businessID string) error
}
