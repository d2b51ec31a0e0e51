package businesses

import "time"

// Business is a company profile owned by a user. The lookup links are
// nullable; the *Name fields are hydrated from the lookup rows for responses.
type Business struct {
	ID               string
	UserID           string
	Name             string
	Phone            string
	Notes            string
	BusinessTypeID   *string
	JurisdictionID   *string
	BusinessTypeName string
	JurisdictionName string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
