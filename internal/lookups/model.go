package lookups

import "time"

// Kind identifies one of the shared name-lookup tables.
type Kind string

const (
	BusinessType     Kind = "business_types"
	Jurisdiction     Kind = "jurisdictions"
	PermitType       Kind = "permit_types"
	IssuingAuthority Kind = "issuing_authorities"
)

// Lookup is an id + name row shared across users. Names round-trip with their
// original casing; matching is case-insensitive.
type Lookup struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
