package permits

import (
	"encoding/json"
	"time"
)

// Category enumerates the recognized document categories.
type Category string

const (
	CategoryPermit        Category = "PERMIT"
	CategoryLicense       Category = "LICENSE"
	CategoryInspection    Category = "INSPECTION"
	CategoryInsurance     Category = "INSURANCE"
	CategoryRegistration  Category = "REGISTRATION"
	CategoryCertification Category = "CERTIFICATION"
	CategoryAgreement     Category = "AGREEMENT"
	CategoryOther         Category = "OTHER"
)

// Status enumerates document lifecycle states. The five-value set matches
// what the API operates on, including PENDING_ACTIVATION for documents whose
// start date is still in the future.
type Status string

const (
	StatusActive            Status = "ACTIVE"
	StatusPendingActivation Status = "PENDING_ACTIVATION"
	StatusPendingRenewal    Status = "PENDING_RENEWAL"
	StatusExpired           Status = "EXPIRED"
	StatusInactive          Status = "INACTIVE"
)

// Permit is a permit/license/regulatory document owned by a business.
type Permit struct {
	ID                    string
	BusinessID            string
	Category              Category
	Title                 string
	PermitNumber          string
	Status                Status
	StartDate             *time.Time
	EndDate               *time.Time
	AutoRenew             bool
	JurisdictionID        *string
	IssuingAuthorityID    *string
	JurisdictionName      string
	IssuingAuthorityName  string
	RawExtraction         json.RawMessage
	SourceFileBucket      *string
	SourceFilePath        *string
	SourceFileContentType *string
	SourceFileName        *string
	SourceFileSize        *int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasSourceFile reports whether the document carries a complete file
// reference. Bucket and path are only ever stored together.
func (p Permit) HasSourceFile() bool {
	return p.SourceFileBucket != nil && *p.SourceFileBucket != "" &&
		p.SourceFilePath != nil && *p.SourceFilePath != ""
}
