package permits

import (
	"encoding/json"
	"time"
)

// PermitResponse is the outward-facing representation of a document. Dates
// are rendered as plain calendar days.
type PermitResponse struct {
	ID                    string          `json:"id"`
	BusinessID            string          `json:"businessId"`
	DocumentCategory      string          `json:"documentCategory"`
	Title                 string          `json:"title"`
	PermitNumber          string          `json:"permitNumber,omitempty"`
	Status                string          `json:"status"`
	StartDate             *string         `json:"startDate"`
	EndDate               *string         `json:"endDate"`
	AutoRenew             bool            `json:"autoRenew"`
	JurisdictionName      string          `json:"jurisdictionName,omitempty"`
	IssuingAuthorityName  string          `json:"issuingAuthorityName,omitempty"`
	RawExtraction         json.RawMessage `json:"rawExtraction,omitempty"`
	SourceFileBucket      *string         `json:"sourceFileBucket,omitempty"`
	SourceFilePath        *string         `json:"sourceFilePath,omitempty"`
	SourceFileContentType *string         `json:"sourceFileContentType,omitempty"`
	SourceFileName        *string         `json:"sourceFileName,omitempty"`
	SourceFileSize        *int64          `json:"sourceFileSize,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func toResponse(doc Permit) PermitResponse {
	return PermitResponse{
		ID:                    doc.ID,
		BusinessID:            doc.BusinessID,
		DocumentCategory:      string(doc.Category),
		Title:                 doc.Title,
		PermitNumber:          doc.PermitNumber,
		Status:                string(doc.Status),
		StartDate:             formatDay(doc.StartDate),
		EndDate:               formatDay(doc.EndDate),
		AutoRenew:             doc.AutoRenew,
		JurisdictionName:      doc.JurisdictionName,
		IssuingAuthorityName:  doc.IssuingAuthorityName,
		RawExtraction:         doc.RawExtraction,
		SourceFileBucket:      doc.SourceFileBucket,
		SourceFilePath:        doc.SourceFilePath,
		SourceFileContentType: doc.SourceFileContentType,
		SourceFileName:        doc.SourceFileName,
		SourceFileSize:        doc.SourceFileSize,
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
	}
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
