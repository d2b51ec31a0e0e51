package permits

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"permits-backend/internal/businesses"
	"permits-backend/internal/lookups"
	"permits-backend/internal/shared/storage/object"
)

// Service contains business logic for the document registry. Every operation
// resolves the business under the requesting user first, so a document is
// only ever reachable through its owner.
type Service struct {
	Repo       Repo
	Businesses businesses.Repo
	Lookups    lookups.Repo
	Store      object.ObjectStore
}

// CreateInput carries the fields accepted on create. Enum-ish fields arrive
// as free text and are normalized; dates arrive as strings and parse
// leniently.
type CreateInput struct {
	Category             string
	Title                string
	PermitNumber         string
	Status               string
	StartDate            string
	EndDate              string
	AutoRenew            any
	JurisdictionName     string
	IssuingAuthorityName string
	RawExtraction        json.RawMessage
	FileRef              FileRefInput
}

// UpdateInput carries the fields accepted on update; nil means untouched.
type UpdateInput struct {
	Category             *string
	Title                *string
	PermitNumber         *string
	Status               *string
	StartDate            *string
	EndDate              *string
	AutoRenew            any
	JurisdictionName     *string
	IssuingAuthorityName *string
	RawExtraction        json.RawMessage
	FileRef              FileRefInput
}

func (s *Service) List(ctx context.Context, userID, businessID string) ([]Permit, error) {
	if _, err := s.Businesses.GetByID(ctx, userID, businessID); err != nil {
		return nil, err
	}
	return s.Repo.ListByBusiness(ctx, businessID)
}

func (s *Service) Get(ctx context.Context, userID, businessID, documentID string) (Permit, error) {
	if _, err := s.Businesses.GetByID(ctx, userID, businessID); err != nil {
		return Permit{}, err
	}
	return s.Repo.GetByID(ctx, businessID, documentID)
}

func (s *Service) Create(ctx context.Context, userID, businessID string, input CreateInput) (Permit, error) {
	if _, err := s.Businesses.GetByID(ctx, userID, businessID); err != nil {
		return Permit{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Permit{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	doc := Permit{
		ID:            uuid.NewString(),
		BusinessID:    businessID,
		Category:      NormalizeCategory(input.Category),
		Title:         title,
		PermitNumber:  strings.TrimSpace(input.PermitNumber),
		Status:        NormalizeStatus(input.Status),
		StartDate:     ParseDate(input.StartDate),
		EndDate:       ParseDate(input.EndDate),
		AutoRenew:     CoerceBool(input.AutoRenew),
		RawExtraction: input.RawExtraction,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.applyLookup(ctx, lookups.Jurisdiction, input.JurisdictionName, &doc.JurisdictionID, &doc.JurisdictionName); err != nil {
		return Permit{}, err
	}
	if err := s.applyLookup(ctx, lookups.IssuingAuthority, input.IssuingAuthorityName, &doc.IssuingAuthorityID, &doc.IssuingAuthorityName); err != nil {
		return Permit{}, err
	}

	res, err := ResolveFileRef(userID, s.Store.Bucket(), input.FileRef)
	if err != nil {
		return Permit{}, err
	}
	if res.Action == FileRefSet {
		setFileRef(&doc, res.Ref)
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Permit{}, err
	}
	return doc, nil
}

func (s *Service) Update(ctx context.Context, userID, businessID, documentID string, input UpdateInput) (Permit, error) {
	if _, err := s.Businesses.GetByID(ctx, userID, businessID); err != nil {
		return Permit{}, err
	}
	doc, err := s.Repo.GetByID(ctx, businessID, documentID)
	if err != nil {
		return Permit{}, err
	}

	if input.Category != nil {
		doc.Category = NormalizeCategory(*input.Category)
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return Permit{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		doc.Title = title
	}
	if input.PermitNumber != nil {
		doc.PermitNumber = strings.TrimSpace(*input.PermitNumber)
	}
	if input.Status != nil {
		doc.Status = NormalizeStatus(*input.Status)
	}
	if input.StartDate != nil {
		doc.StartDate = ParseDate(*input.StartDate)
	}
	if input.EndDate != nil {
		doc.EndDate = ParseDate(*input.EndDate)
	}
	if input.AutoRenew != nil {
		doc.AutoRenew = CoerceBool(input.AutoRenew)
	}
	if input.JurisdictionName != nil {
		doc.JurisdictionID = nil
		doc.JurisdictionName = ""
		if err := s.applyLookup(ctx, lookups.Jurisdiction, *input.JurisdictionName, &doc.JurisdictionID, &doc.JurisdictionName); err != nil {
			return Permit{}, err
		}
	}
	if input.IssuingAuthorityName != nil {
		doc.IssuingAuthorityID = nil
		doc.IssuingAuthorityName = ""
		if err := s.applyLookup(ctx, lookups.IssuingAuthority, *input.IssuingAuthorityName, &doc.IssuingAuthorityID, &doc.IssuingAuthorityName); err != nil {
			return Permit{}, err
		}
	}
	if input.RawExtraction != nil {
		doc.RawExtraction = input.RawExtraction
	}

	res, err := ResolveFileRef(userID, s.Store.Bucket(), input.FileRef)
	if err != nil {
		return Permit{}, err
	}
	switch res.Action {
	case FileRefClear:
		clearFileRef(&doc)
	case FileRefSet:
		setFileRef(&doc, res.Ref)
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Permit{}, err
	}
	return s.Repo.GetByID(ctx, businessID, documentID)
}

// SourceFile is an opened source document stream plus the metadata needed to
// serve it.
type SourceFile struct {
	Body        io.ReadCloser
	ContentType string
	Name        string
	Size        int64
}

// OpenFile streams the document's source file from object storage. It fails
// with ErrNotFound when the document carries no file and refuses references
// that point outside the designated bucket.
func (s *Service) OpenFile(ctx context.Context, userID, businessID, documentID string) (SourceFile, error) {
	doc, err := s.Get(ctx, userID, businessID, documentID)
	if err != nil {
		return SourceFile{}, err
	}
	if !doc.HasSourceFile() {
		return SourceFile{}, fmt.Errorf("%w: document has no source file", ErrNotFound)
	}
	if *doc.SourceFileBucket != s.Store.Bucket() {
		return SourceFile{}, fmt.Errorf("%w: unknown bucket", ErrInvalidFileRef)
	}

	body, err := s.Store.Open(ctx, *doc.SourceFilePath)
	if err != nil {
		return SourceFile{}, err
	}

	out := SourceFile{Body: body, ContentType: "application/octet-stream", Size: -1}
	if doc.SourceFileContentType != nil && *doc.SourceFileContentType != "" {
		out.ContentType = *doc.SourceFileContentType
	}
	if doc.SourceFileName != nil {
		out.Name = *doc.SourceFileName
	}
	if doc.SourceFileSize != nil {
		out.Size = *doc.SourceFileSize
	}
	return out, nil
}

func (s *Service) applyLookup(ctx context.Context, kind lookups.Kind, label string, id **string, name *string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	row, err := s.Lookups.FindOrCreate(ctx, kind, label)
	if err != nil {
		return err
	}
	*id = &row.ID
	*name = row.Name
	return nil
}

func setFileRef(doc *Permit, ref FileReference) {
	doc.SourceFileBucket = &ref.Bucket
	doc.SourceFilePath = &ref.Path
	doc.SourceFileContentType = optional(ref.ContentType)
	doc.SourceFileName = optional(ref.Name)
	doc.SourceFileSize = ref.Size
}

func clearFileRef(doc *Permit) {
	doc.SourceFileBucket = nil
	doc.SourceFilePath = nil
	doc.SourceFileContentType = nil
	doc.SourceFileName = nil
	doc.SourceFileSize = nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
