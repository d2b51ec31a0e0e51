package businesses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"permits-backend/internal/lookups"
)

// DocumentsPurger removes all documents of a business. The Postgres schema
// also cascades via FK; the explicit purge keeps the memory repos honest.
type DocumentsPurger interface {
	DeleteByBusiness(ctx context.Context, businessID string) error
}

// Service contains business logic for the company registry.
type Service struct {
	Repo    Repo
	Lookups lookups.Repo
	Purger  DocumentsPurger
}

// CreateInput carries the fields accepted on create.
type CreateInput struct {
	Name             string
	Phone            string
	Notes            string
	BusinessTypeName string
	JurisdictionName string
}

// UpdateInput carries the fields accepted on update; nil means untouched and
// a blank label clears the corresponding lookup link.
type UpdateInput struct {
	Name             *string
	Phone            *string
	Notes            *string
	BusinessTypeName *string
	JurisdictionName *string
}

func (s *Service) List(ctx context.Context, userID string) ([]Business, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, businessID string) (Business, error) {
	return s.Repo.GetByID(ctx, userID, businessID)
}

func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (Business, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Business{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	biz := Business{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: time.Now().UTC(),
	}
	biz.UpdatedAt = biz.CreatedAt

	if err := s.applyLookup(ctx, lookups.BusinessType, input.BusinessTypeName, &biz.BusinessTypeID, &biz.BusinessTypeName); err != nil {
		return Business{}, err
	}
	if err := s.applyLookup(ctx, lookups.Jurisdiction, input.JurisdictionName, &biz.JurisdictionID, &biz.JurisdictionName); err != nil {
		return Business{}, err
	}

	if err := s.Repo.Create(ctx, biz); err != nil {
		return Business{}, err
	}
	return biz, nil
}

func (s *Service) Update(ctx context.Context, userID, businessID string, input UpdateInput) (Business, error) {
	biz, err := s.Repo.GetByID(ctx, userID, businessID)
	if err != nil {
		return Business{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Business{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		biz.Name = name
	}
	if input.Phone != nil {
		biz.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		biz.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.BusinessTypeName != nil {
		biz.BusinessTypeID = nil
		biz.BusinessTypeName = ""
		if err := s.applyLookup(ctx, lookups.BusinessType, *input.BusinessTypeName, &biz.BusinessTypeID, &biz.BusinessTypeName); err != nil {
			return Business{}, err
		}
	}
	if input.JurisdictionName != nil {
		biz.JurisdictionID = nil
		biz.JurisdictionName = ""
		if err := s.applyLookup(ctx, lookups.Jurisdiction, *input.JurisdictionName, &biz.JurisdictionID, &biz.JurisdictionName); err != nil {
			return Business{}, err
		}
	}

	if err := s.Repo.Update(ctx, biz); err != nil {
		return Business{}, err
	}
	return s.Repo.GetByID(ctx, userID, businessID)
}

// Delete removes the business and all of its documents.
func (s *Service) Delete(ctx context.Context, userID, businessID string) error {
	biz, err := s.Repo.GetByID(ctx, userID, businessID)
	if err != nil {
		return err
	}
	if s.Purger != nil {
		if err := s.Purger.DeleteByBusiness(ctx, biz.ID); err != nil {
			return err
		}
	}
	return s.Repo.Delete(ctx, userID, businessID)
}

// applyLookup resolves a free-text label into a lookup link. A blank label
// leaves the link cleared.
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
