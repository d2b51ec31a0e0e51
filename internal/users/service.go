package users

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureFromAuth upserts the local user row for an authenticated external
// identity. Email and display name are overwritten on every call so the local
// row tracks the provider.
func (s *Service) EnsureFromAuth(ctx context.Context, userID, email, displayName string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, User{
		ID:       userID,
		Email:    email,
		FullName: displayName,
	})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile stores the caller-editable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID, fullName, phone string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.UpdateProfile(ctx, userID, strings.TrimSpace(fullName), strings.TrimSpace(phone))
}
