package service

import (
	"context"
	"fmt"

	"leet_tracker/internal/common"
	"leet_tracker/internal/common/security"
	"leet_tracker/internal/domain/model"
	"leet_tracker/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// EnsureUser creates the caller's row on first sight and leaves an existing
// profile untouched.
func (s *AuthService) EnsureUser(ctx context.Context, identity security.Identity) error {
	if identity.UserID == "" {
		return common.ErrUnauthorized
	}
	if err := s.userRepo.EnsureExists(ctx, identity.UserID); err != nil {
		return fmt.Errorf("failed to provision user: %w", err)
	}
	return nil
}

// CurrentUser refreshes the stored profile from the identity's claims and
// returns it. An identity without profile claims only reads the stored row.
func (s *AuthService) CurrentUser(ctx context.Context, identity security.Identity) (*model.User, error) {
	if identity.UserID == "" {
		return nil, common.ErrUnauthorized
	}

	if identity.Email == "" && identity.FirstName == "" && identity.LastName == "" && identity.ProfileImageURL == "" {
		if err := s.EnsureUser(ctx, identity); err != nil {
			return nil, err
		}
		user, err := s.userRepo.FindByID(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		return user, nil
	}

	user, err := s.userRepo.Upsert(ctx, &model.User{
		ID:              identity.UserID,
		Email:           identity.Email,
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		ProfileImageURL: identity.ProfileImageURL,
	})
	if err != nil {
		// Repo returns common.ErrConflict when the email belongs to another user
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}
