package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// EnsureProfileCommand represents the input for the administrative repair
// operation that backfills a missing profile mirror.
type EnsureProfileCommand struct {
	UserID   string
	Email    string
	Metadata identity.UserMetadata
}

// EnsureProfileUseCase creates a profile for a provider user whose creation
// event was missed. A no-op when the profile already exists.
type EnsureProfileUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewEnsureProfileUseCase creates a new EnsureProfileUseCase instance.
func NewEnsureProfileUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *EnsureProfileUseCase {
	return &EnsureProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute returns the existing or newly created profile and whether a row
// was created.
func (uc *EnsureProfileUseCase) Execute(ctx context.Context, cmd EnsureProfileCommand) (*identity.Profile, bool, error) {
	if cmd.UserID == "" {
		return nil, false, apperrors.NewValidationError("user ID is required")
	}

	existing, err := uc.profileRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	profile, err := identity.NewProfileFromIdentity(cmd.UserID, cmd.Email, cmd.Metadata)
	if err != nil {
		return nil, false, apperrors.NewValidationError(err.Error())
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if apperrors.IsDuplicateError(err) {
			winner, getErr := uc.profileRepo.GetByID(ctx, cmd.UserID)
			if getErr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create profile: %w", err)
	}

	uc.logger.Infow("profile backfilled",
		"user_id", profile.ID(),
	)
	return profile, true, nil
}
