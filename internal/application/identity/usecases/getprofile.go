package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// GetProfileUseCase reads one profile mirror.
type GetProfileUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute returns the profile for the given user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*identity.Profile, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	return profile, nil
}
