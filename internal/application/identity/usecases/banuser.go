package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// BanUserCommand represents the input for banning or unbanning a user.
type BanUserCommand struct {
	UserID string
	Ban    bool
	Reason string
}

// BanUserUseCase toggles a user's ban flag. Banning is idempotent and keeps
// the original ban timestamp on repeat requests.
type BanUserUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewBanUserUseCase creates a new BanUserUseCase instance.
func NewBanUserUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *BanUserUseCase {
	return &BanUserUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute applies the ban state change.
func (uc *BanUserUseCase) Execute(ctx context.Context, cmd BanUserCommand) (*identity.Profile, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	profile, err := uc.profileRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}

	if cmd.Ban {
		if err := profile.Ban(cmd.Reason); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	} else {
		profile.Unban()
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	uc.logger.Infow("user ban state changed",
		"user_id", profile.ID(),
		"banned", profile.IsBanned(),
	)
	return profile, nil
}
