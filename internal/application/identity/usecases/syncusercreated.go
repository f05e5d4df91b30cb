package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// SyncUserCreatedCommand carries a user.created event from the identity
// provider.
type SyncUserCreatedCommand struct {
	Event identity.UserCreatedEvent
}

// SyncUserCreatedUseCase mirrors a newly created provider user into a
// profile row. Redelivered events converge on the same row: only the email
// mirror is refreshed, display fields a user may have edited are preserved.
type SyncUserCreatedUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewSyncUserCreatedUseCase creates a new SyncUserCreatedUseCase instance.
func NewSyncUserCreatedUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *SyncUserCreatedUseCase {
	return &SyncUserCreatedUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute upserts the profile mirror for the event's user.
func (uc *SyncUserCreatedUseCase) Execute(ctx context.Context, cmd SyncUserCreatedCommand) (*identity.Profile, error) {
	if cmd.Event.ID == "" {
		return nil, apperrors.NewValidationError("event user ID is required")
	}

	existing, err := uc.profileRepo.GetByID(ctx, cmd.Event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil {
		return uc.refreshEmail(ctx, existing, cmd.Event.Email)
	}

	profile, err := identity.NewProfileFromIdentity(cmd.Event.ID, cmd.Event.Email, cmd.Event.Metadata)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		// A concurrent delivery won the insert; fall back to the sync path.
		if apperrors.IsDuplicateError(err) {
			winner, getErr := uc.profileRepo.GetByID(ctx, cmd.Event.ID)
			if getErr != nil || winner == nil {
				return nil, fmt.Errorf("failed to reload profile after duplicate insert: %w", err)
			}
			return uc.refreshEmail(ctx, winner, cmd.Event.Email)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	uc.logger.Infow("profile created from identity event",
		"user_id", profile.ID(),
		"email", profile.Email(),
	)
	return profile, nil
}

func (uc *SyncUserCreatedUseCase) refreshEmail(ctx context.Context, profile *identity.Profile, email string) (*identity.Profile, error) {
	changed, err := profile.SyncEmail(email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !changed {
		return profile, nil
	}

	if err := uc.profileRepo.UpdateEmail(ctx, profile.ID(), profile.Email()); err != nil {
		return nil, fmt.Errorf("failed to update profile email: %w", err)
	}
	uc.logger.Infow("profile email refreshed from redelivered event",
		"user_id", profile.ID(),
	)
	return profile, nil
}
