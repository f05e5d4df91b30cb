package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// SyncUserEmailChangedCommand carries a user.email_changed event from the
// identity provider.
type SyncUserEmailChangedCommand struct {
	Event identity.UserEmailChangedEvent
}

// SyncUserEmailChangedUseCase keeps the profile email mirror in step with
// the provider. An equal-email delivery is a no-op so the handler stays
// idempotent under redelivery.
type SyncUserEmailChangedUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewSyncUserEmailChangedUseCase creates a new SyncUserEmailChangedUseCase instance.
func NewSyncUserEmailChangedUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *SyncUserEmailChangedUseCase {
	return &SyncUserEmailChangedUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute updates the mirrored email address.
func (uc *SyncUserEmailChangedUseCase) Execute(ctx context.Context, cmd SyncUserEmailChangedCommand) error {
	if cmd.Event.ID == "" {
		return apperrors.NewValidationError("event user ID is required")
	}

	profile, err := uc.profileRepo.GetByID(ctx, cmd.Event.ID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		// Events can arrive before the creation event lands. Acknowledge so
		// the provider does not retry forever; the creation sync carries the
		// current email anyway.
		uc.logger.Warnw("email change for unknown profile, ignoring",
			"user_id", cmd.Event.ID,
		)
		return nil
	}

	changed, err := profile.SyncEmail(cmd.Event.NewEmail)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if !changed {
		return nil
	}

	if err := uc.profileRepo.UpdateEmail(ctx, profile.ID(), profile.Email()); err != nil {
		return fmt.Errorf("failed to update profile email: %w", err)
	}

	uc.logger.Infow("profile email synced",
		"user_id", profile.ID(),
	)
	return nil
}
