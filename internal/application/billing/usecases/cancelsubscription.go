package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// CancelSubscriptionCommand represents the input for cancelling a user's
// active subscription.
type CancelSubscriptionCommand struct {
	UserID string
	Reason string
}

// CancelSubscriptionUseCase cancels the user's active subscription. Already
// granted tokens stay on the ledger; only the enrollment ends.
type CancelSubscriptionUseCase struct {
	txManager        TransactionManager
	subscriptionRepo billing.SubscriptionRepository
	profileRepo      identity.ProfileRepository
	logger           logger.Interface
}

// NewCancelSubscriptionUseCase creates a new CancelSubscriptionUseCase instance.
func NewCancelSubscriptionUseCase(
	txManager TransactionManager,
	subscriptionRepo billing.SubscriptionRepository,
	profileRepo identity.ProfileRepository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		logger:           logger,
	}
}

// Execute cancels the active subscription and downgrades the profile's
// denormalized tier in the same transaction.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*billing.Subscription, error) {
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("cancel reason is required")
	}

	var sub *billing.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		profile, err := uc.profileRepo.GetByIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock profile: %w", err)
		}
		if profile == nil {
			return apperrors.NewNotFoundError("profile not found")
		}

		current, err := uc.subscriptionRepo.GetActiveByUserForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get active subscription: %w", err)
		}
		if current == nil {
			return apperrors.NewNotFoundError("no active subscription")
		}

		if err := current.Cancel(cmd.Reason); err != nil {
			return apperrors.NewInvalidTransitionError(err.Error())
		}
		if err := uc.subscriptionRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		profile.SetSubscriptionInfo("free", "inactive")
		if err := uc.profileRepo.Update(txCtx, profile); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		sub = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("subscription cancelled",
		"user_id", cmd.UserID,
		"subscription_id", sub.ID(),
	)
	return sub, nil
}
