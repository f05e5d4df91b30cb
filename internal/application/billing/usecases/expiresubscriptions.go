package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/domain/identity"
	"chatledger/internal/shared/logger"
)

// ExpireSubscriptionsUseCase sweeps active subscriptions whose period has
// lapsed into the expired state and downgrades the owners' profile tier.
type ExpireSubscriptionsUseCase struct {
	txManager        TransactionManager
	subscriptionRepo billing.SubscriptionRepository
	profileRepo      identity.ProfileRepository
	logger           logger.Interface
}

// NewExpireSubscriptionsUseCase creates a new ExpireSubscriptionsUseCase instance.
func NewExpireSubscriptionsUseCase(
	txManager TransactionManager,
	subscriptionRepo billing.SubscriptionRepository,
	profileRepo identity.ProfileRepository,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		logger:           logger,
	}
}

// Execute expires one batch and returns how many rows moved.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	expired := 0
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		subs, err := uc.subscriptionRepo.ListExpiredActive(txCtx, expireBatchSize)
		if err != nil {
			return fmt.Errorf("failed to list expired subscriptions: %w", err)
		}

		for _, sub := range subs {
			if err := sub.MarkAsExpired(); err != nil {
				return fmt.Errorf("failed to expire subscription %d: %w", sub.ID(), err)
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription %d: %w", sub.ID(), err)
			}

			profile, err := uc.profileRepo.GetByIDForUpdate(txCtx, sub.UserID())
			if err != nil {
				return fmt.Errorf("failed to lock profile %s: %w", sub.UserID(), err)
			}
			if profile != nil {
				profile.SetSubscriptionInfo("free", "inactive")
				if err := uc.profileRepo.Update(txCtx, profile); err != nil {
					return fmt.Errorf("failed to update profile %s: %w", sub.UserID(), err)
				}
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		uc.logger.Infow("expired lapsed subscriptions", "count", expired)
	}
	return expired, nil
}
