package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

// GetCurrentSubscriptionUseCase reads a user's active subscription.
type GetCurrentSubscriptionUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	logger           logger.Interface
}

// NewGetCurrentSubscriptionUseCase creates a new GetCurrentSubscriptionUseCase instance.
func NewGetCurrentSubscriptionUseCase(subscriptionRepo billing.SubscriptionRepository, logger logger.Interface) *GetCurrentSubscriptionUseCase {
	return &GetCurrentSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the active subscription or nil when the user has none.
func (uc *GetCurrentSubscriptionUseCase) Execute(ctx context.Context, userID string) (*billing.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if sub != nil && !sub.IsActive() {
		// Lapsed but not yet swept; report no active subscription.
		return nil, nil
	}
	return sub, nil
}
