package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

// ListUserSubscriptionsUseCase lists a user's subscription history, active
// and superseded rows alike.
type ListUserSubscriptionsUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	logger           logger.Interface
}

// NewListUserSubscriptionsUseCase creates a new ListUserSubscriptionsUseCase instance.
func NewListUserSubscriptionsUseCase(subscriptionRepo billing.SubscriptionRepository, logger logger.Interface) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute lists all subscriptions for the user, newest first.
func (uc *ListUserSubscriptionsUseCase) Execute(ctx context.Context, userID string) ([]*billing.Subscription, error) {
	subs, err := uc.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
