package usecases

import (
	"context"
	"fmt"

	ledgerusecases "chatledger/internal/application/ledger/usecases"
	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// ActivateSubscriptionCommand represents the input for activating a
// subscription for a user.
type ActivateSubscriptionCommand struct {
	UserID           string
	PlanID           uint
	BillingCycle     string
	ActivatedByAdmin bool
	AdminNotes       *string
}

// ActivateSubscriptionUseCase enrolls a user in a plan. Any previously
// active subscription is superseded in the same transaction, so at most one
// row per user is ever active, and the plan's token allowance lands on the
// ledger atomically with the enrollment.
type ActivateSubscriptionUseCase struct {
	txManager        TransactionManager
	planRepo         billing.PlanRepository
	subscriptionRepo billing.SubscriptionRepository
	profileRepo      identity.ProfileRepository
	applyTokenDelta  *ledgerusecases.ApplyTokenDeltaUseCase
	logger           logger.Interface
}

// NewActivateSubscriptionUseCase creates a new ActivateSubscriptionUseCase instance.
func NewActivateSubscriptionUseCase(
	txManager TransactionManager,
	planRepo billing.PlanRepository,
	subscriptionRepo billing.SubscriptionRepository,
	profileRepo identity.ProfileRepository,
	applyTokenDelta *ledgerusecases.ApplyTokenDeltaUseCase,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		txManager:        txManager,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		applyTokenDelta:  applyTokenDelta,
		logger:           logger,
	}
}

// Execute activates the subscription in its own transaction.
func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*billing.Subscription, error) {
	var sub *billing.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		s, err := uc.ExecuteInTx(txCtx, cmd)
		if err != nil {
			return err
		}
		sub = s
		return nil
	})
	if err != nil {
		if apperrors.IsRetryableDBError(err) {
			return nil, apperrors.NewConflictRetryError("subscription activation conflicted, please retry")
		}
		return nil, err
	}
	return sub, nil
}

// ExecuteInTx activates the subscription inside the caller's transaction.
// Used by payment resolution so confirmation and activation commit together.
func (uc *ActivateSubscriptionUseCase) ExecuteInTx(ctx context.Context, cmd ActivateSubscriptionCommand) (*billing.Subscription, error) {
	cycle, err := vo.NewBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	// Lock order: profile row first, matching every other ledger mutation.
	profile, err := uc.profileRepo.GetByIDForUpdate(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	if !plan.IsActive() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("plan %s is not active", plan.Slug()))
	}

	current, err := uc.subscriptionRepo.GetActiveByUserForUpdate(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if current != nil {
		if err := current.Supersede(); err != nil {
			return nil, apperrors.NewInvalidTransitionError(err.Error())
		}
		if err := uc.subscriptionRepo.Update(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to supersede subscription: %w", err)
		}
	}

	sub, err := billing.NewSubscription(cmd.UserID, plan, cycle, cmd.ActivatedByAdmin)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.AdminNotes != nil {
		sub.SetAdminNotes(*cmd.AdminNotes)
	}
	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	profile.SetSubscriptionInfo(plan.Slug(), "active")
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile subscription info: %w", err)
	}

	if plan.TokensTotal() > 0 {
		_, err := uc.applyTokenDelta.ExecuteInTx(ctx, ledgerusecases.ApplyTokenDeltaCommand{
			UserID:     cmd.UserID,
			Amount:     plan.TokensTotal(),
			Type:       "grant",
			Reason:     "subscription:" + plan.Slug(),
			AdminNotes: cmd.AdminNotes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to grant subscription tokens: %w", err)
		}
	}

	uc.logger.Infow("subscription activated",
		"user_id", cmd.UserID,
		"plan", plan.Slug(),
		"cycle", cycle.String(),
		"by_admin", cmd.ActivatedByAdmin,
	)
	return sub, nil
}
