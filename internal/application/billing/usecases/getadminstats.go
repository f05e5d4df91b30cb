package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	"chatledger/internal/shared/biztime"
	"chatledger/internal/shared/logger"
)

// AdminStats is the operational dashboard summary.
type AdminStats struct {
	TotalUsers          int64
	NewUsersToday       int64
	ActiveSubscriptions int64
	PendingPayments     int64
	TotalRevenue        int64
	ActiveRevenue       int64
	TokensGranted       int64
	TokensSpent         int64
}

// GetAdminStatsUseCase aggregates counters for the admin dashboard.
type GetAdminStatsUseCase struct {
	profileRepo        identity.ProfileRepository
	subscriptionRepo   billing.SubscriptionRepository
	paymentRequestRepo billing.PaymentRequestRepository
	transactionRepo    ledger.TokenTransactionRepository
	logger             logger.Interface
}

// NewGetAdminStatsUseCase creates a new GetAdminStatsUseCase instance.
func NewGetAdminStatsUseCase(
	profileRepo identity.ProfileRepository,
	subscriptionRepo billing.SubscriptionRepository,
	paymentRequestRepo billing.PaymentRequestRepository,
	transactionRepo ledger.TokenTransactionRepository,
	logger logger.Interface,
) *GetAdminStatsUseCase {
	return &GetAdminStatsUseCase{
		profileRepo:        profileRepo,
		subscriptionRepo:   subscriptionRepo,
		paymentRequestRepo: paymentRequestRepo,
		transactionRepo:    transactionRepo,
		logger:             logger,
	}
}

// Execute collects the dashboard counters. The numbers are read without a
// transaction; slight skew between them is acceptable for a dashboard.
func (uc *GetAdminStatsUseCase) Execute(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.TotalUsers, err = uc.profileRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.NewUsersToday, err = uc.profileRepo.CountSince(ctx, biztime.StartOfDayUTC(biztime.NowUTC())); err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}
	if stats.ActiveSubscriptions, err = uc.subscriptionRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	if stats.PendingPayments, err = uc.paymentRequestRepo.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}
	if stats.TotalRevenue, err = uc.subscriptionRepo.SumPricePaid(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if stats.ActiveRevenue, err = uc.subscriptionRepo.SumPricePaid(ctx, true); err != nil {
		return nil, fmt.Errorf("failed to sum active revenue: %w", err)
	}
	if stats.TokensGranted, err = uc.transactionRepo.SumAmountByType(ctx, ledger.TypeGrant); err != nil {
		return nil, fmt.Errorf("failed to sum granted tokens: %w", err)
	}

	spent, err := uc.transactionRepo.SumAmountByType(ctx, ledger.TypeSpend)
	if err != nil {
		return nil, fmt.Errorf("failed to sum spent tokens: %w", err)
	}
	// Spend amounts are negative on the ledger; report them positively.
	stats.TokensSpent = -spent

	return stats, nil
}
