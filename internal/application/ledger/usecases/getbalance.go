package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// BalanceResult is the token summary returned to callers. Available comes
// from the ledger chain; the counters are the profile's denormalized view.
type BalanceResult struct {
	Available   int64
	TokensTotal int64
	TokensUsed  int64
	BonusTokens int64
}

// GetBalanceUseCase reads a user's authoritative token balance.
type GetBalanceUseCase struct {
	profileRepo     identity.ProfileRepository
	transactionRepo ledger.TokenTransactionRepository
	logger          logger.Interface
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(
	profileRepo identity.ProfileRepository,
	transactionRepo ledger.TokenTransactionRepository,
	logger logger.Interface,
) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Execute returns the balance implied by the latest ledger entry, or zero
// for a user with no ledger yet.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, userID string) (*BalanceResult, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}

	latest, err := uc.transactionRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest ledger entry: %w", err)
	}
	available := int64(0)
	if latest != nil {
		available = latest.BalanceAfter()
	}

	return &BalanceResult{
		Available:   available,
		TokensTotal: profile.TokensTotal(),
		TokensUsed:  profile.TokensUsed(),
		BonusTokens: profile.BonusTokens(),
	}, nil
}
