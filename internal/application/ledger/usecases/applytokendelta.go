package usecases

import (
	"context"
	"errors"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	"chatledger/internal/shared/constants"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// ApplyTokenDeltaCommand represents the input for applying a signed token
// delta to a user's ledger.
type ApplyTokenDeltaCommand struct {
	UserID     string
	Amount     int64
	Type       string
	Reason     string
	AdminNotes *string
}

// ApplyTokenDeltaUseCase appends one entry to a user's token ledger and
// keeps the denormalized profile counters in step, all inside a single
// transaction serialized on the user's profile row.
type ApplyTokenDeltaUseCase struct {
	txManager        TransactionManager
	profileRepo      identity.ProfileRepository
	transactionRepo  ledger.TokenTransactionRepository
	subscriptionRepo billing.SubscriptionRepository
	logger           logger.Interface
}

// NewApplyTokenDeltaUseCase creates a new ApplyTokenDeltaUseCase instance.
func NewApplyTokenDeltaUseCase(
	txManager TransactionManager,
	profileRepo identity.ProfileRepository,
	transactionRepo ledger.TokenTransactionRepository,
	subscriptionRepo billing.SubscriptionRepository,
	logger logger.Interface,
) *ApplyTokenDeltaUseCase {
	return &ApplyTokenDeltaUseCase{
		txManager:        txManager,
		profileRepo:      profileRepo,
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute applies the delta in its own transaction. Engine-level lock
// contention is retried a bounded number of times before surfacing as a
// retryable conflict to the caller.
func (uc *ApplyTokenDeltaUseCase) Execute(ctx context.Context, cmd ApplyTokenDeltaCommand) (*ledger.TokenTransaction, error) {
	var entry *ledger.TokenTransaction
	var lastErr error

	for attempt := 1; attempt <= constants.LedgerConflictMaxAttempts; attempt++ {
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			e, err := uc.ExecuteInTx(txCtx, cmd)
			if err != nil {
				return err
			}
			entry = e
			return nil
		})
		if err == nil {
			return entry, nil
		}
		if !apperrors.IsRetryableDBError(err) {
			return nil, err
		}

		lastErr = err
		uc.logger.Warnw("retrying token delta after lock contention",
			"user_id", cmd.UserID,
			"attempt", attempt,
			"error", err,
		)
	}

	uc.logger.Errorw("token delta exhausted retries",
		"user_id", cmd.UserID,
		"error", lastErr,
	)
	return nil, apperrors.NewConflictRetryError("token ledger is busy, please retry")
}

// ExecuteInTx applies the delta inside the caller's transaction. The caller
// is responsible for the surrounding transaction; this method acquires the
// profile row lock that serializes all ledger writes for the user.
func (uc *ApplyTokenDeltaUseCase) ExecuteInTx(ctx context.Context, cmd ApplyTokenDeltaCommand) (*ledger.TokenTransaction, error) {
	txType, err := ledger.NewTransactionType(cmd.Type)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.Amount == 0 {
		return nil, apperrors.NewValidationError("amount cannot be zero")
	}
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("reason is required")
	}

	// The profile row is the lock anchor even when the ledger is empty.
	profile, err := uc.profileRepo.GetByIDForUpdate(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}

	latest, err := uc.transactionRepo.GetLatestByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest ledger entry: %w", err)
	}
	balanceBefore := int64(0)
	if latest != nil {
		balanceBefore = latest.BalanceAfter()
	}

	entry, err := ledger.NewTokenTransaction(cmd.UserID, cmd.Amount, txType, cmd.Reason, balanceBefore, cmd.AdminNotes)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return nil, apperrors.NewInsufficientBalanceError("insufficient token balance", err.Error())
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.transactionRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	if err := uc.updateProfileCounters(profile, cmd.Amount, txType); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile counters: %w", err)
	}

	if txType == ledger.TypeSpend {
		if err := uc.consumeSubscriptionAllowance(ctx, cmd.UserID, -cmd.Amount); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("token delta applied",
		"user_id", cmd.UserID,
		"amount", cmd.Amount,
		"type", string(txType),
		"balance_after", entry.BalanceAfter(),
	)
	return entry, nil
}

func (uc *ApplyTokenDeltaUseCase) updateProfileCounters(profile *identity.Profile, amount int64, txType ledger.TransactionType) error {
	if amount > 0 {
		if txType == ledger.TypeBonus {
			return profile.RecordBonusTokens(amount)
		}
		return profile.RecordTokenGrant(amount)
	}
	return profile.RecordTokenSpend(-amount)
}

func (uc *ApplyTokenDeltaUseCase) consumeSubscriptionAllowance(ctx context.Context, userID string, amount int64) error {
	sub, err := uc.subscriptionRepo.GetActiveByUserForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active subscription: %w", err)
	}
	if sub == nil || !sub.IsActive() {
		return nil
	}

	if err := sub.ConsumeTokens(amount); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription usage: %w", err)
	}
	return nil
}
