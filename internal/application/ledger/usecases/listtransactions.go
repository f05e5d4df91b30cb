package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/ledger"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// ListTransactionsCommand represents the input for listing ledger entries.
type ListTransactionsCommand struct {
	UserID   string
	Type     string
	Page     int
	PageSize int
}

// ListTransactionsUseCase lists a user's ledger entries newest first.
type ListTransactionsUseCase struct {
	transactionRepo ledger.TokenTransactionRepository
	logger          logger.Interface
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo ledger.TokenTransactionRepository,
	logger logger.Interface,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Execute lists ledger entries for one user with optional type filtering.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, cmd ListTransactionsCommand) ([]*ledger.TokenTransaction, int64, error) {
	if cmd.UserID == "" {
		return nil, 0, apperrors.NewValidationError("user ID is required")
	}

	filter := ledger.TransactionFilter{
		UserID:   cmd.UserID,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}
	if cmd.Type != "" {
		txType, err := ledger.NewTransactionType(cmd.Type)
		if err != nil {
			return nil, 0, apperrors.NewValidationError(err.Error())
		}
		filter.Type = &txType
	}

	entries, total, err := uc.transactionRepo.ListByUser(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, total, nil
}
