package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

const expireBatchSize = 100

// ExpirePaymentRequestsUseCase sweeps pending payment requests past their
// expiry into the expired state. Run periodically by the scheduler; resolve
// operations also expire lazily, so the sweep only tidies what nobody
// touched.
type ExpirePaymentRequestsUseCase struct {
	txManager          TransactionManager
	paymentRequestRepo billing.PaymentRequestRepository
	logger             logger.Interface
}

// NewExpirePaymentRequestsUseCase creates a new ExpirePaymentRequestsUseCase instance.
func NewExpirePaymentRequestsUseCase(
	txManager TransactionManager,
	paymentRequestRepo billing.PaymentRequestRepository,
	logger logger.Interface,
) *ExpirePaymentRequestsUseCase {
	return &ExpirePaymentRequestsUseCase{
		txManager:          txManager,
		paymentRequestRepo: paymentRequestRepo,
		logger:             logger,
	}
}

// Execute expires one batch and returns how many rows moved.
func (uc *ExpirePaymentRequestsUseCase) Execute(ctx context.Context) (int, error) {
	expired := 0
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		reqs, err := uc.paymentRequestRepo.ListExpiredPending(txCtx, expireBatchSize)
		if err != nil {
			return fmt.Errorf("failed to list expired pending requests: %w", err)
		}

		for _, req := range reqs {
			if err := req.MarkAsExpired(); err != nil {
				return fmt.Errorf("failed to expire payment request %d: %w", req.ID(), err)
			}
			if err := uc.paymentRequestRepo.Update(txCtx, req); err != nil {
				return fmt.Errorf("failed to update payment request %d: %w", req.ID(), err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		uc.logger.Infow("expired pending payment requests", "count", expired)
	}
	return expired, nil
}
