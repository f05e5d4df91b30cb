package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatledger/internal/domain/billing"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// SubmitPaymentProofCommand represents the input for attaching payment
// proof to a pending request.
type SubmitPaymentProofCommand struct {
	RequestID            uint
	UserID               string
	TransactionReference string
	PaymentDate          time.Time
	ScreenshotURL        *string
}

// SubmitPaymentProofUseCase records a user's proof of payment on their own
// pending request.
type SubmitPaymentProofUseCase struct {
	paymentRequestRepo billing.PaymentRequestRepository
	logger             logger.Interface
}

// NewSubmitPaymentProofUseCase creates a new SubmitPaymentProofUseCase instance.
func NewSubmitPaymentProofUseCase(paymentRequestRepo billing.PaymentRequestRepository, logger logger.Interface) *SubmitPaymentProofUseCase {
	return &SubmitPaymentProofUseCase{
		paymentRequestRepo: paymentRequestRepo,
		logger:             logger,
	}
}

// Execute attaches the proof. Users may only touch their own requests.
func (uc *SubmitPaymentProofUseCase) Execute(ctx context.Context, cmd SubmitPaymentProofCommand) (*billing.PaymentRequest, error) {
	req, err := uc.paymentRequestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	if req == nil {
		return nil, apperrors.NewNotFoundError("payment request not found")
	}
	if req.UserID() != cmd.UserID {
		return nil, apperrors.NewForbiddenError("payment request belongs to another user")
	}

	if err := req.AttachProof(cmd.TransactionReference, cmd.PaymentDate, cmd.ScreenshotURL); err != nil {
		if errors.Is(err, billing.ErrInvalidStatusTransition) {
			return nil, apperrors.NewInvalidTransitionError(err.Error())
		}
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.paymentRequestRepo.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to update payment request: %w", err)
	}

	uc.logger.Infow("payment proof submitted",
		"request_id", req.ID(),
		"user_id", cmd.UserID,
	)
	return req, nil
}
