package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// ListPaymentRequestsCommand represents the input for the administrative
// payment request listing.
type ListPaymentRequestsCommand struct {
	UserID   string
	Status   string
	Page     int
	PageSize int
}

// ListPaymentRequestsUseCase lists payment requests. Users see only their
// own; the administrative listing filters across all users.
type ListPaymentRequestsUseCase struct {
	paymentRequestRepo billing.PaymentRequestRepository
	logger             logger.Interface
}

// NewListPaymentRequestsUseCase creates a new ListPaymentRequestsUseCase instance.
func NewListPaymentRequestsUseCase(paymentRequestRepo billing.PaymentRequestRepository, logger logger.Interface) *ListPaymentRequestsUseCase {
	return &ListPaymentRequestsUseCase{
		paymentRequestRepo: paymentRequestRepo,
		logger:             logger,
	}
}

// ExecuteForUser lists one user's own requests, newest first.
func (uc *ListPaymentRequestsUseCase) ExecuteForUser(ctx context.Context, userID string) ([]*billing.PaymentRequest, error) {
	reqs, err := uc.paymentRequestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return reqs, nil
}

// Execute lists requests across users with optional filtering.
func (uc *ListPaymentRequestsUseCase) Execute(ctx context.Context, cmd ListPaymentRequestsCommand) ([]*billing.PaymentRequest, int64, error) {
	filter := billing.PaymentRequestFilter{
		UserID:   cmd.UserID,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}
	if cmd.Status != "" {
		status, err := vo.NewPaymentStatus(cmd.Status)
		if err != nil {
			return nil, 0, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	reqs, total, err := uc.paymentRequestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return reqs, total, nil
}
