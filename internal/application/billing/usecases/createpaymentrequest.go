package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// CreatePaymentRequestCommand represents the input for opening a payment
// claim against a plan.
type CreatePaymentRequestCommand struct {
	UserID       string
	PlanID       uint
	BillingCycle string
}

// CreatePaymentRequestUseCase opens a pending payment request. The amount
// and plan name are frozen from the catalog at creation time so later plan
// edits cannot change what the user owes.
type CreatePaymentRequestUseCase struct {
	planRepo           billing.PlanRepository
	paymentRequestRepo billing.PaymentRequestRepository
	profileRepo        identity.ProfileRepository
	logger             logger.Interface
}

// NewCreatePaymentRequestUseCase creates a new CreatePaymentRequestUseCase instance.
func NewCreatePaymentRequestUseCase(
	planRepo billing.PlanRepository,
	paymentRequestRepo billing.PaymentRequestRepository,
	profileRepo identity.ProfileRepository,
	logger logger.Interface,
) *CreatePaymentRequestUseCase {
	return &CreatePaymentRequestUseCase{
		planRepo:           planRepo,
		paymentRequestRepo: paymentRequestRepo,
		profileRepo:        profileRepo,
		logger:             logger,
	}
}

// Execute creates the pending request.
func (uc *CreatePaymentRequestUseCase) Execute(ctx context.Context, cmd CreatePaymentRequestCommand) (*billing.PaymentRequest, error) {
	cycle, err := vo.NewBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	profile, err := uc.profileRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
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

	req, err := billing.NewPaymentRequest(cmd.UserID, plan, cycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.paymentRequestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}

	uc.logger.Infow("payment request created",
		"user_id", cmd.UserID,
		"plan", plan.Slug(),
		"amount", req.Amount(),
	)
	return req, nil
}
