package usecases

import (
	"context"
	"errors"
	"fmt"

	"chatledger/internal/domain/billing"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// Resolution actions accepted by ResolvePaymentRequest.
const (
	ResolutionConfirm = "confirm"
	ResolutionReject  = "reject"
)

// ResolvePaymentRequestCommand represents the administrative decision on a
// pending payment request.
type ResolvePaymentRequestCommand struct {
	RequestID       uint
	Action          string
	AdminNotes      *string
	RejectionReason string
}

// ResolvePaymentRequestUseCase applies an admin's confirm or reject decision.
// Confirmation activates the purchased subscription in the same transaction,
// so a confirmed request and its subscription are never observed apart.
type ResolvePaymentRequestUseCase struct {
	txManager            TransactionManager
	paymentRequestRepo   billing.PaymentRequestRepository
	activateSubscription *ActivateSubscriptionUseCase
	logger               logger.Interface
}

// NewResolvePaymentRequestUseCase creates a new ResolvePaymentRequestUseCase instance.
func NewResolvePaymentRequestUseCase(
	txManager TransactionManager,
	paymentRequestRepo billing.PaymentRequestRepository,
	activateSubscription *ActivateSubscriptionUseCase,
	logger logger.Interface,
) *ResolvePaymentRequestUseCase {
	return &ResolvePaymentRequestUseCase{
		txManager:            txManager,
		paymentRequestRepo:   paymentRequestRepo,
		activateSubscription: activateSubscription,
		logger:               logger,
	}
}

// Execute resolves the request. Requests past their expiry are moved to
// expired instead of resolving, whatever the requested action; the expiry
// write commits even though the resolution itself is refused, so the
// transaction returns nil for that path and the error is raised afterwards.
func (uc *ResolvePaymentRequestUseCase) Execute(ctx context.Context, cmd ResolvePaymentRequestCommand) (*billing.PaymentRequest, error) {
	if cmd.Action != ResolutionConfirm && cmd.Action != ResolutionReject {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown resolution action: %s", cmd.Action))
	}
	if cmd.Action == ResolutionReject && cmd.RejectionReason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required")
	}

	var req *billing.PaymentRequest
	var expired bool
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, wasExpired, err := uc.resolveInTx(txCtx, cmd)
		if err != nil {
			return err
		}
		req = r
		expired = wasExpired
		return nil
	})
	if err != nil {
		if apperrors.IsRetryableDBError(err) {
			return nil, apperrors.NewConflictRetryError("payment resolution conflicted, please retry")
		}
		return nil, err
	}
	if expired {
		return nil, apperrors.NewInvalidTransitionError("payment request has expired")
	}
	return req, nil
}

func (uc *ResolvePaymentRequestUseCase) resolveInTx(ctx context.Context, cmd ResolvePaymentRequestCommand) (*billing.PaymentRequest, bool, error) {
	req, err := uc.paymentRequestRepo.GetByIDForUpdate(ctx, cmd.RequestID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get payment request: %w", err)
	}
	if req == nil {
		return nil, false, apperrors.NewNotFoundError("payment request not found")
	}

	if req.IsExpired() {
		if err := req.MarkAsExpired(); err != nil {
			return nil, false, fmt.Errorf("failed to expire payment request: %w", err)
		}
		if err := uc.paymentRequestRepo.Update(ctx, req); err != nil {
			return nil, false, fmt.Errorf("failed to update payment request: %w", err)
		}
		uc.logger.Infow("payment request expired on resolution attempt",
			"request_id", req.ID(),
		)
		return req, true, nil
	}

	switch cmd.Action {
	case ResolutionConfirm:
		if err := req.Confirm(cmd.AdminNotes); err != nil {
			return nil, false, mapTransitionError(err)
		}
		if err := uc.paymentRequestRepo.Update(ctx, req); err != nil {
			return nil, false, fmt.Errorf("failed to update payment request: %w", err)
		}
		_, err := uc.activateSubscription.ExecuteInTx(ctx, ActivateSubscriptionCommand{
			UserID:           req.UserID(),
			PlanID:           req.PlanID(),
			BillingCycle:     req.BillingCycle().String(),
			ActivatedByAdmin: true,
			AdminNotes:       cmd.AdminNotes,
		})
		if err != nil {
			return nil, false, err
		}
	case ResolutionReject:
		if err := req.Reject(cmd.RejectionReason); err != nil {
			return nil, false, mapTransitionError(err)
		}
		if err := uc.paymentRequestRepo.Update(ctx, req); err != nil {
			return nil, false, fmt.Errorf("failed to update payment request: %w", err)
		}
	}

	uc.logger.Infow("payment request resolved",
		"request_id", req.ID(),
		"action", cmd.Action,
		"status", req.Status().String(),
	)
	return req, false, nil
}

func mapTransitionError(err error) error {
	if errors.Is(err, billing.ErrInvalidStatusTransition) {
		return apperrors.NewInvalidTransitionError(err.Error())
	}
	return apperrors.NewValidationError(err.Error())
}
