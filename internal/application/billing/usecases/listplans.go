package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

// ListPlansUseCase lists the purchasable plan catalog ordered for display.
type ListPlansUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

// NewListPlansUseCase creates a new ListPlansUseCase instance.
func NewListPlansUseCase(planRepo billing.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

// Execute returns the active plans.
func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*billing.Plan, error) {
	plans, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
