package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/contact"
	"chatledger/internal/shared/logger"
)

// ListContactRequestsUseCase lists contact-form submissions for
// administrators, newest first.
type ListContactRequestsUseCase struct {
	contactRepo contact.ContactRequestRepository
	logger      logger.Interface
}

// NewListContactRequestsUseCase creates a new ListContactRequestsUseCase instance.
func NewListContactRequestsUseCase(contactRepo contact.ContactRequestRepository, logger logger.Interface) *ListContactRequestsUseCase {
	return &ListContactRequestsUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Execute lists submissions with pagination.
func (uc *ListContactRequestsUseCase) Execute(ctx context.Context, page, pageSize int) ([]*contact.ContactRequest, int64, error) {
	reqs, total, err := uc.contactRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact requests: %w", err)
	}
	return reqs, total, nil
}
