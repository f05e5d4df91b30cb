package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/contact"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

// CreateContactRequestCommand represents an inbound contact-form submission.
type CreateContactRequestCommand struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateContactRequestUseCase stores a contact-form submission.
type CreateContactRequestUseCase struct {
	contactRepo contact.ContactRequestRepository
	logger      logger.Interface
}

// NewCreateContactRequestUseCase creates a new CreateContactRequestUseCase instance.
func NewCreateContactRequestUseCase(contactRepo contact.ContactRequestRepository, logger logger.Interface) *CreateContactRequestUseCase {
	return &CreateContactRequestUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Execute stores the submission.
func (uc *CreateContactRequestUseCase) Execute(ctx context.Context, cmd CreateContactRequestCommand) (*contact.ContactRequest, error) {
	req, err := contact.NewContactRequest(cmd.Name, cmd.Email, cmd.Subject, cmd.Message)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.contactRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create contact request: %w", err)
	}

	uc.logger.Infow("contact request received",
		"email", req.Email(),
		"subject", req.Subject(),
	)
	return req, nil
}
