package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

// GetBankSettingsUseCase returns the transfer coordinates users need to pay
// a manual payment request.
type GetBankSettingsUseCase struct {
	bankSettingsRepo billing.BankSettingsRepository
	logger           logger.Interface
}

// NewGetBankSettingsUseCase creates a new GetBankSettingsUseCase instance.
func NewGetBankSettingsUseCase(bankSettingsRepo billing.BankSettingsRepository, logger logger.Interface) *GetBankSettingsUseCase {
	return &GetBankSettingsUseCase{
		bankSettingsRepo: bankSettingsRepo,
		logger:           logger,
	}
}

// Execute returns the current settings, or nil when none are configured yet.
func (uc *GetBankSettingsUseCase) Execute(ctx context.Context) (*billing.BankSettings, error) {
	settings, err := uc.bankSettingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank settings: %w", err)
	}
	return settings, nil
}
