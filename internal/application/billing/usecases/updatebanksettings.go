package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/billing"
	"chatledger/internal/shared/logger"
)

// UpdateBankSettingsCommand carries a partial admin edit of the transfer
// coordinates. Nil fields are left untouched.
type UpdateBankSettingsCommand struct {
	BankName               *string
	AccountHolder          *string
	AccountNumber          *string
	IBAN                   *string
	SwiftBIC               *string
	Branch                 *string
	Country                *string
	AdditionalInstructions *string
}

// UpdateBankSettingsUseCase upserts the deployment's bank transfer record.
type UpdateBankSettingsUseCase struct {
	bankSettingsRepo billing.BankSettingsRepository
	logger           logger.Interface
}

// NewUpdateBankSettingsUseCase creates a new UpdateBankSettingsUseCase instance.
func NewUpdateBankSettingsUseCase(bankSettingsRepo billing.BankSettingsRepository, logger logger.Interface) *UpdateBankSettingsUseCase {
	return &UpdateBankSettingsUseCase{
		bankSettingsRepo: bankSettingsRepo,
		logger:           logger,
	}
}

// Execute merges the command into the existing record, creating it on the
// first write.
func (uc *UpdateBankSettingsUseCase) Execute(ctx context.Context, cmd UpdateBankSettingsCommand) (*billing.BankSettings, error) {
	settings, err := uc.bankSettingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank settings: %w", err)
	}
	if settings == nil {
		settings = billing.NewBankSettings()
	}

	settings.Apply(billing.BankSettingsUpdate{
		BankName:               cmd.BankName,
		AccountHolder:          cmd.AccountHolder,
		AccountNumber:          cmd.AccountNumber,
		IBAN:                   cmd.IBAN,
		SwiftBIC:               cmd.SwiftBIC,
		Branch:                 cmd.Branch,
		Country:                cmd.Country,
		AdditionalInstructions: cmd.AdditionalInstructions,
	})

	if err := uc.bankSettingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save bank settings: %w", err)
	}

	uc.logger.Infow("bank settings updated", "bank_settings_id", settings.ID())
	return settings, nil
}
