package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatledger/internal/domain/billing"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

type BankSettingsRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBankSettingsRepository(db *gorm.DB, logger logger.Interface) billing.BankSettingsRepository {
	return &BankSettingsRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *BankSettingsRepositoryImpl) Get(ctx context.Context) (*billing.BankSettings, error) {
	var model models.BankSettingsModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("id ASC").First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get bank settings", "error", err)
		return nil, fmt.Errorf("failed to get bank settings: %w", err)
	}

	return r.toEntity(&model)
}

func (r *BankSettingsRepositoryImpl) Save(ctx context.Context, settings *billing.BankSettings) error {
	model := r.toModel(settings)

	tx := db.GetTxFromContext(ctx, r.db)
	if settings.ID() == 0 {
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create bank settings", "error", err)
			return fmt.Errorf("failed to create bank settings: %w", err)
		}
		if err := settings.SetID(model.ID); err != nil {
			return err
		}
		r.logger.Infow("bank settings created", "bank_settings_id", model.ID)
		return nil
	}

	result := tx.Model(&models.BankSettingsModel{}).
		Where("id = ?", settings.ID()).
		Updates(map[string]interface{}{
			"bank_name":               model.BankName,
			"account_holder":          model.AccountHolder,
			"account_number":          model.AccountNumber,
			"iban":                    model.IBAN,
			"swift_bic":               model.SwiftBIC,
			"branch":                  model.Branch,
			"country":                 model.Country,
			"additional_instructions": model.AdditionalInstructions,
			"updated_at":              model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update bank settings", "error", result.Error, "bank_settings_id", settings.ID())
		return fmt.Errorf("failed to update bank settings: %w", result.Error)
	}

	return nil
}

func (r *BankSettingsRepositoryImpl) toEntity(model *models.BankSettingsModel) (*billing.BankSettings, error) {
	return billing.ReconstructBankSettings(billing.BankSettingsReconstructParams{
		ID:                     model.ID,
		BankName:               model.BankName,
		AccountHolder:          model.AccountHolder,
		AccountNumber:          model.AccountNumber,
		IBAN:                   model.IBAN,
		SwiftBIC:               model.SwiftBIC,
		Branch:                 model.Branch,
		Country:                model.Country,
		AdditionalInstructions: model.AdditionalInstructions,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	})
}

func (r *BankSettingsRepositoryImpl) toModel(settings *billing.BankSettings) *models.BankSettingsModel {
	return &models.BankSettingsModel{
		ID:                     settings.ID(),
		BankName:               settings.BankName(),
		AccountHolder:          settings.AccountHolder(),
		AccountNumber:          settings.AccountNumber(),
		IBAN:                   settings.IBAN(),
		SwiftBIC:               settings.SwiftBIC(),
		Branch:                 settings.Branch(),
		Country:                settings.Country(),
		AdditionalInstructions: settings.AdditionalInstructions(),
		CreatedAt:              settings.CreatedAt(),
		UpdatedAt:              settings.UpdatedAt(),
	}
}
