package migration

import (
	"chatledger/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProfileModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.PaymentRequestModel{},
		&models.TokenTransactionModel{},
		&models.ContactRequestModel{},
		&models.BankSettingsModel{},
	}
}
