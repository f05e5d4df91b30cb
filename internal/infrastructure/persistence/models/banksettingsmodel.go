package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// BankSettingsModel is the persistence model for the single bank transfer record.
type BankSettingsModel struct {
	ID                     uint   `gorm:"primaryKey;autoIncrement"`
	BankName               string `gorm:"size:255;not null;default:''"`
	AccountHolder          string `gorm:"size:255;not null;default:''"`
	AccountNumber          string `gorm:"size:100;not null;default:''"`
	IBAN                   string `gorm:"column:iban;size:64;not null;default:''"`
	SwiftBIC               string `gorm:"column:swift_bic;size:32;not null;default:''"`
	Branch                 string `gorm:"size:255;not null;default:''"`
	Country                string `gorm:"size:100;not null;default:''"`
	AdditionalInstructions string `gorm:"size:1000;not null;default:''"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (BankSettingsModel) TableName() string {
	return constants.TableBankSettings
}
