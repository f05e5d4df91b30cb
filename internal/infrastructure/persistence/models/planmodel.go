package models

import (
	"time"

	"gorm.io/datatypes"

	"chatledger/internal/shared/constants"
)

// PlanModel is the persistence model for the plan catalog.
type PlanModel struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement"`
	Slug               string `gorm:"size:100;not null;uniqueIndex"`
	Name               string `gorm:"size:255;not null"`
	MonthlyPrice       int64  `gorm:"not null;default:0"`
	YearlyPrice        int64  `gorm:"not null;default:0"`
	TokensTotal        int64  `gorm:"not null;default:0"`
	TokensMonthlyLimit int64  `gorm:"not null;default:0"`
	Features           datatypes.JSON
	SortOrder          int  `gorm:"not null;default:0"`
	IsActive           bool `gorm:"not null;default:true;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
