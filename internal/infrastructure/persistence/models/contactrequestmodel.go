package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// ContactRequestModel is the persistence model for contact-form submissions.
type ContactRequestModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (ContactRequestModel) TableName() string {
	return constants.TableContactRequests
}
