package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// PaymentRequestModel is the persistence model for payment claims.
type PaymentRequestModel struct {
	ID                   uint   `gorm:"primaryKey;autoIncrement"`
	UserID               string `gorm:"size:36;not null;index"`
	PlanID               uint   `gorm:"not null"`
	PlanName             string `gorm:"size:255;not null"`
	BillingCycle         string `gorm:"size:20;not null"`
	Amount               int64  `gorm:"not null"`
	Currency             string `gorm:"size:10;not null"`
	Status               string `gorm:"size:20;not null;index:idx_payment_requests_status_expires"`
	TransactionReference *string `gorm:"size:255"`
	PaymentDate          *time.Time
	PaymentScreenshotURL *string `gorm:"size:500"`
	RejectionReason      *string `gorm:"size:500"`
	AdminConfirmedAt     *time.Time
	AdminNotes           *string   `gorm:"size:1000"`
	ExpiresAt            time.Time `gorm:"index:idx_payment_requests_status_expires"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (PaymentRequestModel) TableName() string {
	return constants.TablePaymentRequests
}
