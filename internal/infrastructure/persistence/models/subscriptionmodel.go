package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscription enrollments.
// Plan name, price, and token allowance are denormalized at activation time.
type SubscriptionModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	UserID           string `gorm:"size:36;not null;index:idx_subscriptions_user_status"`
	PlanID           uint   `gorm:"not null;index"`
	PlanName         string `gorm:"size:255;not null"`
	BillingCycle     string `gorm:"size:20;not null"`
	PricePaid        int64  `gorm:"not null;default:0"`
	TokensTotal      int64  `gorm:"not null;default:0"`
	TokensUsed       int64  `gorm:"not null;default:0"`
	Status           string `gorm:"size:20;not null;index:idx_subscriptions_user_status"`
	StartedAt        time.Time
	ExpiresAt        time.Time `gorm:"index"`
	CancelledAt      *time.Time
	CancelReason     *string `gorm:"size:500"`
	ActivatedByAdmin bool    `gorm:"not null;default:false"`
	AdminNotes       *string `gorm:"size:1000"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
