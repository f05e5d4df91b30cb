package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// ProfileModel is the persistence model for the identity profile mirror.
// The primary key is the identity provider's user ID, not an
// auto-increment.
type ProfileModel struct {
	ID                 string `gorm:"primaryKey;size:36"`
	Email              string `gorm:"size:255;not null;index"`
	Username           string `gorm:"size:100;not null"`
	FullName           string `gorm:"size:255;not null"`
	AvatarURL          string `gorm:"size:500"`
	SubscriptionTier   string `gorm:"size:50;not null;default:free"`
	SubscriptionStatus string `gorm:"size:50;not null;default:inactive"`
	TokensTotal        int64  `gorm:"not null;default:0"`
	TokensUsed         int64  `gorm:"not null;default:0"`
	BonusTokens        int64  `gorm:"not null;default:0"`
	IsBanned           bool   `gorm:"not null;default:false"`
	BannedAt           *time.Time
	BanReason          *string `gorm:"size:500"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (ProfileModel) TableName() string {
	return constants.TableProfiles
}
