// Package dto maps domain aggregates to API response shapes.
package dto

import (
	"time"

	"chatledger/internal/domain/identity"
)

type ProfileDTO struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	FullName           string     `json:"full_name"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionStatus string     `json:"subscription_status"`
	TokensTotal        int64      `json:"tokens_total"`
	TokensUsed         int64      `json:"tokens_used"`
	BonusTokens        int64      `json:"bonus_tokens"`
	IsBanned           bool       `json:"is_banned"`
	BannedAt           *time.Time `json:"banned_at,omitempty"`
	BanReason          *string    `json:"ban_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ProfileFromEntity(p *identity.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                 p.ID(),
		Email:              p.Email(),
		Username:           p.Username(),
		FullName:           p.FullName(),
		AvatarURL:          p.AvatarURL(),
		SubscriptionTier:   p.SubscriptionTier(),
		SubscriptionStatus: p.SubscriptionStatus(),
		TokensTotal:        p.TokensTotal(),
		TokensUsed:         p.TokensUsed(),
		BonusTokens:        p.BonusTokens(),
		IsBanned:           p.IsBanned(),
		BannedAt:           p.BannedAt(),
		BanReason:          p.BanReason(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func ProfilesFromEntities(profiles []*identity.Profile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ProfileFromEntity(p))
	}
	return out
}
