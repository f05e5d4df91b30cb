package identity

import (
	"fmt"
	"strings"
	"time"

	"chatledger/internal/shared/biztime"
)

// Profile is the application-owned mirror of an identity-provider user
// record. It is created reactively from identity events, never by direct
// user action, and its email always tracks the provider's current value.
type Profile struct {
	id                 string
	email              string
	username           string
	fullName           string
	avatarURL          string
	subscriptionTier   string
	subscriptionStatus string
	tokensTotal        int64
	tokensUsed         int64
	bonusTokens        int64
	isBanned           bool
	bannedAt           *time.Time
	banReason          *string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewProfileFromIdentity creates a profile from a provider user record.
// Display fields default from the event metadata, falling back to the
// local-part of the email address.
func NewProfileFromIdentity(id, email string, meta UserMetadata) (*Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("identity ID is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	username := meta.Username
	if username == "" {
		username = emailLocalPart(email)
	}
	fullName := meta.FullName
	if fullName == "" {
		fullName = emailLocalPart(email)
	}

	now := biztime.NowUTC()
	return &Profile{
		id:                 id,
		email:              email,
		username:           username,
		fullName:           fullName,
		avatarURL:          meta.AvatarURL,
		subscriptionTier:   "free",
		subscriptionStatus: "inactive",
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ProfileReconstructParams carries persisted state back into the aggregate.
type ProfileReconstructParams struct {
	ID                 string
	Email              string
	Username           string
	FullName           string
	AvatarURL          string
	SubscriptionTier   string
	SubscriptionStatus string
	TokensTotal        int64
	TokensUsed         int64
	BonusTokens        int64
	IsBanned           bool
	BannedAt           *time.Time
	BanReason          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructProfile reconstructs a profile from persistence.
func ReconstructProfile(p ProfileReconstructParams) (*Profile, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("identity ID is required")
	}
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}

	return &Profile{
		id:                 p.ID,
		email:              p.Email,
		username:           p.Username,
		fullName:           p.FullName,
		avatarURL:          p.AvatarURL,
		subscriptionTier:   p.SubscriptionTier,
		subscriptionStatus: p.SubscriptionStatus,
		tokensTotal:        p.TokensTotal,
		tokensUsed:         p.TokensUsed,
		bonusTokens:        p.BonusTokens,
		isBanned:           p.IsBanned,
		bannedAt:           p.BannedAt,
		banReason:          p.BanReason,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}, nil
}

func (p *Profile) ID() string                 { return p.id }
func (p *Profile) Email() string              { return p.email }
func (p *Profile) Username() string           { return p.username }
func (p *Profile) FullName() string           { return p.fullName }
func (p *Profile) AvatarURL() string          { return p.avatarURL }
func (p *Profile) SubscriptionTier() string   { return p.subscriptionTier }
func (p *Profile) SubscriptionStatus() string { return p.subscriptionStatus }
func (p *Profile) TokensTotal() int64         { return p.tokensTotal }
func (p *Profile) TokensUsed() int64          { return p.tokensUsed }
func (p *Profile) BonusTokens() int64         { return p.bonusTokens }
func (p *Profile) IsBanned() bool             { return p.isBanned }
func (p *Profile) BannedAt() *time.Time       { return p.bannedAt }
func (p *Profile) BanReason() *string         { return p.banReason }
func (p *Profile) CreatedAt() time.Time       { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time       { return p.updatedAt }

// TokensAvailable returns the spendable balance implied by the counters.
// The ledger remains the authoritative balance; this is the denormalized view.
func (p *Profile) TokensAvailable() int64 {
	available := p.tokensTotal - p.tokensUsed
	if available < 0 {
		return 0
	}
	return available
}

// SyncEmail updates the mirrored email address. It reports whether anything
// changed so re-delivered events stay observable no-ops.
func (p *Profile) SyncEmail(newEmail string) (bool, error) {
	if err := validateEmail(newEmail); err != nil {
		return false, err
	}
	if p.email == newEmail {
		return false, nil
	}

	p.email = newEmail
	p.updatedAt = biztime.NowUTC()
	return true, nil
}

// RecordTokenGrant adds granted tokens to the denormalized counters.
func (p *Profile) RecordTokenGrant(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("grant amount must be positive")
	}
	p.tokensTotal += amount
	p.updatedAt = biztime.NowUTC()
	return nil
}

// RecordBonusTokens adds bonus tokens, which count toward the total as well.
func (p *Profile) RecordBonusTokens(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("bonus amount must be positive")
	}
	p.bonusTokens += amount
	p.tokensTotal += amount
	p.updatedAt = biztime.NowUTC()
	return nil
}

// RecordTokenSpend adds spent tokens to the denormalized counters.
func (p *Profile) RecordTokenSpend(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("spend amount must be positive")
	}
	p.tokensUsed += amount
	p.updatedAt = biztime.NowUTC()
	return nil
}

// SetSubscriptionInfo updates the denormalized subscription summary.
func (p *Profile) SetSubscriptionInfo(tier, status string) {
	if p.subscriptionTier == tier && p.subscriptionStatus == status {
		return
	}
	p.subscriptionTier = tier
	p.subscriptionStatus = status
	p.updatedAt = biztime.NowUTC()
}

// Ban blocks the user from the chat service.
func (p *Profile) Ban(reason string) error {
	if reason == "" {
		return fmt.Errorf("ban reason is required")
	}
	if p.isBanned {
		return nil
	}

	now := biztime.NowUTC()
	p.isBanned = true
	p.bannedAt = &now
	p.banReason = &reason
	p.updatedAt = now
	return nil
}

// Unban lifts a ban. No-op when not banned.
func (p *Profile) Unban() {
	if !p.isBanned {
		return
	}
	p.isBanned = false
	p.bannedAt = nil
	p.banReason = nil
	p.updatedAt = biztime.NowUTC()
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
