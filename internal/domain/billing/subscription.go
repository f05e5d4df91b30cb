package billing

import (
	"fmt"
	"time"

	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/shared/biztime"
)

// Subscription is a user's enrollment in a plan. A user may accumulate
// many historical rows, but at most one is active at any observed instant;
// activation supersedes the previous active row inside one transaction.
type Subscription struct {
	id               uint
	userID           string
	planID           uint
	planName         string
	billingCycle     vo.BillingCycle
	pricePaid        int64
	tokensTotal      int64
	tokensUsed       int64
	status           vo.SubscriptionStatus
	startedAt        time.Time
	expiresAt        time.Time
	cancelledAt      *time.Time
	cancelReason     *string
	activatedByAdmin bool
	adminNotes       *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscription creates an active subscription starting now.
func NewSubscription(userID string, plan *Plan, cycle vo.BillingCycle, activatedByAdmin bool) (*Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}
	if plan.ID() == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	now := biztime.NowUTC()
	return &Subscription{
		userID:           userID,
		planID:           plan.ID(),
		planName:         plan.Name(),
		billingCycle:     cycle,
		pricePaid:        plan.PriceFor(cycle),
		tokensTotal:      plan.TokensTotal(),
		status:           vo.SubscriptionActive,
		startedAt:        now,
		expiresAt:        cycle.PeriodEnd(now),
		activatedByAdmin: activatedByAdmin,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the aggregate.
type SubscriptionReconstructParams struct {
	ID               uint
	UserID           string
	PlanID           uint
	PlanName         string
	BillingCycle     vo.BillingCycle
	PricePaid        int64
	TokensTotal      int64
	TokensUsed       int64
	Status           vo.SubscriptionStatus
	StartedAt        time.Time
	ExpiresAt        time.Time
	CancelledAt      *time.Time
	CancelReason     *string
	ActivatedByAdmin bool
	AdminNotes       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidSubscriptionStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:               p.ID,
		userID:           p.UserID,
		planID:           p.PlanID,
		planName:         p.PlanName,
		billingCycle:     p.BillingCycle,
		pricePaid:        p.PricePaid,
		tokensTotal:      p.TokensTotal,
		tokensUsed:       p.TokensUsed,
		status:           p.Status,
		startedAt:        p.StartedAt,
		expiresAt:        p.ExpiresAt,
		cancelledAt:      p.CancelledAt,
		cancelReason:     p.CancelReason,
		activatedByAdmin: p.ActivatedByAdmin,
		adminNotes:       p.AdminNotes,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                        { return s.id }
func (s *Subscription) UserID() string                  { return s.userID }
func (s *Subscription) PlanID() uint                    { return s.planID }
func (s *Subscription) PlanName() string                { return s.planName }
func (s *Subscription) BillingCycle() vo.BillingCycle   { return s.billingCycle }
func (s *Subscription) PricePaid() int64                { return s.pricePaid }
func (s *Subscription) TokensTotal() int64              { return s.tokensTotal }
func (s *Subscription) TokensUsed() int64               { return s.tokensUsed }
func (s *Subscription) Status() vo.SubscriptionStatus   { return s.status }
func (s *Subscription) StartedAt() time.Time            { return s.startedAt }
func (s *Subscription) ExpiresAt() time.Time            { return s.expiresAt }
func (s *Subscription) CancelledAt() *time.Time         { return s.cancelledAt }
func (s *Subscription) CancelReason() *string           { return s.cancelReason }
func (s *Subscription) ActivatedByAdmin() bool          { return s.activatedByAdmin }
func (s *Subscription) AdminNotes() *string             { return s.adminNotes }
func (s *Subscription) CreatedAt() time.Time            { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time            { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// SetAdminNotes attaches administrative notes.
func (s *Subscription) SetAdminNotes(notes string) {
	s.adminNotes = &notes
	s.updatedAt = biztime.NowUTC()
}

// Supersede marks the subscription as replaced by a newer activation.
// The row stays as immutable history; nothing is deleted.
func (s *Subscription) Supersede() error {
	if s.status == vo.SubscriptionSuperseded {
		return nil
	}
	if !s.status.CanTransitionTo(vo.SubscriptionSuperseded) {
		return fmt.Errorf("cannot supersede subscription with status %s", s.status)
	}

	s.status = vo.SubscriptionSuperseded
	s.updatedAt = biztime.NowUTC()
	return nil
}

// Cancel cancels an active subscription with a reason.
func (s *Subscription) Cancel(reason string) error {
	if s.status == vo.SubscriptionCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.SubscriptionCancelled) {
		return fmt.Errorf("cannot cancel subscription with status %s", s.status)
	}
	if reason == "" {
		return fmt.Errorf("cancel reason is required")
	}

	now := biztime.NowUTC()
	s.status = vo.SubscriptionCancelled
	s.cancelledAt = &now
	s.cancelReason = &reason
	s.updatedAt = now
	return nil
}

// MarkAsExpired marks the subscription as expired.
func (s *Subscription) MarkAsExpired() error {
	if s.status == vo.SubscriptionExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.SubscriptionExpired) {
		return fmt.Errorf("cannot expire subscription with status %s", s.status)
	}

	s.status = vo.SubscriptionExpired
	s.updatedAt = biztime.NowUTC()
	return nil
}

// IsExpired checks whether the subscription period has lapsed.
func (s *Subscription) IsExpired() bool {
	return biztime.NowUTC().After(s.expiresAt)
}

// IsActive checks whether the subscription is usable.
func (s *Subscription) IsActive() bool {
	return s.status == vo.SubscriptionActive && !s.IsExpired()
}

// ConsumeTokens records plan-token usage against the subscription allowance.
// Usage is capped at the allowance so tokens_used never exceeds tokens_total;
// spend beyond the allowance is covered by bonus tokens on the ledger side.
func (s *Subscription) ConsumeTokens(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("consume amount must be positive")
	}
	if s.status != vo.SubscriptionActive {
		return fmt.Errorf("cannot consume tokens on subscription with status %s", s.status)
	}

	s.tokensUsed += amount
	if s.tokensUsed > s.tokensTotal {
		s.tokensUsed = s.tokensTotal
	}
	s.updatedAt = biztime.NowUTC()
	return nil
}

// TokensRemaining returns the unused plan allowance.
func (s *Subscription) TokensRemaining() int64 {
	return s.tokensTotal - s.tokensUsed
}
