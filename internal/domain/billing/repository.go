package billing

import (
	"context"

	vo "chatledger/internal/domain/billing/valueobjects"
)

// PlanRepository persists the plan catalog.
// Lookups return (nil, nil) when no row exists.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	ListActive(ctx context.Context) ([]*Plan, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// SubscriptionFilter narrows subscription listings.
type SubscriptionFilter struct {
	UserID   string
	Status   *vo.SubscriptionStatus
	PlanName string
	Page     int
	PageSize int
}

// SubscriptionRepository persists subscription enrollments.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	// GetActiveByUser returns the authoritative active subscription or
	// (nil, nil). ForUpdate variants lock the row within the surrounding
	// transaction.
	GetActiveByUser(ctx context.Context, userID string) (*Subscription, error)
	GetActiveByUserForUpdate(ctx context.Context, userID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	ListByUser(ctx context.Context, userID string) ([]*Subscription, error)
	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, int64, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	// ListExpiredActive returns active rows whose period has lapsed.
	ListExpiredActive(ctx context.Context, limit int) ([]*Subscription, error)
	CountActive(ctx context.Context) (int64, error)
	// SumPricePaid totals revenue, optionally over active rows only.
	SumPricePaid(ctx context.Context, activeOnly bool) (int64, error)
}

// BankSettingsRepository persists the deployment's single bank transfer
// record. Get returns (nil, nil) until the first admin write.
type BankSettingsRepository interface {
	Get(ctx context.Context) (*BankSettings, error)
	Save(ctx context.Context, settings *BankSettings) error
}

// PaymentRequestFilter narrows payment request listings.
type PaymentRequestFilter struct {
	UserID   string
	Status   *vo.PaymentStatus
	Page     int
	PageSize int
}

// PaymentRequestRepository persists payment claims.
type PaymentRequestRepository interface {
	Create(ctx context.Context, req *PaymentRequest) error
	GetByID(ctx context.Context, id uint) (*PaymentRequest, error)
	// GetByIDForUpdate locks the request row so resolution is serialized.
	GetByIDForUpdate(ctx context.Context, id uint) (*PaymentRequest, error)
	Update(ctx context.Context, req *PaymentRequest) error
	ListByUser(ctx context.Context, userID string) ([]*PaymentRequest, error)
	List(ctx context.Context, filter PaymentRequestFilter) ([]*PaymentRequest, int64, error)
	// ListExpiredPending returns pending requests past their expiry.
	ListExpiredPending(ctx context.Context, limit int) ([]*PaymentRequest, error)
	CountPending(ctx context.Context) (int64, error)
}
