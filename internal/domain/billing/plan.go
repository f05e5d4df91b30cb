package billing

import (
	"fmt"
	"time"

	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/shared/biztime"
)

// Plan is a catalog entry users can subscribe to. Prices are stored in
// cents. Features is an ordered list of capability tags.
type Plan struct {
	id                 uint
	slug               string
	name               string
	monthlyPrice       int64
	yearlyPrice        int64
	tokensTotal        int64
	tokensMonthlyLimit int64
	features           []string
	sortOrder          int
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewPlan creates a new catalog entry.
func NewPlan(slug, name string, monthlyPrice, yearlyPrice, tokensTotal, tokensMonthlyLimit int64, features []string, sortOrder int) (*Plan, error) {
	if slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if monthlyPrice < 0 || yearlyPrice < 0 {
		return nil, fmt.Errorf("plan prices cannot be negative")
	}
	if tokensTotal < 0 || tokensMonthlyLimit < 0 {
		return nil, fmt.Errorf("plan token allowances cannot be negative")
	}

	if features == nil {
		features = []string{}
	}

	now := biztime.NowUTC()
	return &Plan{
		slug:               slug,
		name:               name,
		monthlyPrice:       monthlyPrice,
		yearlyPrice:        yearlyPrice,
		tokensTotal:        tokensTotal,
		tokensMonthlyLimit: tokensMonthlyLimit,
		features:           features,
		sortOrder:          sortOrder,
		isActive:           true,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// PlanReconstructParams carries persisted state back into the aggregate.
type PlanReconstructParams struct {
	ID                 uint
	Slug               string
	Name               string
	MonthlyPrice       int64
	YearlyPrice        int64
	TokensTotal        int64
	TokensMonthlyLimit int64
	Features           []string
	SortOrder          int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(p PlanReconstructParams) (*Plan, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if p.Slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}

	features := p.Features
	if features == nil {
		features = []string{}
	}

	return &Plan{
		id:                 p.ID,
		slug:               p.Slug,
		name:               p.Name,
		monthlyPrice:       p.MonthlyPrice,
		yearlyPrice:        p.YearlyPrice,
		tokensTotal:        p.TokensTotal,
		tokensMonthlyLimit: p.TokensMonthlyLimit,
		features:           features,
		sortOrder:          p.SortOrder,
		isActive:           p.IsActive,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}, nil
}

func (p *Plan) ID() uint                  { return p.id }
func (p *Plan) Slug() string              { return p.slug }
func (p *Plan) Name() string              { return p.name }
func (p *Plan) MonthlyPrice() int64       { return p.monthlyPrice }
func (p *Plan) YearlyPrice() int64        { return p.yearlyPrice }
func (p *Plan) TokensTotal() int64        { return p.tokensTotal }
func (p *Plan) TokensMonthlyLimit() int64 { return p.tokensMonthlyLimit }
func (p *Plan) Features() []string        { return p.features }
func (p *Plan) SortOrder() int            { return p.sortOrder }
func (p *Plan) IsActive() bool            { return p.isActive }
func (p *Plan) CreatedAt() time.Time      { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time      { return p.updatedAt }

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// PriceFor returns the price in cents for the given billing cycle.
func (p *Plan) PriceFor(cycle vo.BillingCycle) int64 {
	if cycle == vo.CycleYearly {
		return p.yearlyPrice
	}
	return p.monthlyPrice
}

// Activate makes the plan purchasable.
func (p *Plan) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = biztime.NowUTC()
}

// Deactivate hides the plan from the catalog without touching existing
// subscriptions.
func (p *Plan) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = biztime.NowUTC()
}
