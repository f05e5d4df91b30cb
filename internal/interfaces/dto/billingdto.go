package dto

import (
	"time"

	"chatledger/internal/domain/billing"
)

type PlanDTO struct {
	ID                 uint     `json:"id"`
	Slug               string   `json:"slug"`
	Name               string   `json:"name"`
	MonthlyPrice       int64    `json:"monthly_price"`
	YearlyPrice        int64    `json:"yearly_price"`
	TokensTotal        int64    `json:"tokens_total"`
	TokensMonthlyLimit int64    `json:"tokens_monthly_limit"`
	Features           []string `json:"features"`
	SortOrder          int      `json:"sort_order"`
}

func PlanFromEntity(p *billing.Plan) PlanDTO {
	features := p.Features()
	if features == nil {
		features = []string{}
	}
	return PlanDTO{
		ID:                 p.ID(),
		Slug:               p.Slug(),
		Name:               p.Name(),
		MonthlyPrice:       p.MonthlyPrice(),
		YearlyPrice:        p.YearlyPrice(),
		TokensTotal:        p.TokensTotal(),
		TokensMonthlyLimit: p.TokensMonthlyLimit(),
		Features:           features,
		SortOrder:          p.SortOrder(),
	}
}

func PlansFromEntities(plans []*billing.Plan) []PlanDTO {
	out := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanFromEntity(p))
	}
	return out
}

type SubscriptionDTO struct {
	ID               uint       `json:"id"`
	UserID           string     `json:"user_id"`
	PlanID           uint       `json:"plan_id"`
	PlanName         string     `json:"plan_name"`
	BillingCycle     string     `json:"billing_cycle"`
	PricePaid        int64      `json:"price_paid"`
	TokensTotal      int64      `json:"tokens_total"`
	TokensUsed       int64      `json:"tokens_used"`
	TokensRemaining  int64      `json:"tokens_remaining"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"started_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CancelReason     *string    `json:"cancel_reason,omitempty"`
	ActivatedByAdmin bool       `json:"activated_by_admin"`
	CreatedAt        time.Time  `json:"created_at"`
}

func SubscriptionFromEntity(s *billing.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:               s.ID(),
		UserID:           s.UserID(),
		PlanID:           s.PlanID(),
		PlanName:         s.PlanName(),
		BillingCycle:     string(s.BillingCycle()),
		PricePaid:        s.PricePaid(),
		TokensTotal:      s.TokensTotal(),
		TokensUsed:       s.TokensUsed(),
		TokensRemaining:  s.TokensRemaining(),
		Status:           string(s.Status()),
		StartedAt:        s.StartedAt(),
		ExpiresAt:        s.ExpiresAt(),
		CancelledAt:      s.CancelledAt(),
		CancelReason:     s.CancelReason(),
		ActivatedByAdmin: s.ActivatedByAdmin(),
		CreatedAt:        s.CreatedAt(),
	}
}

func SubscriptionsFromEntities(subs []*billing.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubscriptionFromEntity(s))
	}
	return out
}

type PaymentRequestDTO struct {
	ID                   uint       `json:"id"`
	UserID               string     `json:"user_id"`
	PlanID               uint       `json:"plan_id"`
	PlanName             string     `json:"plan_name"`
	BillingCycle         string     `json:"billing_cycle"`
	Amount               int64      `json:"amount"`
	Currency             string     `json:"currency"`
	Status               string     `json:"status"`
	TransactionReference *string    `json:"transaction_reference,omitempty"`
	PaymentDate          *time.Time `json:"payment_date,omitempty"`
	PaymentScreenshotURL *string    `json:"payment_screenshot_url,omitempty"`
	RejectionReason      *string    `json:"rejection_reason,omitempty"`
	AdminConfirmedAt     *time.Time `json:"admin_confirmed_at,omitempty"`
	ExpiresAt            time.Time  `json:"expires_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

func PaymentRequestFromEntity(r *billing.PaymentRequest) PaymentRequestDTO {
	return PaymentRequestDTO{
		ID:                   r.ID(),
		UserID:               r.UserID(),
		PlanID:               r.PlanID(),
		PlanName:             r.PlanName(),
		BillingCycle:         string(r.BillingCycle()),
		Amount:               r.Amount(),
		Currency:             r.Currency(),
		Status:               string(r.Status()),
		TransactionReference: r.TransactionReference(),
		PaymentDate:          r.PaymentDate(),
		PaymentScreenshotURL: r.PaymentScreenshotURL(),
		RejectionReason:      r.RejectionReason(),
		AdminConfirmedAt:     r.AdminConfirmedAt(),
		ExpiresAt:            r.ExpiresAt(),
		CreatedAt:            r.CreatedAt(),
	}
}

func PaymentRequestsFromEntities(reqs []*billing.PaymentRequest) []PaymentRequestDTO {
	out := make([]PaymentRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, PaymentRequestFromEntity(r))
	}
	return out
}

type BankSettingsDTO struct {
	BankName               string `json:"bank_name"`
	AccountHolder          string `json:"account_holder"`
	AccountNumber          string `json:"account_number"`
	IBAN                   string `json:"iban"`
	SwiftBIC               string `json:"swift_bic"`
	Branch                 string `json:"branch"`
	Country                string `json:"country"`
	AdditionalInstructions string `json:"additional_instructions"`
}

func BankSettingsFromEntity(s *billing.BankSettings) BankSettingsDTO {
	return BankSettingsDTO{
		BankName:               s.BankName(),
		AccountHolder:          s.AccountHolder(),
		AccountNumber:          s.AccountNumber(),
		IBAN:                   s.IBAN(),
		SwiftBIC:               s.SwiftBIC(),
		Branch:                 s.Branch(),
		Country:                s.Country(),
		AdditionalInstructions: s.AdditionalInstructions(),
	}
}
