package billing

import (
	"fmt"
	"time"

	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/shared/biztime"
	"chatledger/internal/shared/constants"
)

// PaymentRequest is a user-submitted claim of payment pending administrative
// confirmation. Status moves one way: pending -> confirmed | rejected |
// expired. Terminal states are immutable.
type PaymentRequest struct {
	id                   uint
	userID               string
	planID               uint
	planName             string
	billingCycle         vo.BillingCycle
	amount               int64
	currency             string
	status               vo.PaymentStatus
	transactionReference *string
	paymentDate          *time.Time
	paymentScreenshotURL *string
	rejectionReason      *string
	adminConfirmedAt     *time.Time
	adminNotes           *string
	expiresAt            time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

// NewPaymentRequest creates a pending request for the given plan and cycle.
// Amount and plan name are denormalized from the plan at creation time.
func NewPaymentRequest(userID string, plan *Plan, cycle vo.BillingCycle) (*PaymentRequest, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}
	if plan.ID() == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !plan.IsActive() {
		return nil, fmt.Errorf("plan %s is not active", plan.Slug())
	}

	now := biztime.NowUTC()
	return &PaymentRequest{
		userID:       userID,
		planID:       plan.ID(),
		planName:     plan.Name(),
		billingCycle: cycle,
		amount:       plan.PriceFor(cycle),
		currency:     constants.DefaultCurrency,
		status:       vo.PaymentPending,
		expiresAt:    now.AddDate(0, 0, constants.PaymentRequestExpiryDays),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// PaymentRequestReconstructParams carries persisted state back into the aggregate.
type PaymentRequestReconstructParams struct {
	ID                   uint
	UserID               string
	PlanID               uint
	PlanName             string
	BillingCycle         vo.BillingCycle
	Amount               int64
	Currency             string
	Status               vo.PaymentStatus
	TransactionReference *string
	PaymentDate          *time.Time
	PaymentScreenshotURL *string
	RejectionReason      *string
	AdminConfirmedAt     *time.Time
	AdminNotes           *string
	ExpiresAt            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ReconstructPaymentRequest reconstructs a payment request from persistence.
func ReconstructPaymentRequest(p PaymentRequestReconstructParams) (*PaymentRequest, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("payment request ID cannot be zero")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidPaymentStatuses[p.Status] {
		return nil, fmt.Errorf("invalid payment status: %s", p.Status)
	}

	return &PaymentRequest{
		id:                   p.ID,
		userID:               p.UserID,
		planID:               p.PlanID,
		planName:             p.PlanName,
		billingCycle:         p.BillingCycle,
		amount:               p.Amount,
		currency:             p.Currency,
		status:               p.Status,
		transactionReference: p.TransactionReference,
		paymentDate:          p.PaymentDate,
		paymentScreenshotURL: p.PaymentScreenshotURL,
		rejectionReason:      p.RejectionReason,
		adminConfirmedAt:     p.AdminConfirmedAt,
		adminNotes:           p.AdminNotes,
		expiresAt:            p.ExpiresAt,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}, nil
}

func (r *PaymentRequest) ID() uint                      { return r.id }
func (r *PaymentRequest) UserID() string                { return r.userID }
func (r *PaymentRequest) PlanID() uint                  { return r.planID }
func (r *PaymentRequest) PlanName() string              { return r.planName }
func (r *PaymentRequest) BillingCycle() vo.BillingCycle { return r.billingCycle }
func (r *PaymentRequest) Amount() int64                 { return r.amount }
func (r *PaymentRequest) Currency() string              { return r.currency }
func (r *PaymentRequest) Status() vo.PaymentStatus      { return r.status }
func (r *PaymentRequest) TransactionReference() *string { return r.transactionReference }
func (r *PaymentRequest) PaymentDate() *time.Time       { return r.paymentDate }
func (r *PaymentRequest) PaymentScreenshotURL() *string { return r.paymentScreenshotURL }
func (r *PaymentRequest) RejectionReason() *string      { return r.rejectionReason }
func (r *PaymentRequest) AdminConfirmedAt() *time.Time  { return r.adminConfirmedAt }
func (r *PaymentRequest) AdminNotes() *string           { return r.adminNotes }
func (r *PaymentRequest) ExpiresAt() time.Time          { return r.expiresAt }
func (r *PaymentRequest) CreatedAt() time.Time          { return r.createdAt }
func (r *PaymentRequest) UpdatedAt() time.Time          { return r.updatedAt }

// SetID sets the payment request ID (only for persistence layer use)
func (r *PaymentRequest) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("payment request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment request ID cannot be zero")
	}
	r.id = id
	return nil
}

// AttachProof records the user's transaction reference and optional
// screenshot. Only pending requests accept proof.
func (r *PaymentRequest) AttachProof(transactionReference string, paymentDate time.Time, screenshotURL *string) error {
	if r.status != vo.PaymentPending {
		return ErrPaymentRequestNotPending(r.status.String())
	}
	if transactionReference == "" {
		return fmt.Errorf("transaction reference is required")
	}

	r.transactionReference = &transactionReference
	r.paymentDate = &paymentDate
	r.paymentScreenshotURL = screenshotURL
	r.updatedAt = biztime.NowUTC()
	return nil
}

// Confirm transitions pending -> confirmed.
func (r *PaymentRequest) Confirm(adminNotes *string) error {
	if !r.status.CanTransitionTo(vo.PaymentConfirmed) {
		return ErrPaymentRequestNotPending(r.status.String())
	}

	now := biztime.NowUTC()
	r.status = vo.PaymentConfirmed
	r.adminConfirmedAt = &now
	r.adminNotes = adminNotes
	r.updatedAt = now
	return nil
}

// Reject transitions pending -> rejected with a reason.
func (r *PaymentRequest) Reject(reason string) error {
	if !r.status.CanTransitionTo(vo.PaymentRejected) {
		return ErrPaymentRequestNotPending(r.status.String())
	}
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}

	r.status = vo.PaymentRejected
	r.rejectionReason = &reason
	r.updatedAt = biztime.NowUTC()
	return nil
}

// MarkAsExpired transitions pending -> expired. No-op when already expired.
func (r *PaymentRequest) MarkAsExpired() error {
	if r.status == vo.PaymentExpired {
		return nil
	}
	if !r.status.CanTransitionTo(vo.PaymentExpired) {
		return ErrPaymentRequestNotPending(r.status.String())
	}

	r.status = vo.PaymentExpired
	r.updatedAt = biztime.NowUTC()
	return nil
}

// IsExpired reports whether a pending request has passed its expiry.
func (r *PaymentRequest) IsExpired() bool {
	return r.status == vo.PaymentPending && biztime.NowUTC().After(r.expiresAt)
}
