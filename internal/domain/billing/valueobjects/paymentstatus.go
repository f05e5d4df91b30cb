package valueobjects

import "fmt"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentExpired   PaymentStatus = "expired"
)

func NewPaymentStatus(value string) (PaymentStatus, error) {
	s := PaymentStatus(value)
	if !ValidPaymentStatuses[s] {
		return "", fmt.Errorf("invalid payment status: %s", value)
	}
	return s, nil
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsFinal reports whether the request has reached a terminal state.
// Terminal states are immutable; transitions are one-directional from pending.
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentConfirmed || s == PaymentRejected || s == PaymentExpired
}

func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	if s != PaymentPending {
		return false
	}
	return target == PaymentConfirmed || target == PaymentRejected || target == PaymentExpired
}

var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentPending:   true,
	PaymentConfirmed: true,
	PaymentRejected:  true,
	PaymentExpired:   true,
}
