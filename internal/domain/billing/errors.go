package billing

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound            = errors.New("subscription plan not found")
	ErrPlanInactive            = errors.New("subscription plan inactive")
	ErrPlanSlugExists          = errors.New("plan slug already exists")
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrPaymentRequestNotFound  = errors.New("payment request not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidBillingCycle     = errors.New("invalid billing cycle")
)

func ErrPaymentRequestNotPending(status string) error {
	return fmt.Errorf("%w: payment request is %s, not pending", ErrInvalidStatusTransition, status)
}
