package valueobjects

import (
	"fmt"
	"time"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

func NewBillingCycle(value string) (BillingCycle, error) {
	switch BillingCycle(value) {
	case CycleMonthly, CycleYearly:
		return BillingCycle(value), nil
	default:
		return "", fmt.Errorf("invalid billing cycle: %s", value)
	}
}

func (c BillingCycle) String() string {
	return string(c)
}

// PeriodEnd returns the subscription expiry for a period starting at from.
func (c BillingCycle) PeriodEnd(from time.Time) time.Time {
	if c == CycleYearly {
		return from.AddDate(0, 0, 365)
	}
	return from.AddDate(0, 0, 30)
}
