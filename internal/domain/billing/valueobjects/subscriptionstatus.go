package valueobjects

import "fmt"

type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionSuperseded SubscriptionStatus = "superseded"
	SubscriptionCancelled  SubscriptionStatus = "cancelled"
	SubscriptionExpired    SubscriptionStatus = "expired"
)

func NewSubscriptionStatus(value string) (SubscriptionStatus, error) {
	s := SubscriptionStatus(value)
	if !ValidSubscriptionStatuses[s] {
		return "", fmt.Errorf("invalid subscription status: %s", value)
	}
	return s, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the subscription row is immutable history.
func (s SubscriptionStatus) IsTerminal() bool {
	return s != SubscriptionActive
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		SubscriptionActive:     {SubscriptionSuperseded, SubscriptionCancelled, SubscriptionExpired},
		SubscriptionSuperseded: {},
		SubscriptionCancelled:  {},
		SubscriptionExpired:    {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

var ValidSubscriptionStatuses = map[SubscriptionStatus]bool{
	SubscriptionActive:     true,
	SubscriptionSuperseded: true,
	SubscriptionCancelled:  true,
	SubscriptionExpired:    true,
}
