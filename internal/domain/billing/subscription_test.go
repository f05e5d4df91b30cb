package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "chatledger/internal/domain/billing/valueobjects"
)

// --- helpers ---

func newTestPlan(t *testing.T) *Plan {
	t.Helper()
	plan, err := NewPlan("pro", "Pro", 2900, 29900, 100000, 10000, []string{"chat", "priority"}, 1)
	require.NoError(t, err)
	require.NoError(t, plan.SetID(1))
	return plan
}

func newActiveSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription("u-1", newTestPlan(t), vo.CycleMonthly, false)
	require.NoError(t, err)
	return sub
}

func TestNewSubscription_DenormalizesPlanFields(t *testing.T) {
	plan := newTestPlan(t)

	sub, err := NewSubscription("u-1", plan, vo.CycleMonthly, false)

	require.NoError(t, err)
	assert.Equal(t, "u-1", sub.UserID())
	assert.Equal(t, plan.ID(), sub.PlanID())
	assert.Equal(t, "Pro", sub.PlanName())
	assert.Equal(t, int64(2900), sub.PricePaid())
	assert.Equal(t, int64(100000), sub.TokensTotal())
	assert.Zero(t, sub.TokensUsed())
	assert.Equal(t, vo.SubscriptionActive, sub.Status())
	assert.False(t, sub.ActivatedByAdmin())
	assert.Equal(t, sub.StartedAt().AddDate(0, 0, 30), sub.ExpiresAt())
}

func TestNewSubscription_YearlyCycleAndPrice(t *testing.T) {
	sub, err := NewSubscription("u-1", newTestPlan(t), vo.CycleYearly, true)

	require.NoError(t, err)
	assert.Equal(t, int64(29900), sub.PricePaid())
	assert.True(t, sub.ActivatedByAdmin())
	assert.Equal(t, sub.StartedAt().AddDate(0, 0, 365), sub.ExpiresAt())
}

func TestNewSubscription_Invalid(t *testing.T) {
	plan := newTestPlan(t)

	_, err := NewSubscription("", plan, vo.CycleMonthly, false)
	assert.Error(t, err)

	_, err = NewSubscription("u-1", nil, vo.CycleMonthly, false)
	assert.Error(t, err)
}

func TestSubscription_Supersede(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.Supersede())
	assert.Equal(t, vo.SubscriptionSuperseded, sub.Status())

	// Idempotent.
	require.NoError(t, sub.Supersede())

	// Terminal rows cannot be cancelled afterwards.
	assert.Error(t, sub.Cancel("changed my mind"))
}

func TestSubscription_Cancel(t *testing.T) {
	sub := newActiveSubscription(t)

	assert.Error(t, sub.Cancel(""), "cancel requires a reason")

	require.NoError(t, sub.Cancel("too expensive"))
	assert.Equal(t, vo.SubscriptionCancelled, sub.Status())
	require.NotNil(t, sub.CancelReason())
	assert.Equal(t, "too expensive", *sub.CancelReason())
	assert.NotNil(t, sub.CancelledAt())

	// Idempotent; history stays immutable.
	require.NoError(t, sub.Cancel("again"))
	assert.Equal(t, "too expensive", *sub.CancelReason())

	assert.Error(t, sub.Supersede())
	assert.Error(t, sub.MarkAsExpired())
}

func TestSubscription_MarkAsExpired(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.MarkAsExpired())
	assert.Equal(t, vo.SubscriptionExpired, sub.Status())
	require.NoError(t, sub.MarkAsExpired())
}

func TestSubscription_ConsumeTokens(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.ConsumeTokens(400))
	assert.Equal(t, int64(400), sub.TokensUsed())
	assert.Equal(t, int64(99600), sub.TokensRemaining())

	assert.Error(t, sub.ConsumeTokens(0))
	assert.Error(t, sub.ConsumeTokens(-5))
}

func TestSubscription_ConsumeTokens_CappedAtAllowance(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.ConsumeTokens(sub.TokensTotal()+500))

	assert.Equal(t, sub.TokensTotal(), sub.TokensUsed(), "tokens_used must never exceed tokens_total")
	assert.Zero(t, sub.TokensRemaining())
}

func TestSubscription_ConsumeTokens_RejectedOnTerminalStatus(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Supersede())

	assert.Error(t, sub.ConsumeTokens(10))
}

func TestReconstructSubscription_InvalidStatus(t *testing.T) {
	_, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:     1,
		UserID: "u-1",
		Status: "bogus",
	})
	assert.Error(t, err)
}

func TestSubscription_IsActive(t *testing.T) {
	sub := newActiveSubscription(t)
	assert.True(t, sub.IsActive())

	past := time.Now().UTC().AddDate(0, 0, -1)
	expired, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:        2,
		UserID:    "u-1",
		PlanID:    1,
		Status:    vo.SubscriptionActive,
		StartedAt: past.AddDate(0, -1, 0),
		ExpiresAt: past,
	})
	require.NoError(t, err)
	assert.False(t, expired.IsActive(), "lapsed period means not active even with active status")
}
