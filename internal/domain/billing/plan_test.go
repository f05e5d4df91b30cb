package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "chatledger/internal/domain/billing/valueobjects"
)

func TestNewPlan_ValidInput(t *testing.T) {
	plan, err := NewPlan("free", "Free", 0, 0, 1000, 1000, nil, 0)

	require.NoError(t, err)
	assert.Equal(t, "free", plan.Slug())
	assert.True(t, plan.IsActive())
	assert.NotNil(t, plan.Features(), "features defaults to an empty list")
	assert.Empty(t, plan.Features())
}

func TestNewPlan_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		slug         string
		planName     string
		monthlyPrice int64
		tokensTotal  int64
	}{
		{"missing slug", "", "Pro", 2900, 1000},
		{"missing name", "pro", "", 2900, 1000},
		{"negative price", "pro", "Pro", -1, 1000},
		{"negative tokens", "pro", "Pro", 2900, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.slug, tt.planName, tt.monthlyPrice, 0, tt.tokensTotal, 0, nil, 0)
			assert.Error(t, err)
		})
	}
}

func TestPlan_PriceFor(t *testing.T) {
	plan := newTestPlan(t)

	assert.Equal(t, int64(2900), plan.PriceFor(vo.CycleMonthly))
	assert.Equal(t, int64(29900), plan.PriceFor(vo.CycleYearly))
}

func TestPlan_ActivateDeactivate(t *testing.T) {
	plan := newTestPlan(t)

	plan.Deactivate()
	assert.False(t, plan.IsActive())

	plan.Activate()
	assert.True(t, plan.IsActive())
}

func TestPlan_SetID(t *testing.T) {
	plan, err := NewPlan("pro", "Pro", 2900, 29900, 1000, 100, nil, 1)
	require.NoError(t, err)

	require.NoError(t, plan.SetID(7))
	assert.Error(t, plan.SetID(8), "ID cannot be reassigned")
	assert.Equal(t, uint(7), plan.ID())
}

func TestNewBillingCycle(t *testing.T) {
	bc, err := vo.NewBillingCycle("monthly")
	require.NoError(t, err)
	assert.Equal(t, vo.CycleMonthly, bc)

	_, err = vo.NewBillingCycle("weekly")
	assert.Error(t, err)
}
