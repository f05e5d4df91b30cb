package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerusecases "chatledger/internal/application/ledger/usecases"
	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
)

type billingFixture struct {
	profileRepo *fakeProfileRepo
	planRepo    *fakePlanRepo
	subRepo     *fakeSubscriptionRepo
	payRepo     *fakePaymentRequestRepo
	ledgerRepo  *fakeLedgerRepo
	activate    *ActivateSubscriptionUseCase
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	ctx := context.Background()

	f := &billingFixture{
		profileRepo: newFakeProfileRepo(),
		planRepo:    newFakePlanRepo(),
		subRepo:     newFakeSubscriptionRepo(),
		payRepo:     newFakePaymentRequestRepo(),
		ledgerRepo:  newFakeLedgerRepo(),
	}

	profile, err := identity.NewProfileFromIdentity("u-1", "alice@example.com", identity.UserMetadata{})
	require.NoError(t, err)
	require.NoError(t, f.profileRepo.Create(ctx, profile))

	plan, err := billing.NewPlan("pro", "Pro", 2900, 29900, 100000, 10000, []string{"priority"}, 1)
	require.NoError(t, err)
	require.NoError(t, f.planRepo.Create(ctx, plan))

	applyDelta := ledgerusecases.NewApplyTokenDeltaUseCase(
		&fakeTxManager{}, f.profileRepo, f.ledgerRepo, f.subRepo, testLogger(),
	)
	f.activate = NewActivateSubscriptionUseCase(
		&fakeTxManager{}, f.planRepo, f.subRepo, f.profileRepo, applyDelta, testLogger(),
	)
	return f
}

func TestActivateSubscription_GrantsTokensAndUpdatesProfile(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	sub, err := f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID:       "u-1",
		PlanID:       1,
		BillingCycle: "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.SubscriptionActive, sub.Status())
	assert.Equal(t, int64(2900), sub.PricePaid())
	assert.Equal(t, int64(100000), sub.TokensTotal())

	entry, err := f.ledgerRepo.GetLatestByUser(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(100000), entry.Amount())
	assert.Equal(t, "subscription:pro", entry.Reason())

	profile, err := f.profileRepo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "pro", profile.SubscriptionTier())
	assert.Equal(t, "active", profile.SubscriptionStatus())
	assert.Equal(t, int64(100000), profile.TokensTotal())
}

func TestActivateSubscription_SupersedesCurrent(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	first, err := f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	second, err := f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "yearly",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.SubscriptionSuperseded, first.Status())
	assert.Equal(t, vo.SubscriptionActive, second.Status())
	assert.Equal(t, int64(29900), second.PricePaid())

	// Exactly one active row for the user.
	n, err := f.subRepo.CountActiveByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Both activations granted their allowance.
	entry, err := f.ledgerRepo.GetLatestByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(200000), entry.BalanceAfter())
}

func TestActivateSubscription_Rejections(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	_, err := f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-missing", PlanID: 1, BillingCycle: "monthly",
	})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 99, BillingCycle: "monthly",
	})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "weekly",
	})
	assert.True(t, apperrors.IsValidationError(err))

	plan, err := f.planRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	plan.Deactivate()
	_, err = f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCancelSubscription(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	_, err := f.activate.Execute(ctx, ActivateSubscriptionCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	cancel := NewCancelSubscriptionUseCase(&fakeTxManager{}, f.subRepo, f.profileRepo, testLogger())

	sub, err := cancel.Execute(ctx, CancelSubscriptionCommand{UserID: "u-1", Reason: "too expensive"})
	require.NoError(t, err)
	assert.Equal(t, vo.SubscriptionCancelled, sub.Status())
	require.NotNil(t, sub.CancelReason())
	assert.Equal(t, "too expensive", *sub.CancelReason())

	profile, err := f.profileRepo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "free", profile.SubscriptionTier())
	// Granted tokens survive cancellation.
	assert.Equal(t, int64(100000), profile.TokensTotal())

	_, err = cancel.Execute(ctx, CancelSubscriptionCommand{UserID: "u-1", Reason: "again"})
	assert.True(t, apperrors.IsNotFoundError(err))
}
