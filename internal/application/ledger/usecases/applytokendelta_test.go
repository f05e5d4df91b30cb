package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	apperrors "chatledger/internal/shared/errors"
)

func newDeltaFixture(t *testing.T) (*ApplyTokenDeltaUseCase, *fakeProfileRepo, *fakeLedgerRepo, *fakeSubscriptionRepo) {
	t.Helper()

	profileRepo := newFakeProfileRepo()
	ledgerRepo := newFakeLedgerRepo()
	subRepo := newFakeSubscriptionRepo()
	uc := NewApplyTokenDeltaUseCase(&fakeTxManager{}, profileRepo, ledgerRepo, subRepo, testLogger())

	profile, err := identity.NewProfileFromIdentity("u-1", "alice@example.com", identity.UserMetadata{})
	require.NoError(t, err)
	require.NoError(t, profileRepo.Create(context.Background(), profile))

	return uc, profileRepo, ledgerRepo, subRepo
}

func TestApplyTokenDelta_GrantThenSpend(t *testing.T) {
	uc, profileRepo, ledgerRepo, _ := newDeltaFixture(t)
	ctx := context.Background()

	grant, err := uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: 20,
		Type:   "grant",
		Reason: "signup",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), grant.BalanceBefore())
	assert.Equal(t, int64(20), grant.BalanceAfter())

	spend, err := uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: -5,
		Type:   "spend",
		Reason: "chat:session-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), spend.BalanceBefore())
	assert.Equal(t, int64(15), spend.BalanceAfter())

	require.NoError(t, ledger.VerifyChain(ledgerRepo.chainFor("u-1")))

	profile, err := profileRepo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), profile.TokensTotal())
	assert.Equal(t, int64(5), profile.TokensUsed())
}

func TestApplyTokenDelta_OverdraftRejected(t *testing.T) {
	uc, _, ledgerRepo, _ := newDeltaFixture(t)

	_, err := uc.Execute(context.Background(), ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: -5,
		Type:   "spend",
		Reason: "chat:session-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientBalanceError(err))
	assert.Empty(t, ledgerRepo.chainFor("u-1"))
}

func TestApplyTokenDelta_AdminAdjustmentMayOverdraw(t *testing.T) {
	uc, _, _, _ := newDeltaFixture(t)
	notes := "billing correction"

	entry, err := uc.Execute(context.Background(), ApplyTokenDeltaCommand{
		UserID:     "u-1",
		Amount:     -50,
		Type:       "admin_adjustment",
		Reason:     "correction",
		AdminNotes: &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(-50), entry.BalanceAfter())
}

func TestApplyTokenDelta_BonusCountsTowardTotal(t *testing.T) {
	uc, profileRepo, _, _ := newDeltaFixture(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: 10,
		Type:   "bonus",
		Reason: "referral",
	})
	require.NoError(t, err)

	profile, err := profileRepo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), profile.BonusTokens())
	assert.Equal(t, int64(10), profile.TokensTotal())
}

func TestApplyTokenDelta_SpendConsumesSubscriptionAllowance(t *testing.T) {
	uc, _, _, subRepo := newDeltaFixture(t)
	ctx := context.Background()

	plan, err := billing.NewPlan("pro", "Pro", 2900, 29900, 100, 100, nil, 1)
	require.NoError(t, err)
	require.NoError(t, plan.SetID(1))
	sub, err := billing.NewSubscription("u-1", plan, vo.CycleMonthly, false)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(ctx, sub))

	_, err = uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: 100,
		Type:   "grant",
		Reason: "subscription:pro",
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: -30,
		Type:   "spend",
		Reason: "chat:session-2",
	})
	require.NoError(t, err)

	stored, err := subRepo.GetActiveByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), stored.TokensUsed())
	assert.Equal(t, int64(70), stored.TokensRemaining())
}

func TestApplyTokenDelta_UnknownUser(t *testing.T) {
	uc, _, _, _ := newDeltaFixture(t)

	_, err := uc.Execute(context.Background(), ApplyTokenDeltaCommand{
		UserID: "u-missing",
		Amount: 10,
		Type:   "grant",
		Reason: "signup",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestApplyTokenDelta_InvalidInput(t *testing.T) {
	uc, _, _, _ := newDeltaFixture(t)

	tests := []struct {
		name string
		cmd  ApplyTokenDeltaCommand
	}{
		{"unknown type", ApplyTokenDeltaCommand{UserID: "u-1", Amount: 10, Type: "loan", Reason: "x"}},
		{"zero amount", ApplyTokenDeltaCommand{UserID: "u-1", Amount: 0, Type: "grant", Reason: "x"}},
		{"missing reason", ApplyTokenDeltaCommand{UserID: "u-1", Amount: 10, Type: "grant"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestApplyTokenDelta_RetriesLockContention(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	ledgerRepo := newFakeLedgerRepo()
	subRepo := newFakeSubscriptionRepo()
	ctx := context.Background()

	profile, err := identity.NewProfileFromIdentity("u-1", "alice@example.com", identity.UserMetadata{})
	require.NoError(t, err)
	require.NoError(t, profileRepo.Create(ctx, profile))

	t.Run("recovers within the attempt budget", func(t *testing.T) {
		uc := NewApplyTokenDeltaUseCase(&fakeTxManager{failuresLeft: 2}, profileRepo, ledgerRepo, subRepo, testLogger())

		entry, err := uc.Execute(ctx, ApplyTokenDeltaCommand{
			UserID: "u-1",
			Amount: 10,
			Type:   "grant",
			Reason: "signup",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), entry.BalanceAfter())
	})

	t.Run("surfaces a retryable conflict when exhausted", func(t *testing.T) {
		uc := NewApplyTokenDeltaUseCase(&fakeTxManager{failuresLeft: 10}, profileRepo, ledgerRepo, subRepo, testLogger())

		_, err := uc.Execute(ctx, ApplyTokenDeltaCommand{
			UserID: "u-1",
			Amount: 10,
			Type:   "grant",
			Reason: "signup",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictRetryError(err))
	})
}

func TestGetBalance(t *testing.T) {
	uc, profileRepo, ledgerRepo, _ := newDeltaFixture(t)
	ctx := context.Background()

	balanceUC := NewGetBalanceUseCase(profileRepo, ledgerRepo, testLogger())

	empty, err := balanceUC.Execute(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Available)

	_, err = uc.Execute(ctx, ApplyTokenDeltaCommand{
		UserID: "u-1",
		Amount: 40,
		Type:   "grant",
		Reason: "signup",
	})
	require.NoError(t, err)

	got, err := balanceUC.Execute(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.Available)
	assert.Equal(t, int64(40), got.TokensTotal)

	_, err = balanceUC.Execute(ctx, "u-missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListTransactions(t *testing.T) {
	uc, _, ledgerRepo, _ := newDeltaFixture(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ApplyTokenDeltaCommand{UserID: "u-1", Amount: 20, Type: "grant", Reason: "signup"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, ApplyTokenDeltaCommand{UserID: "u-1", Amount: -5, Type: "spend", Reason: "chat"})
	require.NoError(t, err)

	listUC := NewListTransactionsUseCase(ledgerRepo, testLogger())

	all, total, err := listUC.Execute(ctx, ListTransactionsCommand{UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, int64(-5), all[0].Amount())

	spends, _, err := listUC.Execute(ctx, ListTransactionsCommand{UserID: "u-1", Type: "spend"})
	require.NoError(t, err)
	require.Len(t, spends, 1)

	_, _, err = listUC.Execute(ctx, ListTransactionsCommand{UserID: "u-1", Type: "loan"})
	assert.True(t, apperrors.IsValidationError(err))

	_, _, err = listUC.Execute(ctx, ListTransactionsCommand{})
	assert.True(t, apperrors.IsValidationError(err))
}
