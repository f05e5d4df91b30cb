package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/biztime"
)

func TestPaymentRequestRepository_RoundTrip(t *testing.T) {
	gdb := openTestDB(t)
	planRepo := NewPlanRepository(gdb, testLogger())
	repo := NewPaymentRequestRepository(gdb, testLogger())
	ctx := context.Background()

	plan := seedPlan(t, planRepo)

	req, err := billing.NewPaymentRequest("u-1", plan, vo.CycleMonthly)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, req))
	assert.NotZero(t, req.ID())

	got, err := repo.GetByID(ctx, req.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, vo.PaymentPending, got.Status())
	assert.Equal(t, int64(2900), got.Amount())
	assert.Equal(t, "USD", got.Currency())

	require.NoError(t, got.AttachProof("TRX-1", biztime.NowUTC(), nil))
	require.NoError(t, repo.Update(ctx, got))

	notes := "verified"
	require.NoError(t, got.Confirm(&notes))
	require.NoError(t, repo.Update(ctx, got))

	final, err := repo.GetByID(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentConfirmed, final.Status())
	require.NotNil(t, final.TransactionReference())
	assert.Equal(t, "TRX-1", *final.TransactionReference())

	pending, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
}

func TestPaymentRequestRepository_ListExpiredPending(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewPaymentRequestRepository(gdb, testLogger())
	ctx := context.Background()

	// Seed one stale pending row directly; the aggregate cannot be created
	// already past its expiry.
	stale := &models.PaymentRequestModel{
		UserID:       "u-1",
		PlanID:       1,
		PlanName:     "Pro",
		BillingCycle: "monthly",
		Amount:       2900,
		Currency:     "USD",
		Status:       vo.PaymentPending.String(),
		ExpiresAt:    biztime.NowUTC().Add(-time.Hour),
		CreatedAt:    biztime.NowUTC().AddDate(0, 0, -8),
		UpdatedAt:    biztime.NowUTC().AddDate(0, 0, -8),
	}
	require.NoError(t, gdb.Create(stale).Error)

	fresh := &models.PaymentRequestModel{
		UserID:       "u-2",
		PlanID:       1,
		PlanName:     "Pro",
		BillingCycle: "monthly",
		Amount:       2900,
		Currency:     "USD",
		Status:       vo.PaymentPending.String(),
		ExpiresAt:    biztime.NowUTC().Add(24 * time.Hour),
		CreatedAt:    biztime.NowUTC(),
		UpdatedAt:    biztime.NowUTC(),
	}
	require.NoError(t, gdb.Create(fresh).Error)

	expired, err := repo.ListExpiredPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "u-1", expired[0].UserID())
	assert.True(t, expired[0].IsExpired())
}
