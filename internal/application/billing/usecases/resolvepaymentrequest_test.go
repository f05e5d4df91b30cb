package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/shared/biztime"
	"chatledger/internal/shared/constants"
	apperrors "chatledger/internal/shared/errors"
)

// committingTxManager mirrors the real manager's contract: a nil return from
// the callback commits, an error rolls back. Tests use it to assert which
// side of that contract a use case landed on.
type committingTxManager struct {
	rolledBack bool
}

func (m *committingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		m.rolledBack = true
	}
	return err
}

func newResolveFixture(t *testing.T) (*billingFixture, *ResolvePaymentRequestUseCase, *CreatePaymentRequestUseCase) {
	t.Helper()
	f := newBillingFixture(t)

	create := NewCreatePaymentRequestUseCase(f.planRepo, f.payRepo, f.profileRepo, testLogger())
	resolve := NewResolvePaymentRequestUseCase(&fakeTxManager{}, f.payRepo, f.activate, testLogger())
	return f, resolve, create
}

func TestResolvePaymentRequest_ConfirmActivatesSubscription(t *testing.T) {
	f, resolve, create := newResolveFixture(t)
	ctx := context.Background()

	req, err := create.Execute(ctx, CreatePaymentRequestCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentPending, req.Status())
	assert.Equal(t, int64(2900), req.Amount())

	notes := "verified bank transfer"
	resolved, err := resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID:  req.ID(),
		Action:     ResolutionConfirm,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentConfirmed, resolved.Status())
	require.NotNil(t, resolved.AdminConfirmedAt())

	sub, err := f.subRepo.GetActiveByUser(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.ActivatedByAdmin())
	assert.Equal(t, "Pro", sub.PlanName())

	entry, err := f.ledgerRepo.GetLatestByUser(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(100000), entry.BalanceAfter())
}

func TestResolvePaymentRequest_Reject(t *testing.T) {
	f, resolve, create := newResolveFixture(t)
	ctx := context.Background()

	req, err := create.Execute(ctx, CreatePaymentRequestCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	resolved, err := resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID:       req.ID(),
		Action:          ResolutionReject,
		RejectionReason: "no matching transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentRejected, resolved.Status())

	// Rejection never activates anything.
	sub, err := f.subRepo.GetActiveByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestResolvePaymentRequest_TerminalStatesAreImmutable(t *testing.T) {
	_, resolve, create := newResolveFixture(t)
	ctx := context.Background()

	req, err := create.Execute(ctx, CreatePaymentRequestCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID:       req.ID(),
		Action:          ResolutionReject,
		RejectionReason: "no matching transfer",
	})
	require.NoError(t, err)

	// Second resolution of any kind fails.
	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID: req.ID(),
		Action:    ResolutionConfirm,
	})
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestResolvePaymentRequest_ExpiryCommitsDespiteRefusal(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	txm := &committingTxManager{}
	resolve := NewResolvePaymentRequestUseCase(txm, f.payRepo, f.activate, testLogger())

	past := biztime.NowUTC().Add(-48 * time.Hour)
	stale, err := billing.ReconstructPaymentRequest(billing.PaymentRequestReconstructParams{
		ID:           7,
		UserID:       "u-1",
		PlanID:       1,
		PlanName:     "Pro",
		BillingCycle: vo.CycleMonthly,
		Amount:       2900,
		Currency:     constants.DefaultCurrency,
		Status:       vo.PaymentPending,
		ExpiresAt:    past,
		CreatedAt:    past.Add(-time.Hour),
		UpdatedAt:    past.Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, f.payRepo.Update(ctx, stale))

	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID: 7,
		Action:    ResolutionConfirm,
	})
	assert.True(t, apperrors.IsInvalidTransitionError(err))

	// The refusal must not roll the status write back.
	assert.False(t, txm.rolledBack)
	got, err := f.payRepo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentExpired, got.Status())

	// A stale confirm never activates anything.
	sub, err := f.subRepo.GetActiveByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestResolvePaymentRequest_Validation(t *testing.T) {
	_, resolve, _ := newResolveFixture(t)
	ctx := context.Background()

	_, err := resolve.Execute(ctx, ResolvePaymentRequestCommand{RequestID: 1, Action: "maybe"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{RequestID: 1, Action: ResolutionReject})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{RequestID: 99, Action: ResolutionConfirm})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSubmitPaymentProof(t *testing.T) {
	f, _, create := newResolveFixture(t)
	ctx := context.Background()

	req, err := create.Execute(ctx, CreatePaymentRequestCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	submit := NewSubmitPaymentProofUseCase(f.payRepo, testLogger())

	shot := "https://cdn.example.com/proof.png"
	updated, err := submit.Execute(ctx, SubmitPaymentProofCommand{
		RequestID:            req.ID(),
		UserID:               "u-1",
		TransactionReference: "TRX-123",
		PaymentDate:          biztime.NowUTC().Add(-time.Hour),
		ScreenshotURL:        &shot,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TransactionReference())
	assert.Equal(t, "TRX-123", *updated.TransactionReference())

	// Another user cannot attach proof to this request.
	_, err = submit.Execute(ctx, SubmitPaymentProofCommand{
		RequestID:            req.ID(),
		UserID:               "u-2",
		TransactionReference: "TRX-456",
		PaymentDate:          biztime.NowUTC(),
	})
	assert.True(t, apperrors.GetAppError(err) != nil && apperrors.GetAppError(err).Type == apperrors.ErrorTypeForbidden)
}

func TestGetAdminStats(t *testing.T) {
	f, resolve, create := newResolveFixture(t)
	ctx := context.Background()

	req, err := create.Execute(ctx, CreatePaymentRequestCommand{
		UserID: "u-1", PlanID: 1, BillingCycle: "monthly",
	})
	require.NoError(t, err)
	_, err = resolve.Execute(ctx, ResolvePaymentRequestCommand{
		RequestID: req.ID(),
		Action:    ResolutionConfirm,
	})
	require.NoError(t, err)

	stats, err := NewGetAdminStatsUseCase(f.profileRepo, f.subRepo, f.payRepo, f.ledgerRepo, testLogger()).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveSubscriptions)
	assert.Equal(t, int64(0), stats.PendingPayments)
	assert.Equal(t, int64(2900), stats.TotalRevenue)
	assert.Equal(t, int64(100000), stats.TokensGranted)
}
