package usecases

import (
	"context"
	"errors"
	"time"

	"chatledger/internal/domain/billing"
	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	"chatledger/internal/shared/logger"
)

type fakeTxManager struct {
	failuresLeft int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return errors.New("Deadlock found when trying to get lock; try restarting transaction")
	}
	return fn(ctx)
}

type fakeProfileRepo struct {
	profiles map[string]*identity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*identity.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *identity.Profile) error {
	r.profiles[p.ID()] = p
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*identity.Profile, error) {
	return r.profiles[id], nil
}

func (r *fakeProfileRepo) GetByIDForUpdate(_ context.Context, id string) (*identity.Profile, error) {
	return r.profiles[id], nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *identity.Profile) error {
	r.profiles[p.ID()] = p
	return nil
}

func (r *fakeProfileRepo) UpdateEmail(ctx context.Context, id, email string) error {
	p := r.profiles[id]
	if p == nil {
		return errors.New("profile not found")
	}
	_, err := p.SyncEmail(email)
	return err
}

func (r *fakeProfileRepo) List(_ context.Context, _ identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	var out []*identity.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProfileRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.profiles)), nil
}

func (r *fakeProfileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

type fakeLedgerRepo struct {
	entries []*ledger.TokenTransaction
	nextID  uint
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{nextID: 1}
}

func (r *fakeLedgerRepo) Append(_ context.Context, tx *ledger.TokenTransaction) error {
	if err := tx.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.entries = append(r.entries, tx)
	return nil
}

func (r *fakeLedgerRepo) GetLatestByUser(_ context.Context, userID string) (*ledger.TokenTransaction, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID() == userID {
			return r.entries[i], nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) ListByUser(_ context.Context, filter ledger.TransactionFilter) ([]*ledger.TokenTransaction, int64, error) {
	var out []*ledger.TokenTransaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.UserID() != filter.UserID {
			continue
		}
		if filter.Type != nil && e.TransactionType() != *filter.Type {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLedgerRepo) SumAmountByType(_ context.Context, txType ledger.TransactionType) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.TransactionType() == txType {
			sum += e.Amount()
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepo) chainFor(userID string) []*ledger.TokenTransaction {
	var out []*ledger.TokenTransaction
	for _, e := range r.entries {
		if e.UserID() == userID {
			out = append(out, e)
		}
	}
	return out
}

type fakeSubscriptionRepo struct {
	active map[string]*billing.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{active: make(map[string]*billing.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *billing.Subscription) error {
	if sub.ID() == 0 {
		if err := sub.SetID(uint(len(r.active) + 1)); err != nil {
			return err
		}
	}
	r.active[sub.UserID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id uint) (*billing.Subscription, error) {
	for _, sub := range r.active {
		if sub.ID() == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) GetActiveByUser(_ context.Context, userID string) (*billing.Subscription, error) {
	sub := r.active[userID]
	if sub == nil || !sub.IsActive() {
		return nil, nil
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) GetActiveByUserForUpdate(ctx context.Context, userID string) (*billing.Subscription, error) {
	return r.GetActiveByUser(ctx, userID)
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *billing.Subscription) error {
	r.active[sub.UserID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) ListByUser(_ context.Context, userID string) ([]*billing.Subscription, error) {
	if sub := r.active[userID]; sub != nil {
		return []*billing.Subscription{sub}, nil
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, _ billing.SubscriptionFilter) ([]*billing.Subscription, int64, error) {
	var out []*billing.Subscription
	for _, sub := range r.active {
		out = append(out, sub)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubscriptionRepo) ListExpiredActive(_ context.Context, _ int) ([]*billing.Subscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	sub, _ := r.GetActiveByUser(ctx, userID)
	if sub == nil {
		return 0, nil
	}
	return 1, nil
}

func (r *fakeSubscriptionRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, sub := range r.active {
		if sub.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) SumPricePaid(_ context.Context, activeOnly bool) (int64, error) {
	var sum int64
	for _, sub := range r.active {
		if activeOnly && !sub.IsActive() {
			continue
		}
		sum += sub.PricePaid()
	}
	return sum, nil
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
