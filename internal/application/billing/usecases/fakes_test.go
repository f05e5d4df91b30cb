package usecases

import (
	"context"
	"sort"
	"time"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/domain/identity"
	"chatledger/internal/domain/ledger"
	"chatledger/internal/shared/logger"
)

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
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

func (r *fakeProfileRepo) GetByIDForUpdate(ctx context.Context, id string) (*identity.Profile, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProfileRepo) Update(_ context.Context, p *identity.Profile) error {
	r.profiles[p.ID()] = p
	return nil
}

func (r *fakeProfileRepo) UpdateEmail(_ context.Context, id, email string) error {
	if p := r.profiles[id]; p != nil {
		_, err := p.SyncEmail(email)
		return err
	}
	return nil
}

func (r *fakeProfileRepo) List(_ context.Context, _ identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	return nil, 0, nil
}

func (r *fakeProfileRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeProfileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

type fakePlanRepo struct {
	plans map[uint]*billing.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uint]*billing.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *billing.Plan) error {
	if plan.ID() == 0 {
		if err := plan.SetID(uint(len(r.plans) + 1)); err != nil {
			return err
		}
	}
	r.plans[plan.ID()] = plan
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id uint) (*billing.Plan, error) {
	return r.plans[id], nil
}

func (r *fakePlanRepo) GetBySlug(_ context.Context, slug string) (*billing.Plan, error) {
	for _, p := range r.plans {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *billing.Plan) error {
	r.plans[plan.ID()] = plan
	return nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]*billing.Plan, error) {
	var out []*billing.Plan
	for _, p := range r.plans {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder() < out[j].SortOrder() })
	return out, nil
}

func (r *fakePlanRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	p, _ := r.GetBySlug(ctx, slug)
	return p != nil, nil
}

type fakeSubscriptionRepo struct {
	subs   []*billing.Subscription
	nextID uint
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{nextID: 1}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *billing.Subscription) error {
	if sub.ID() == 0 {
		if err := sub.SetID(r.nextID); err != nil {
			return err
		}
		r.nextID++
	}
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id uint) (*billing.Subscription, error) {
	for _, sub := range r.subs {
		if sub.ID() == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) GetActiveByUser(_ context.Context, userID string) (*billing.Subscription, error) {
	for _, sub := range r.subs {
		if sub.UserID() == userID && sub.IsActive() {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) GetActiveByUserForUpdate(ctx context.Context, userID string) (*billing.Subscription, error) {
	return r.GetActiveByUser(ctx, userID)
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, _ *billing.Subscription) error {
	return nil
}

func (r *fakeSubscriptionRepo) ListByUser(_ context.Context, userID string) ([]*billing.Subscription, error) {
	var out []*billing.Subscription
	for _, sub := range r.subs {
		if sub.UserID() == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, _ billing.SubscriptionFilter) ([]*billing.Subscription, int64, error) {
	return r.subs, int64(len(r.subs)), nil
}

func (r *fakeSubscriptionRepo) ListExpiredActive(_ context.Context, limit int) ([]*billing.Subscription, error) {
	var out []*billing.Subscription
	for _, sub := range r.subs {
		if sub.Status() == vo.SubscriptionActive && sub.IsExpired() {
			out = append(out, sub)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, sub := range r.subs {
		if sub.UserID() == userID && sub.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, sub := range r.subs {
		if sub.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) SumPricePaid(_ context.Context, activeOnly bool) (int64, error) {
	var sum int64
	for _, sub := range r.subs {
		if activeOnly && !sub.IsActive() {
			continue
		}
		sum += sub.PricePaid()
	}
	return sum, nil
}

type fakePaymentRequestRepo struct {
	reqs   map[uint]*billing.PaymentRequest
	nextID uint
}

func newFakePaymentRequestRepo() *fakePaymentRequestRepo {
	return &fakePaymentRequestRepo{reqs: make(map[uint]*billing.PaymentRequest), nextID: 1}
}

func (r *fakePaymentRequestRepo) Create(_ context.Context, req *billing.PaymentRequest) error {
	if req.ID() == 0 {
		if err := req.SetID(r.nextID); err != nil {
			return err
		}
		r.nextID++
	}
	r.reqs[req.ID()] = req
	return nil
}

func (r *fakePaymentRequestRepo) GetByID(_ context.Context, id uint) (*billing.PaymentRequest, error) {
	return r.reqs[id], nil
}

func (r *fakePaymentRequestRepo) GetByIDForUpdate(ctx context.Context, id uint) (*billing.PaymentRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePaymentRequestRepo) Update(_ context.Context, req *billing.PaymentRequest) error {
	r.reqs[req.ID()] = req
	return nil
}

func (r *fakePaymentRequestRepo) ListByUser(_ context.Context, userID string) ([]*billing.PaymentRequest, error) {
	var out []*billing.PaymentRequest
	for _, req := range r.reqs {
		if req.UserID() == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakePaymentRequestRepo) List(_ context.Context, filter billing.PaymentRequestFilter) ([]*billing.PaymentRequest, int64, error) {
	var out []*billing.PaymentRequest
	for _, req := range r.reqs {
		if filter.UserID != "" && req.UserID() != filter.UserID {
			continue
		}
		if filter.Status != nil && req.Status() != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRequestRepo) ListExpiredPending(_ context.Context, limit int) ([]*billing.PaymentRequest, error) {
	var out []*billing.PaymentRequest
	for _, req := range r.reqs {
		if req.IsExpired() {
			out = append(out, req)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakePaymentRequestRepo) CountPending(_ context.Context) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if !req.Status().IsFinal() {
			n++
		}
	}
	return n, nil
}

type fakeBankSettingsRepo struct {
	settings *billing.BankSettings
}

func (r *fakeBankSettingsRepo) Get(_ context.Context) (*billing.BankSettings, error) {
	return r.settings, nil
}

func (r *fakeBankSettingsRepo) Save(_ context.Context, s *billing.BankSettings) error {
	if s.ID() == 0 {
		if err := s.SetID(1); err != nil {
			return err
		}
	}
	r.settings = s
	return nil
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
		if r.entries[i].UserID() == filter.UserID {
			out = append(out, r.entries[i])
		}
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

func testLogger() logger.Interface {
	return logger.NewLogger()
}
