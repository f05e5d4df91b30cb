// Package scheduler runs periodic billing maintenance tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	billingUsecases "chatledger/internal/application/billing/usecases"
	"chatledger/internal/shared/logger"
)

// BillingScheduler periodically expires stale pending payment requests and
// lapsed subscriptions. Resolution paths also expire lazily; the sweep only
// tidies rows nobody touched.
type BillingScheduler struct {
	expirePaymentsUC      *billingUsecases.ExpirePaymentRequestsUseCase
	expireSubscriptionsUC *billingUsecases.ExpireSubscriptionsUseCase
	logger                logger.Interface
	stopChan              chan struct{}
	stopOnce              sync.Once
	wg                    sync.WaitGroup
	interval              time.Duration
}

func NewBillingScheduler(
	expirePaymentsUC *billingUsecases.ExpirePaymentRequestsUseCase,
	expireSubscriptionsUC *billingUsecases.ExpireSubscriptionsUseCase,
	sweepMinutes int,
	logger logger.Interface,
) *BillingScheduler {
	if sweepMinutes < 1 {
		sweepMinutes = 30
	}
	return &BillingScheduler{
		expirePaymentsUC:      expirePaymentsUC,
		expireSubscriptionsUC: expireSubscriptionsUC,
		logger:                logger,
		stopChan:              make(chan struct{}),
		interval:              time.Duration(sweepMinutes) * time.Minute,
	}
}

// Start launches the sweep loop. Returns immediately.
func (s *BillingScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting billing scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSweepLoop(ctx)
	}()
}

// Stop stops the scheduler and waits for the running sweep to finish.
// Safe to call multiple times.
func (s *BillingScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping billing scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("billing scheduler stopped")
	})
}

func (s *BillingScheduler) runSweepLoop(ctx context.Context) {
	// Sweep once on startup to clear anything that lapsed while down.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("billing scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *BillingScheduler) sweep(ctx context.Context) {
	start := time.Now()

	expiredPayments, err := s.expirePaymentsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to expire payment requests",
			"error", err,
			"duration", time.Since(start),
		)
	} else if expiredPayments > 0 {
		s.logger.Infow("payment requests expired",
			"count", expiredPayments,
			"duration", time.Since(start),
		)
	}

	expiredSubs, err := s.expireSubscriptionsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to expire subscriptions", "error", err)
	} else if expiredSubs > 0 {
		s.logger.Infow("subscriptions expired", "count", expiredSubs)
	}
}
