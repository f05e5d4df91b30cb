// Package server implements the server subcommand.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	billingUsecases "chatledger/internal/application/billing/usecases"
	contactUsecases "chatledger/internal/application/contact/usecases"
	identityUsecases "chatledger/internal/application/identity/usecases"
	ledgerUsecases "chatledger/internal/application/ledger/usecases"
	"chatledger/internal/infrastructure/auth"
	"chatledger/internal/infrastructure/config"
	"chatledger/internal/infrastructure/database"
	"chatledger/internal/infrastructure/migration"
	"chatledger/internal/infrastructure/ratelimit"
	"chatledger/internal/infrastructure/repository"
	"chatledger/internal/infrastructure/scheduler"
	httpRouter "chatledger/internal/interfaces/http"
	"chatledger/internal/interfaces/http/handlers"
	"chatledger/internal/interfaces/http/middleware"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

var (
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config directory")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server",
		"environment", cfg.Environment,
		"auto_migrate", autoMigrate,
	)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		manager := migration.NewManager(cfg.Environment)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	profileRepo := repository.NewProfileRepository(gormDB, log)
	planRepo := repository.NewPlanRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	paymentRequestRepo := repository.NewPaymentRequestRepository(gormDB, log)
	transactionRepo := repository.NewTokenTransactionRepository(gormDB, log)
	contactRepo := repository.NewContactRequestRepository(gormDB, log)
	bankSettingsRepo := repository.NewBankSettingsRepository(gormDB, log)

	applyDeltaUC := ledgerUsecases.NewApplyTokenDeltaUseCase(txManager, profileRepo, transactionRepo, subscriptionRepo, log)
	getBalanceUC := ledgerUsecases.NewGetBalanceUseCase(profileRepo, transactionRepo, log)
	listTransactionsUC := ledgerUsecases.NewListTransactionsUseCase(transactionRepo, log)

	activateSubUC := billingUsecases.NewActivateSubscriptionUseCase(txManager, planRepo, subscriptionRepo, profileRepo, applyDeltaUC, log)
	resolvePaymentUC := billingUsecases.NewResolvePaymentRequestUseCase(txManager, paymentRequestRepo, activateSubUC, log)
	createPaymentUC := billingUsecases.NewCreatePaymentRequestUseCase(planRepo, paymentRequestRepo, profileRepo, log)
	submitProofUC := billingUsecases.NewSubmitPaymentProofUseCase(paymentRequestRepo, log)
	listPaymentsUC := billingUsecases.NewListPaymentRequestsUseCase(paymentRequestRepo, log)
	listPlansUC := billingUsecases.NewListPlansUseCase(planRepo, log)
	getCurrentSubUC := billingUsecases.NewGetCurrentSubscriptionUseCase(subscriptionRepo, log)
	listUserSubsUC := billingUsecases.NewListUserSubscriptionsUseCase(subscriptionRepo, log)
	cancelSubUC := billingUsecases.NewCancelSubscriptionUseCase(txManager, subscriptionRepo, profileRepo, log)
	expirePaymentsUC := billingUsecases.NewExpirePaymentRequestsUseCase(txManager, paymentRequestRepo, log)
	expireSubsUC := billingUsecases.NewExpireSubscriptionsUseCase(txManager, subscriptionRepo, profileRepo, log)
	getStatsUC := billingUsecases.NewGetAdminStatsUseCase(profileRepo, subscriptionRepo, paymentRequestRepo, transactionRepo, log)
	getBankSettingsUC := billingUsecases.NewGetBankSettingsUseCase(bankSettingsRepo, log)
	updateBankSettingsUC := billingUsecases.NewUpdateBankSettingsUseCase(bankSettingsRepo, log)

	syncCreatedUC := identityUsecases.NewSyncUserCreatedUseCase(profileRepo, log)
	syncEmailUC := identityUsecases.NewSyncUserEmailChangedUseCase(profileRepo, log)
	ensureProfileUC := identityUsecases.NewEnsureProfileUseCase(profileRepo, log)
	getProfileUC := identityUsecases.NewGetProfileUseCase(profileRepo, log)
	listProfilesUC := identityUsecases.NewListProfilesUseCase(profileRepo, log)
	banUserUC := identityUsecases.NewBanUserUseCase(profileRepo, log)

	createContactUC := contactUsecases.NewCreateContactRequestUseCase(contactRepo, log)
	listContactUC := contactUsecases.NewListContactRequestsUseCase(contactRepo, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	var rateLimiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		redisLimiter := ratelimit.NewRedisRateLimiter(&cfg.Redis, cfg.RateLimit.RequestsPerMinute, log)
		defer redisLimiter.Close()
		rateLimiter = redisLimiter
	}

	router := httpRouter.NewRouter(
		handlers.NewProfileHandler(getProfileUC),
		handlers.NewPlanHandler(listPlansUC),
		handlers.NewSubscriptionHandler(getCurrentSubUC, listUserSubsUC, cancelSubUC),
		handlers.NewPaymentHandler(createPaymentUC, submitProofUC, listPaymentsUC, getBankSettingsUC),
		handlers.NewTokenHandler(getBalanceUC, listTransactionsUC),
		handlers.NewContactHandler(createContactUC, listContactUC),
		handlers.NewIdentityEventHandler(syncCreatedUC, syncEmailUC),
		handlers.NewAdminHandler(ensureProfileUC, listProfilesUC, banUserUC, applyDeltaUC, activateSubUC, resolvePaymentUC, listPaymentsUC, getStatsUC, getBankSettingsUC, updateBankSettingsUC),
		authMiddleware,
		rateLimiter,
		log,
	)
	router.SetupRoutes(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	billingScheduler := scheduler.NewBillingScheduler(expirePaymentsUC, expireSubsUC, cfg.Billing.ExpirySweepMinutes, log)
	billingScheduler.Start(ctx)
	defer billingScheduler.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
