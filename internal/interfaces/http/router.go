// Package http wires the gin engine, middleware, and handlers.
package http

import (
	"github.com/gin-gonic/gin"

	"chatledger/internal/infrastructure/config"
	"chatledger/internal/interfaces/http/handlers"
	"chatledger/internal/interfaces/http/middleware"
	"chatledger/internal/shared/logger"
)

type Router struct {
	engine *gin.Engine

	profileHandler       *handlers.ProfileHandler
	planHandler          *handlers.PlanHandler
	subscriptionHandler  *handlers.SubscriptionHandler
	paymentHandler       *handlers.PaymentHandler
	tokenHandler         *handlers.TokenHandler
	contactHandler       *handlers.ContactHandler
	identityEventHandler *handlers.IdentityEventHandler
	adminHandler         *handlers.AdminHandler

	authMiddleware *middleware.AuthMiddleware
	rateLimiter    middleware.Limiter
	logger         logger.Interface
}

func NewRouter(
	profileHandler *handlers.ProfileHandler,
	planHandler *handlers.PlanHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	paymentHandler *handlers.PaymentHandler,
	tokenHandler *handlers.TokenHandler,
	contactHandler *handlers.ContactHandler,
	identityEventHandler *handlers.IdentityEventHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.Limiter,
	log logger.Interface,
) *Router {
	return &Router{
		engine:               gin.New(),
		profileHandler:       profileHandler,
		planHandler:          planHandler,
		subscriptionHandler:  subscriptionHandler,
		paymentHandler:       paymentHandler,
		tokenHandler:         tokenHandler,
		contactHandler:       contactHandler,
		identityEventHandler: identityEventHandler,
		adminHandler:         adminHandler,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		logger:               log,
	}
}

// Engine exposes the configured gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	r.setupWebhookRoutes(api, cfg)
	r.setupUserRoutes(api)
	r.setupAdminRoutes(api)
}

func (r *Router) setupWebhookRoutes(api *gin.RouterGroup, cfg *config.Config) {
	events := api.Group("/identity/events")
	events.Use(middleware.WebhookSecret(cfg.Auth.Webhook.Secret, r.logger))
	if r.rateLimiter != nil {
		events.Use(middleware.RateLimit(r.rateLimiter, r.logger))
	}
	{
		events.POST("", r.identityEventHandler.HandleEvent)
	}
}

func (r *Router) setupUserRoutes(api *gin.RouterGroup) {
	// Plan catalog, transfer coordinates, and contact form are public.
	api.GET("/plans", r.planHandler.ListPlans)
	api.GET("/bank-settings", r.paymentHandler.GetBankSettings)
	api.POST("/contact", r.contactHandler.Create)

	authed := api.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	if r.rateLimiter != nil {
		authed.Use(middleware.RateLimit(r.rateLimiter, r.logger))
	}
	{
		authed.GET("/profile", r.profileHandler.GetOwnProfile)

		authed.GET("/subscriptions", r.subscriptionHandler.ListOwn)
		authed.GET("/subscriptions/current", r.subscriptionHandler.GetCurrent)
		authed.POST("/subscriptions/cancel", r.subscriptionHandler.Cancel)

		authed.GET("/payment-requests", r.paymentHandler.ListOwn)
		authed.POST("/payment-requests", r.paymentHandler.CreateRequest)
		authed.POST("/payment-requests/:id/proof", r.paymentHandler.SubmitProof)

		authed.GET("/tokens", r.tokenHandler.GetBalance)
		authed.GET("/tokens/transactions", r.tokenHandler.ListTransactions)
	}
}

func (r *Router) setupAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireAdmin())
	{
		admin.POST("/profiles/ensure", r.adminHandler.EnsureProfile)
		admin.GET("/users", r.adminHandler.ListUsers)
		admin.POST("/users/:id/ban", r.adminHandler.BanUser)

		admin.POST("/tokens/delta", r.adminHandler.ApplyTokenDelta)
		admin.POST("/subscriptions/activate", r.adminHandler.ActivateSubscription)

		admin.GET("/payment-requests", r.adminHandler.ListPayments)
		admin.POST("/payment-requests/:id/resolve", r.adminHandler.ResolvePayment)

		admin.GET("/settings", r.adminHandler.GetSettings)
		admin.PUT("/settings", r.adminHandler.UpdateSettings)

		admin.GET("/contact-requests", r.contactHandler.List)
		admin.GET("/stats", r.adminHandler.GetStats)
	}
}
