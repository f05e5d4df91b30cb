package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "chatledger/internal/application/billing/usecases"
	identityUsecases "chatledger/internal/application/identity/usecases"
	ledgerUsecases "chatledger/internal/application/ledger/usecases"
	"chatledger/internal/domain/identity"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

// AdminHandler groups the administrative operations: profile repair, manual
// token adjustments, subscription activation, and payment review.
type AdminHandler struct {
	ensureProfileUC  *identityUsecases.EnsureProfileUseCase
	listProfilesUC   *identityUsecases.ListProfilesUseCase
	banUserUC        *identityUsecases.BanUserUseCase
	applyDeltaUC     *ledgerUsecases.ApplyTokenDeltaUseCase
	activateSubUC    *billingUsecases.ActivateSubscriptionUseCase
	resolvePaymentUC *billingUsecases.ResolvePaymentRequestUseCase
	listPaymentsUC   *billingUsecases.ListPaymentRequestsUseCase
	getStatsUC       *billingUsecases.GetAdminStatsUseCase
	getSettingsUC    *billingUsecases.GetBankSettingsUseCase
	updateSettingsUC *billingUsecases.UpdateBankSettingsUseCase
	logger           logger.Interface
}

func NewAdminHandler(
	ensureProfileUC *identityUsecases.EnsureProfileUseCase,
	listProfilesUC *identityUsecases.ListProfilesUseCase,
	banUserUC *identityUsecases.BanUserUseCase,
	applyDeltaUC *ledgerUsecases.ApplyTokenDeltaUseCase,
	activateSubUC *billingUsecases.ActivateSubscriptionUseCase,
	resolvePaymentUC *billingUsecases.ResolvePaymentRequestUseCase,
	listPaymentsUC *billingUsecases.ListPaymentRequestsUseCase,
	getStatsUC *billingUsecases.GetAdminStatsUseCase,
	getSettingsUC *billingUsecases.GetBankSettingsUseCase,
	updateSettingsUC *billingUsecases.UpdateBankSettingsUseCase,
) *AdminHandler {
	return &AdminHandler{
		ensureProfileUC:  ensureProfileUC,
		listProfilesUC:   listProfilesUC,
		banUserUC:        banUserUC,
		applyDeltaUC:     applyDeltaUC,
		activateSubUC:    activateSubUC,
		resolvePaymentUC: resolvePaymentUC,
		listPaymentsUC:   listPaymentsUC,
		getStatsUC:       getStatsUC,
		getSettingsUC:    getSettingsUC,
		updateSettingsUC: updateSettingsUC,
		logger:           logger.NewLogger(),
	}
}

type EnsureProfileRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// EnsureProfile repairs a missing profile row for a provider user whose
// creation event was lost. 201 when created, 200 when already present.
func (h *AdminHandler) EnsureProfile(c *gin.Context) {
	var req EnsureProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for ensure profile", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, created, err := h.ensureProfileUC.Execute(c.Request.Context(), identityUsecases.EnsureProfileCommand{
		UserID: req.UserID,
		Email:  req.Email,
		Metadata: identity.UserMetadata{
			Username:  req.Username,
			FullName:  req.FullName,
			AvatarURL: req.AvatarURL,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if created {
		utils.CreatedResponse(c, dto.ProfileFromEntity(profile), "Profile created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Profile already exists", dto.ProfileFromEntity(profile))
}

// ListUsers lists and searches profile mirrors.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	pagination := utils.GetPagination(c)

	profiles, total, err := h.listProfilesUC.Execute(c.Request.Context(), identityUsecases.ListProfilesCommand{
		Search:   c.Query("search"),
		Tier:     c.Query("tier"),
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ProfilesFromEntities(profiles), total, pagination.Page, pagination.PageSize)
}

type BanUserRequest struct {
	Ban    bool   `json:"ban"`
	Reason string `json:"reason"`
}

// BanUser sets or clears a user's ban flag.
func (h *AdminHandler) BanUser(c *gin.Context) {
	userID := c.Param("id")

	var req BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for ban user", "user_id", userID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.banUserUC.Execute(c.Request.Context(), identityUsecases.BanUserCommand{
		UserID: userID,
		Ban:    req.Ban,
		Reason: req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ProfileFromEntity(profile))
}

type ApplyTokenDeltaRequest struct {
	UserID     string  `json:"user_id" binding:"required"`
	Amount     int64   `json:"amount" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	Reason     string  `json:"reason" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// ApplyTokenDelta appends a manual adjustment to a user's token ledger.
func (h *AdminHandler) ApplyTokenDelta(c *gin.Context) {
	var req ApplyTokenDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for token delta", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.applyDeltaUC.Execute(c.Request.Context(), ledgerUsecases.ApplyTokenDeltaCommand{
		UserID:     req.UserID,
		Amount:     req.Amount,
		Type:       req.Type,
		Reason:     req.Reason,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.TokenTransactionFromEntity(tx), "Token delta applied")
}

type ActivateSubscriptionRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	PlanID       uint    `json:"plan_id" binding:"required"`
	BillingCycle string  `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
	AdminNotes   *string `json:"admin_notes"`
}

// ActivateSubscription enrolls a user in a plan without a payment request.
func (h *AdminHandler) ActivateSubscription(c *gin.Context) {
	var req ActivateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for activate subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.activateSubUC.Execute(c.Request.Context(), billingUsecases.ActivateSubscriptionCommand{
		UserID:           req.UserID,
		PlanID:           req.PlanID,
		BillingCycle:     req.BillingCycle,
		ActivatedByAdmin: true,
		AdminNotes:       req.AdminNotes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.SubscriptionFromEntity(sub), "Subscription activated")
}

type ResolvePaymentRequestRequest struct {
	Action          string  `json:"action" binding:"required,oneof=confirm reject"`
	AdminNotes      *string `json:"admin_notes"`
	RejectionReason string  `json:"rejection_reason"`
}

// ResolvePayment confirms or rejects a pending payment request.
func (h *AdminHandler) ResolvePayment(c *gin.Context) {
	requestID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ResolvePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for resolve payment", "request_id", requestID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.resolvePaymentUC.Execute(c.Request.Context(), billingUsecases.ResolvePaymentRequestCommand{
		RequestID:       requestID,
		Action:          req.Action,
		AdminNotes:      req.AdminNotes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment request resolved", dto.PaymentRequestFromEntity(result))
}

// ListPayments lists payment requests across all users, optionally by status.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	pagination := utils.GetPagination(c)

	reqs, total, err := h.listPaymentsUC.Execute(c.Request.Context(), billingUsecases.ListPaymentRequestsCommand{
		UserID:   c.Query("user_id"),
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.PaymentRequestsFromEntities(reqs), total, pagination.Page, pagination.PageSize)
}

// GetSettings returns the configured bank transfer coordinates.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.getSettingsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if settings == nil {
		utils.SuccessResponse(c, http.StatusOK, "", dto.BankSettingsDTO{})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.BankSettingsFromEntity(settings))
}

type UpdateBankSettingsRequest struct {
	BankName               *string `json:"bank_name"`
	AccountHolder          *string `json:"account_holder"`
	AccountNumber          *string `json:"account_number"`
	IBAN                   *string `json:"iban"`
	SwiftBIC               *string `json:"swift_bic"`
	Branch                 *string `json:"branch"`
	Country                *string `json:"country"`
	AdditionalInstructions *string `json:"additional_instructions"`
}

// UpdateSettings merges a partial edit into the bank transfer coordinates,
// creating the record on the first write.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req UpdateBankSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update bank settings", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.updateSettingsUC.Execute(c.Request.Context(), billingUsecases.UpdateBankSettingsCommand{
		BankName:               req.BankName,
		AccountHolder:          req.AccountHolder,
		AccountNumber:          req.AccountNumber,
		IBAN:                   req.IBAN,
		SwiftBIC:               req.SwiftBIC,
		Branch:                 req.Branch,
		Country:                req.Country,
		AdditionalInstructions: req.AdditionalInstructions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bank settings updated", dto.BankSettingsFromEntity(settings))
}

type AdminStatsResponse struct {
	TotalUsers          int64 `json:"total_users"`
	NewUsersToday       int64 `json:"new_users_today"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	PendingPayments     int64 `json:"pending_payments"`
	TotalRevenue        int64 `json:"total_revenue"`
	ActiveRevenue       int64 `json:"active_revenue"`
	TokensGranted       int64 `json:"tokens_granted"`
	TokensSpent         int64 `json:"tokens_spent"`
}

// GetStats returns dashboard aggregates.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.getStatsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AdminStatsResponse{
		TotalUsers:          stats.TotalUsers,
		NewUsersToday:       stats.NewUsersToday,
		ActiveSubscriptions: stats.ActiveSubscriptions,
		PendingPayments:     stats.PendingPayments,
		TotalRevenue:        stats.TotalRevenue,
		ActiveRevenue:       stats.ActiveRevenue,
		TokensGranted:       stats.TokensGranted,
		TokensSpent:         stats.TokensSpent,
	})
}
