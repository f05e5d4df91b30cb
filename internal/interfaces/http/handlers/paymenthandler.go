package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/billing/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type PaymentHandler struct {
	createRequestUC   *usecases.CreatePaymentRequestUseCase
	submitProofUC     *usecases.SubmitPaymentProofUseCase
	listRequestsUC    *usecases.ListPaymentRequestsUseCase
	getBankSettingsUC *usecases.GetBankSettingsUseCase
	logger            logger.Interface
}

func NewPaymentHandler(
	createRequestUC *usecases.CreatePaymentRequestUseCase,
	submitProofUC *usecases.SubmitPaymentProofUseCase,
	listRequestsUC *usecases.ListPaymentRequestsUseCase,
	getBankSettingsUC *usecases.GetBankSettingsUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		createRequestUC:   createRequestUC,
		submitProofUC:     submitProofUC,
		listRequestsUC:    listRequestsUC,
		getBankSettingsUC: getBankSettingsUC,
		logger:            logger.NewLogger(),
	}
}

type CreatePaymentRequestRequest struct {
	PlanID       uint   `json:"plan_id" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
}

// CreateRequest opens a pending payment request for the caller.
func (h *PaymentHandler) CreateRequest(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	var req CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create payment request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createRequestUC.Execute(c.Request.Context(), usecases.CreatePaymentRequestCommand{
		UserID:       userID,
		PlanID:       req.PlanID,
		BillingCycle: req.BillingCycle,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.PaymentRequestFromEntity(result), "Payment request created")
}

type SubmitProofRequest struct {
	TransactionReference string    `json:"transaction_reference" binding:"required"`
	PaymentDate          time.Time `json:"payment_date" binding:"required"`
	ScreenshotURL        *string   `json:"screenshot_url"`
}

// SubmitProof attaches payment proof to the caller's own pending request.
func (h *PaymentHandler) SubmitProof(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	requestID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit payment proof", "request_id", requestID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.submitProofUC.Execute(c.Request.Context(), usecases.SubmitPaymentProofCommand{
		RequestID:            requestID,
		UserID:               userID,
		TransactionReference: req.TransactionReference,
		PaymentDate:          req.PaymentDate,
		ScreenshotURL:        req.ScreenshotURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment proof submitted", dto.PaymentRequestFromEntity(result))
}

// ListOwn returns the caller's payment requests.
func (h *PaymentHandler) ListOwn(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	reqs, err := h.listRequestsUC.ExecuteForUser(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PaymentRequestsFromEntities(reqs))
}

// GetBankSettings returns the transfer coordinates for paying a request.
// Returns an empty object until an admin configures them.
func (h *PaymentHandler) GetBankSettings(c *gin.Context) {
	settings, err := h.getBankSettingsUC.Execute(c.Request.Context())
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

func parseIDParam(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	if idStr == "" {
		return 0, errors.NewValidationError("id is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid id format")
	}
	return uint(id), nil
}
