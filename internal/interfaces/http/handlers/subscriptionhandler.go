package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/billing/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type SubscriptionHandler struct {
	getCurrentUC *usecases.GetCurrentSubscriptionUseCase
	listUserUC   *usecases.ListUserSubscriptionsUseCase
	cancelUC     *usecases.CancelSubscriptionUseCase
	logger       logger.Interface
}

func NewSubscriptionHandler(
	getCurrentUC *usecases.GetCurrentSubscriptionUseCase,
	listUserUC *usecases.ListUserSubscriptionsUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getCurrentUC: getCurrentUC,
		listUserUC:   listUserUC,
		cancelUC:     cancelUC,
		logger:       logger.NewLogger(),
	}
}

// GetCurrent returns the caller's active subscription, or null data when
// they have none.
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	sub, err := h.getCurrentUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if sub == nil {
		utils.SuccessResponse(c, http.StatusOK, "", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.SubscriptionFromEntity(sub))
}

// ListOwn returns the caller's subscription history.
func (h *SubscriptionHandler) ListOwn(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	subs, err := h.listUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.SubscriptionsFromEntities(subs))
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// Cancel ends the caller's active subscription.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cancel subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", dto.SubscriptionFromEntity(sub))
}
