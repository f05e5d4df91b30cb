package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/identity/usecases"
	"chatledger/internal/domain/identity"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

const (
	EventUserCreated      = "user.created"
	EventUserEmailChanged = "user.email_changed"
)

// IdentityEventEnvelope is the provider's webhook payload. Data is decoded
// per event type.
type IdentityEventEnvelope struct {
	Type string          `json:"type" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// IdentityEventHandler consumes identity-provider webhook events. Delivery
// is at-least-once; the sync use cases are idempotent so redeliveries and
// out-of-order arrivals converge on the same state.
type IdentityEventHandler struct {
	syncCreatedUC *usecases.SyncUserCreatedUseCase
	syncEmailUC   *usecases.SyncUserEmailChangedUseCase
	logger        logger.Interface
}

func NewIdentityEventHandler(
	syncCreatedUC *usecases.SyncUserCreatedUseCase,
	syncEmailUC *usecases.SyncUserEmailChangedUseCase,
) *IdentityEventHandler {
	return &IdentityEventHandler{
		syncCreatedUC: syncCreatedUC,
		syncEmailUC:   syncEmailUC,
		logger:        logger.NewLogger(),
	}
}

// HandleEvent dispatches one provider event. Unknown event types are
// acknowledged so the provider does not retry them forever.
func (h *IdentityEventHandler) HandleEvent(c *gin.Context) {
	var envelope IdentityEventEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		h.logger.Warnw("invalid identity event envelope", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event envelope")
		return
	}

	switch envelope.Type {
	case EventUserCreated:
		h.handleUserCreated(c, envelope.Data)
	case EventUserEmailChanged:
		h.handleUserEmailChanged(c, envelope.Data)
	default:
		h.logger.Infow("ignoring unknown identity event", "type", envelope.Type)
		utils.SuccessResponse(c, http.StatusOK, "event ignored", nil)
	}
}

func (h *IdentityEventHandler) handleUserCreated(c *gin.Context, data json.RawMessage) {
	var event identity.UserCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Warnw("invalid user.created payload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event payload")
		return
	}

	if _, err := h.syncCreatedUC.Execute(c.Request.Context(), usecases.SyncUserCreatedCommand{Event: event}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event processed", nil)
}

func (h *IdentityEventHandler) handleUserEmailChanged(c *gin.Context, data json.RawMessage) {
	var event identity.UserEmailChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Warnw("invalid user.email_changed payload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event payload")
		return
	}

	if err := h.syncEmailUC.Execute(c.Request.Context(), usecases.SyncUserEmailChangedCommand{Event: event}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event processed", nil)
}
