package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/billing/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *usecases.ListPlansUseCase
	logger      logger.Interface
}

func NewPlanHandler(listPlansUC *usecases.ListPlansUseCase) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		logger:      logger.NewLogger(),
	}
}

// ListPlans returns the active plan catalog, ordered for display.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PlansFromEntities(plans))
}
