// Package handlers contains the gin HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/identity/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type ProfileHandler struct {
	getProfileUC *usecases.GetProfileUseCase
	logger       logger.Interface
}

func NewProfileHandler(getProfileUC *usecases.GetProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC: getProfileUC,
		logger:       logger.NewLogger(),
	}
}

// GetOwnProfile returns the authenticated caller's profile mirror.
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	profile, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ProfileFromEntity(profile))
}
