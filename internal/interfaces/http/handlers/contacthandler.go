package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/contact/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type ContactHandler struct {
	createUC *usecases.CreateContactRequestUseCase
	listUC   *usecases.ListContactRequestsUseCase
	logger   logger.Interface
}

func NewContactHandler(
	createUC *usecases.CreateContactRequestUseCase,
	listUC *usecases.ListContactRequestsUseCase,
) *ContactHandler {
	return &ContactHandler{
		createUC: createUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Create stores a contact-form submission.
func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for contact request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateContactRequestCommand{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ContactRequestFromEntity(result), "Contact request received")
}

// List returns contact submissions for administrators.
func (h *ContactHandler) List(c *gin.Context) {
	pagination := utils.GetPagination(c)

	reqs, total, err := h.listUC.Execute(c.Request.Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ContactRequestsFromEntities(reqs), total, pagination.Page, pagination.PageSize)
}
