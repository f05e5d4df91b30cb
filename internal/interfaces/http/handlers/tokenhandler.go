package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/application/ledger/usecases"
	"chatledger/internal/interfaces/dto"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

type TokenHandler struct {
	getBalanceUC       *usecases.GetBalanceUseCase
	listTransactionsUC *usecases.ListTransactionsUseCase
	logger             logger.Interface
}

func NewTokenHandler(
	getBalanceUC *usecases.GetBalanceUseCase,
	listTransactionsUC *usecases.ListTransactionsUseCase,
) *TokenHandler {
	return &TokenHandler{
		getBalanceUC:       getBalanceUC,
		listTransactionsUC: listTransactionsUC,
		logger:             logger.NewLogger(),
	}
}

type BalanceResponse struct {
	Available   int64 `json:"available"`
	TokensTotal int64 `json:"tokens_total"`
	TokensUsed  int64 `json:"tokens_used"`
	BonusTokens int64 `json:"bonus_tokens"`
}

// GetBalance returns the caller's token balance summary.
func (h *TokenHandler) GetBalance(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	result, err := h.getBalanceUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", BalanceResponse{
		Available:   result.Available,
		TokensTotal: result.TokensTotal,
		TokensUsed:  result.TokensUsed,
		BonusTokens: result.BonusTokens,
	})
}

// ListTransactions returns the caller's ledger entries, newest first.
func (h *TokenHandler) ListTransactions(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)
	pagination := utils.GetPagination(c)

	txs, total, err := h.listTransactionsUC.Execute(c.Request.Context(), usecases.ListTransactionsCommand{
		UserID:   userID,
		Type:     c.Query("type"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.TokenTransactionsFromEntities(txs), total, pagination.Page, pagination.PageSize)
}
