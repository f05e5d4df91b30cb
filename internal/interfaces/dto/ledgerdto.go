package dto

import (
	"time"

	"chatledger/internal/domain/ledger"
)

type TokenTransactionDTO struct {
	ID              uint      `json:"id"`
	UserID          string    `json:"user_id"`
	Amount          int64     `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Reason          string    `json:"reason"`
	BalanceBefore   int64     `json:"balance_before"`
	BalanceAfter    int64     `json:"balance_after"`
	CreatedAt       time.Time `json:"created_at"`
}

func TokenTransactionFromEntity(t *ledger.TokenTransaction) TokenTransactionDTO {
	return TokenTransactionDTO{
		ID:              t.ID(),
		UserID:          t.UserID(),
		Amount:          t.Amount(),
		TransactionType: string(t.TransactionType()),
		Reason:          t.Reason(),
		BalanceBefore:   t.BalanceBefore(),
		BalanceAfter:    t.BalanceAfter(),
		CreatedAt:       t.CreatedAt(),
	}
}

func TokenTransactionsFromEntities(txs []*ledger.TokenTransaction) []TokenTransactionDTO {
	out := make([]TokenTransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, TokenTransactionFromEntity(t))
	}
	return out
}
