package models

import (
	"time"

	"chatledger/internal/shared/constants"
)

// TokenTransactionModel is the persistence model for the append-only token
// ledger. Rows are inserted and read, never updated or deleted.
type TokenTransactionModel struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	UserID          string `gorm:"size:36;not null;index:idx_token_transactions_user_id_id"`
	Amount          int64  `gorm:"not null"`
	TransactionType string `gorm:"size:30;not null;index"`
	Reason          string `gorm:"size:255;not null"`
	BalanceBefore   int64  `gorm:"not null"`
	BalanceAfter    int64  `gorm:"not null"`
	AdminNotes      *string `gorm:"size:1000"`
	CreatedAt       time.Time
}

func (TokenTransactionModel) TableName() string {
	return constants.TableTokenTransactions
}
