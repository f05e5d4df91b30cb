package ledger

import "context"

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	UserID   string
	Type     *TransactionType
	Page     int
	PageSize int
}

// TokenTransactionRepository persists the append-only ledger. Entries are
// never updated or deleted.
type TokenTransactionRepository interface {
	// Append inserts a new entry and sets its ID.
	Append(ctx context.Context, tx *TokenTransaction) error
	// GetLatestByUser returns the most recent entry or (nil, nil) when the
	// user has no ledger yet. Callers serializing a ledger mutation must
	// hold the user's profile row lock before reading.
	GetLatestByUser(ctx context.Context, userID string) (*TokenTransaction, error)
	ListByUser(ctx context.Context, filter TransactionFilter) ([]*TokenTransaction, int64, error)
	// SumAmountByType totals amounts for one transaction type across all
	// users. Used by administrative statistics.
	SumAmountByType(ctx context.Context, txType TransactionType) (int64, error)
}
