// Package ledger holds the append-only token transaction chain. The current
// balance of a user is the balance_after of their most recent entry, never a
// mutable counter; every entry must satisfy
// balance_after = balance_before + amount, and consecutive entries for one
// user must chain (each balance_before equals the prior balance_after).
package ledger

import (
	"fmt"
	"time"

	"chatledger/internal/shared/biztime"
)

// TokenTransaction is one immutable ledger entry. Amount is signed: credits
// are positive, debits negative.
type TokenTransaction struct {
	id              uint
	userID          string
	amount          int64
	transactionType TransactionType
	reason          string
	balanceBefore   int64
	balanceAfter    int64
	adminNotes      *string
	createdAt       time.Time
}

// NewTokenTransaction builds the next entry in a user's chain. balanceBefore
// must be the balance_after of the user's latest entry (0 for the first).
// A debit that would drive the balance negative fails with
// ErrInsufficientBalance unless the type allows overdraft.
func NewTokenTransaction(userID string, amount int64, txType TransactionType, reason string, balanceBefore int64, adminNotes *string) (*TokenTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if amount == 0 {
		return nil, fmt.Errorf("transaction amount cannot be zero")
	}
	if !validTransactionTypes[txType] {
		return nil, fmt.Errorf("invalid transaction type: %s", txType)
	}
	if reason == "" {
		return nil, fmt.Errorf("transaction reason is required")
	}

	balanceAfter := balanceBefore + amount
	if balanceAfter < 0 && !txType.AllowsNegativeBalance() {
		return nil, fmt.Errorf("%w: balance %d with delta %d", ErrInsufficientBalance, balanceBefore, amount)
	}

	return &TokenTransaction{
		userID:          userID,
		amount:          amount,
		transactionType: txType,
		reason:          reason,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		adminNotes:      adminNotes,
		createdAt:       biztime.NowUTC(),
	}, nil
}

// TokenTransactionReconstructParams carries persisted state back into the entity.
type TokenTransactionReconstructParams struct {
	ID              uint
	UserID          string
	Amount          int64
	TransactionType TransactionType
	Reason          string
	BalanceBefore   int64
	BalanceAfter    int64
	AdminNotes      *string
	CreatedAt       time.Time
}

// ReconstructTokenTransaction reconstructs an entry from persistence. The
// row invariant is re-checked: stored chains are never trusted blindly.
func ReconstructTokenTransaction(p TokenTransactionReconstructParams) (*TokenTransaction, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("transaction ID cannot be zero")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.BalanceAfter != p.BalanceBefore+p.Amount {
		return nil, fmt.Errorf("%w: %d != %d + %d", ErrChainViolation, p.BalanceAfter, p.BalanceBefore, p.Amount)
	}

	return &TokenTransaction{
		id:              p.ID,
		userID:          p.UserID,
		amount:          p.Amount,
		transactionType: p.TransactionType,
		reason:          p.Reason,
		balanceBefore:   p.BalanceBefore,
		balanceAfter:    p.BalanceAfter,
		adminNotes:      p.AdminNotes,
		createdAt:       p.CreatedAt,
	}, nil
}

func (t *TokenTransaction) ID() uint                         { return t.id }
func (t *TokenTransaction) UserID() string                   { return t.userID }
func (t *TokenTransaction) Amount() int64                    { return t.amount }
func (t *TokenTransaction) TransactionType() TransactionType { return t.transactionType }
func (t *TokenTransaction) Reason() string                   { return t.reason }
func (t *TokenTransaction) BalanceBefore() int64             { return t.balanceBefore }
func (t *TokenTransaction) BalanceAfter() int64              { return t.balanceAfter }
func (t *TokenTransaction) AdminNotes() *string              { return t.adminNotes }
func (t *TokenTransaction) CreatedAt() time.Time             { return t.createdAt }

// IsDebit reports whether the entry reduces the balance.
func (t *TokenTransaction) IsDebit() bool {
	return t.amount < 0
}

// SetID sets the transaction ID (only for persistence layer use)
func (t *TokenTransaction) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("transaction ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("transaction ID cannot be zero")
	}
	t.id = id
	return nil
}

// VerifyChain checks the continuity invariant over a user's entries ordered
// oldest first. Used by tests and consistency sweeps.
func VerifyChain(entries []*TokenTransaction) error {
	prev := int64(0)
	for i, e := range entries {
		if e.balanceBefore != prev {
			return fmt.Errorf("%w: entry %d balance_before %d, expected %d", ErrChainViolation, i, e.balanceBefore, prev)
		}
		if e.balanceAfter != e.balanceBefore+e.amount {
			return fmt.Errorf("%w: entry %d balance_after %d != %d + %d", ErrChainViolation, i, e.balanceAfter, e.balanceBefore, e.amount)
		}
		prev = e.balanceAfter
	}
	return nil
}
