package ledger

import "fmt"

// TransactionType classifies ledger entries. The type decides whether a
// debit may drive the balance negative.
type TransactionType string

const (
	// TypeGrant credits tokens from a subscription or signup allowance.
	TypeGrant TransactionType = "grant"
	// TypeBonus credits promotional tokens.
	TypeBonus TransactionType = "bonus"
	// TypeSpend debits tokens consumed by the chat service.
	TypeSpend TransactionType = "spend"
	// TypeRefund credits tokens returned to the user.
	TypeRefund TransactionType = "refund"
	// TypeAdminAdjustment is a manual correction and may overdraw.
	TypeAdminAdjustment TransactionType = "admin_adjustment"
)

var validTransactionTypes = map[TransactionType]bool{
	TypeGrant:           true,
	TypeBonus:           true,
	TypeSpend:           true,
	TypeRefund:          true,
	TypeAdminAdjustment: true,
}

func NewTransactionType(value string) (TransactionType, error) {
	tt := TransactionType(value)
	if !validTransactionTypes[tt] {
		return "", fmt.Errorf("invalid transaction type: %s", value)
	}
	return tt, nil
}

func (t TransactionType) String() string {
	return string(t)
}

// AllowsNegativeBalance reports whether a debit of this type may leave the
// balance below zero.
func (t TransactionType) AllowsNegativeBalance() bool {
	return t == TypeAdminAdjustment
}

// IsCredit reports whether the type conventionally carries a positive amount.
func (t TransactionType) IsCredit() bool {
	return t == TypeGrant || t == TypeBonus || t == TypeRefund
}
