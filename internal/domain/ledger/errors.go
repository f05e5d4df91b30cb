package ledger

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrChainViolation      = errors.New("token ledger chain violation")
)
