package usecases

import "context"

// TransactionManager runs a unit of work atomically. Satisfied by
// shared/db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
