package usecases

import "context"

// TransactionManager runs a unit of work atomically. Satisfied by
// shared/db.TransactionManager; redeclared here so use cases stay
// testable without a database.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
