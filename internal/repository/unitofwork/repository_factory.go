package unitofwork

import "context"

// RepositoryFactory opens a unit of work bound to ctx. Services take one
// per operation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
