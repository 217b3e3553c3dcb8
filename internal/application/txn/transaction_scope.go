package txn

import (
	"context"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/trade"
)

// TransactionScope provides atomic execution of multiple repository
// operations. Implementations acquire a connection for the duration of
// one Execute call only; nothing is held between calls.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories scoped to
// the current transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
	// StoreCreditRepo returns the store credit repository scoped to the current transaction
	StoreCreditRepo() finance.StoreCreditRepository
	// StockItemRepo returns the stock item repository scoped to the current transaction
	StockItemRepo() inventory.StockItemRepository
	// StockMovementRepo returns the stock movement repository scoped to the current transaction
	StockMovementRepo() inventory.StockMovementRepository
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() purchasing.PurchaseRepository
}
