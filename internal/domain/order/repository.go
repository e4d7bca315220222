package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// TransactionDetail is a transaction joined with the buyer's username
// and the product name, used by the admin transaction listing.
type TransactionDetail struct {
	Transaction
	Username    string
	ProductName string
}

// TransactionRepository defines persistence operations for transactions.
// Transactions are append-only; there are no update or delete operations.
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// FindAllDetailed lists all transactions joined with username and
	// product name, newest first.
	FindAllDetailed(ctx context.Context, filter shared.Filter) ([]TransactionDetail, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]TransactionDetail, error)
	Count(ctx context.Context) (int64, error)
}

// PurchaseStore executes the atomic purchase unit: a conditional stock
// decrement plus the transaction insert, committed together or not at all.
type PurchaseStore interface {
	// RecordPurchase decrements the product's stock by txn.Quantity only if
	// enough stock remains, and appends txn in the same database transaction.
	// It returns shared.ErrInsufficientStock when the conditional decrement
	// matches no row, leaving the store untouched.
	RecordPurchase(ctx context.Context, txn *Transaction) error
}
