package order

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jelectro/storefront/internal/domain/catalog"
	"github.com/jelectro/storefront/internal/domain/order"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// CheckoutService handles purchases and transaction history
type CheckoutService struct {
	productRepo   catalog.ProductRepository
	purchaseStore order.PurchaseStore
	txnRepo       order.TransactionRepository
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	purchaseStore order.PurchaseStore,
	txnRepo order.TransactionRepository,
) *CheckoutService {
	return &CheckoutService{
		productRepo:   productRepo,
		purchaseStore: purchaseStore,
		txnRepo:       txnRepo,
	}
}

// Checkout purchases quantity units of a product for the given user. The
// stock decrement and transaction insert commit atomically, so concurrent
// purchases can never drive stock negative.
func (s *CheckoutService) Checkout(ctx context.Context, userID, productID uuid.UUID, quantity int) (*PurchaseResponse, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	if !product.InStock() {
		return nil, shared.ErrOutOfStock
	}
	if !product.CanFulfill(quantity) {
		return nil, shared.ErrInsufficientStock
	}

	txn, err := order.NewTransaction(userID, productID, quantity, product.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseStore.RecordPurchase(ctx, txn); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			// Lost a race since the pre-check. Re-read to report the
			// current state accurately.
			return nil, s.classifyStockFailure(ctx, productID)
		}
		return nil, err
	}

	return &PurchaseResponse{
		TransactionID: txn.ID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      txn.Quantity,
		UnitPrice:     product.UnitPrice,
		Total:         txn.Total,
		CreatedAt:     txn.CreatedAt,
	}, nil
}

// ListByUser lists one user's purchases, newest first
func (s *CheckoutService) ListByUser(ctx context.Context, userID uuid.UUID, filter HistoryFilter) ([]TransactionResponse, error) {
	details, err := s.txnRepo.FindByUser(ctx, userID, filter.ToDomainFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(details))
	for i := range details {
		responses[i] = ToTransactionResponse(&details[i])
	}
	return responses, nil
}

// ListAll lists all transactions with buyer and product names, newest first
func (s *CheckoutService) ListAll(ctx context.Context, filter HistoryFilter) ([]TransactionResponse, int64, error) {
	details, err := s.txnRepo.FindAllDetailed(ctx, filter.ToDomainFilter())
	if err != nil {
		return nil, 0, err
	}

	total, err := s.txnRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(details))
	for i := range details {
		responses[i] = ToTransactionResponse(&details[i])
	}
	return responses, total, nil
}

func (s *CheckoutService) classifyStockFailure(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrProductNotFound
		}
		return shared.ErrInsufficientStock
	}
	if !product.InStock() {
		return shared.ErrOutOfStock
	}
	return shared.ErrInsufficientStock
}
