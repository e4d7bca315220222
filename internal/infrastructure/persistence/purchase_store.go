package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jelectro/storefront/internal/domain/catalog"
	"github.com/jelectro/storefront/internal/domain/order"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// GormPurchaseStore implements order.PurchaseStore using GORM
type GormPurchaseStore struct {
	db *gorm.DB
}

// NewGormPurchaseStore creates a new GormPurchaseStore
func NewGormPurchaseStore(db *gorm.DB) *GormPurchaseStore {
	return &GormPurchaseStore{db: db}
}

// RecordPurchase decrements the product's stock and appends the transaction
// in a single database transaction. The decrement is conditional on
// sufficient stock, so two concurrent purchases can never oversell: the
// row only matches while stock >= quantity, and whichever UPDATE loses the
// race sees the already-reduced stock.
func (s *GormPurchaseStore) RecordPurchase(ctx context.Context, txn *order.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ? AND stock >= ?", txn.ProductID, txn.Quantity).
			Updates(map[string]any{
				"stock":      gorm.Expr("stock - ?", txn.Quantity),
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrInsufficientStock
		}

		return tx.Create(txn).Error
	})
}
