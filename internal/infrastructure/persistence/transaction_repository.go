package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jelectro/storefront/internal/domain/order"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// GormTransactionRepository implements order.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Transaction, error) {
	var txn order.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindAllDetailed lists all transactions joined with username and product
// name, newest first
func (r *GormTransactionRepository) FindAllDetailed(ctx context.Context, filter shared.Filter) ([]order.TransactionDetail, error) {
	var rows []order.TransactionDetail
	query := r.db.WithContext(ctx).
		Model(&order.Transaction{}).
		Select("transactions.*, users.username AS username, products.name AS product_name").
		Joins("JOIN users ON users.id = transactions.user_id").
		Joins("JOIN products ON products.id = transactions.product_id").
		Order("transactions.created_at DESC")
	if err := applyPagination(query, filter).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByUser lists one user's transactions, newest first
func (r *GormTransactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.TransactionDetail, error) {
	var rows []order.TransactionDetail
	query := r.db.WithContext(ctx).
		Model(&order.Transaction{}).
		Select("transactions.*, users.username AS username, products.name AS product_name").
		Joins("JOIN users ON users.id = transactions.user_id").
		Joins("JOIN products ON products.id = transactions.product_id").
		Where("transactions.user_id = ?", userID).
		Order("transactions.created_at DESC")
	if err := applyPagination(query, filter).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count counts all transactions
func (r *GormTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Transaction{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
