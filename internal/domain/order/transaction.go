package order

import (
	"github.com/google/uuid"
	"github.com/jelectro/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Transaction is an append-only purchase record. The total is captured
// at purchase time and never recomputed from the product's current price.
type Transaction struct {
	shared.BaseEntity
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a purchase record for quantity units at unitPrice each
func NewTransaction(userID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*Transaction, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if userID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	return &Transaction{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		Total:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}
