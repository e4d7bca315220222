package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jelectro/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// Stock is mutated by admin updates and by the checkout flow; the
// checkout decrement happens through a conditional update in the
// repository, never through this struct.
type Product struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(200);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stock      int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, categoryID uuid.UUID, unitPrice decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.ErrInvalidCategoryRef
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		CategoryID:        categoryID,
		UnitPrice:         unitPrice,
		Stock:             stock,
	}, nil
}

// Update updates the product's attributes
func (p *Product) Update(name string, categoryID uuid.UUID, unitPrice decimal.Decimal, stock int) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return err
	}
	if err := validateStock(stock); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.ErrInvalidCategoryRef
	}

	p.Name = strings.TrimSpace(name)
	p.CategoryID = categoryID
	p.UnitPrice = unitPrice
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// InStock returns true if the product has stock available
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// CanFulfill returns true if the product has at least quantity units in stock
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnitPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return nil
}
