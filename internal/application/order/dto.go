package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jelectro/storefront/internal/domain/order"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// CheckoutRequest represents a purchase request for one product
type CheckoutRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PurchaseResponse represents a completed purchase
type PurchaseResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionResponse represents a transaction row in listings
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HistoryFilter represents pagination options for transaction listings
type HistoryFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToDomainFilter converts the history filter into a repository filter
func (f HistoryFilter) ToDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	return filter
}

// ToTransactionResponse converts a joined transaction row to TransactionResponse
func ToTransactionResponse(d *order.TransactionDetail) TransactionResponse {
	return TransactionResponse{
		ID:          d.ID,
		Username:    d.Username,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		Total:       d.Total,
		CreatedAt:   d.CreatedAt,
	}
}
