package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/jelectro/storefront/internal/application/order"
)

// TransactionHandler handles the admin transaction listing
type TransactionHandler struct {
	BaseHandler
	checkoutService *apporder.CheckoutService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(checkoutService *apporder.CheckoutService) *TransactionHandler {
	return &TransactionHandler{checkoutService: checkoutService}
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var filter apporder.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	transactions, total, err := h.checkoutService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, transactions, total, page, pageSize)
}
