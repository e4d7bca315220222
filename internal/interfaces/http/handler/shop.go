package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/jelectro/storefront/internal/application/catalog"
	apporder "github.com/jelectro/storefront/internal/application/order"
	"github.com/jelectro/storefront/internal/interfaces/http/dto"
)

// ShopHandler handles the public storefront and the checkout flow
type ShopHandler struct {
	BaseHandler
	productService  *appcatalog.ProductService
	checkoutService *apporder.CheckoutService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(
	productService *appcatalog.ProductService,
	checkoutService *apporder.CheckoutService,
) *ShopHandler {
	return &ShopHandler{
		productService:  productService,
		checkoutService: checkoutService,
	}
}

// ListProducts handles GET /shop/products
func (h *ShopHandler) ListProducts(c *gin.Context) {
	var filter appcatalog.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetProduct handles GET /shop/products/:id
func (h *ShopHandler) GetProduct(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Checkout handles POST /shop/checkout/:id
func (h *ShopHandler) Checkout(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	userID, err := getSessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var body apporder.CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeInvalidQuantity),
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidQuantity,
				"Quantity must be a positive integer", getRequestID(c)))
		return
	}

	purchase, err := h.checkoutService.Checkout(c.Request.Context(), userID, uuid.MustParse(req.ID), body.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, purchase)
}

// ListPurchases handles GET /shop/purchases
func (h *ShopHandler) ListPurchases(c *gin.Context) {
	userID, err := getSessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter apporder.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	purchases, err := h.checkoutService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchases)
}
