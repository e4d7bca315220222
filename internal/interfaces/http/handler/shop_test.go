package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jelectro/storefront/internal/application/catalog"
	apporder "github.com/jelectro/storefront/internal/application/order"
	"github.com/jelectro/storefront/internal/domain/catalog"
	"github.com/jelectro/storefront/internal/domain/order"
	"github.com/jelectro/storefront/internal/domain/shared"
	"github.com/jelectro/storefront/internal/interfaces/http/dto"
	"github.com/jelectro/storefront/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockProductRepository implements catalog.ProductRepository for handler tests
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllWithCategory(ctx context.Context, filter shared.Filter) ([]catalog.ProductWithCategory, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.ProductWithCategory), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository implements catalog.CategoryRepository for handler tests
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPurchaseStore implements order.PurchaseStore for handler tests
type MockPurchaseStore struct {
	mock.Mock
}

func (m *MockPurchaseStore) RecordPurchase(ctx context.Context, txn *order.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockTransactionRepository implements order.TransactionRepository for handler tests
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllDetailed(ctx context.Context, filter shared.Filter) ([]order.TransactionDetail, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.TransactionDetail), args.Error(1)
}

func (m *MockTransactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.TransactionDetail, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.TransactionDetail), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// fakeSession injects an authenticated identity without real tokens
func fakeSession(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionUserIDKey, userID.String())
		c.Set(middleware.SessionUsernameKey, "budi")
		c.Set(middleware.SessionRoleKey, role)
		c.Next()
	}
}

type shopFixture struct {
	router      *gin.Engine
	productRepo *MockProductRepository
	store       *MockPurchaseStore
	txnRepo     *MockTransactionRepository
	userID      uuid.UUID
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	store := new(MockPurchaseStore)
	txnRepo := new(MockTransactionRepository)

	productService := appcatalog.NewProductService(productRepo, categoryRepo)
	checkoutService := apporder.NewCheckoutService(productRepo, store, txnRepo)
	h := NewShopHandler(productService, checkoutService)

	userID := uuid.New()
	router := gin.New()
	router.GET("/shop/products", h.ListProducts)
	router.GET("/shop/products/:id", h.GetProduct)
	router.POST("/shop/checkout/:id", fakeSession(userID, "user"), h.Checkout)
	router.GET("/shop/purchases", fakeSession(userID, "user"), h.ListPurchases)

	return &shopFixture{
		router:      router,
		productRepo: productRepo,
		store:       store,
		txnRepo:     txnRepo,
		userID:      userID,
	}
}

func checkoutBody(t *testing.T, quantity int) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{"quantity": quantity})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestShopHandler_Checkout(t *testing.T) {
	t.Run("purchases product and returns 201", func(t *testing.T) {
		f := newShopFixture(t)

		product, err := catalog.NewProduct("Wireless Mouse", uuid.New(), decimal.NewFromInt(150000), 10)
		require.NoError(t, err)

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.store.On("RecordPurchase", mock.Anything, mock.AnythingOfType("*order.Transaction")).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/shop/checkout/"+product.ID.String(), checkoutBody(t, 2))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("returns 400 for zero quantity", func(t *testing.T) {
		f := newShopFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/shop/checkout/"+uuid.NewString(), checkoutBody(t, 0))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_QUANTITY")
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		f := newShopFixture(t)

		productID := uuid.New()
		f.productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest(http.MethodPost, "/shop/checkout/"+productID.String(), checkoutBody(t, 1))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
	})

	t.Run("returns 422 when stock is insufficient", func(t *testing.T) {
		f := newShopFixture(t)

		product, err := catalog.NewProduct("Wireless Mouse", uuid.New(), decimal.NewFromInt(150000), 1)
		require.NoError(t, err)

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		req := httptest.NewRequest(http.MethodPost, "/shop/checkout/"+product.ID.String(), checkoutBody(t, 5))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")
	})
}

func TestShopHandler_ListProducts(t *testing.T) {
	f := newShopFixture(t)

	product, err := catalog.NewProduct("Wireless Mouse", uuid.New(), decimal.NewFromInt(150000), 10)
	require.NoError(t, err)

	rows := []catalog.ProductWithCategory{{Product: *product, CategoryName: "Accessories"}}
	f.productRepo.On("FindAllWithCategory", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(rows, nil)
	f.productRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/shop/products", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Accessories")
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestShopHandler_ListPurchases(t *testing.T) {
	f := newShopFixture(t)

	txn, err := order.NewTransaction(f.userID, uuid.New(), 2, decimal.NewFromInt(100))
	require.NoError(t, err)

	details := []order.TransactionDetail{{
		Transaction: *txn,
		Username:    "budi",
		ProductName: "Wireless Mouse",
	}}
	f.txnRepo.On("FindByUser", mock.Anything, f.userID, mock.AnythingOfType("shared.Filter")).Return(details, nil)

	req := httptest.NewRequest(http.MethodGet, "/shop/purchases", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wireless Mouse")
}
