package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jelectro/storefront/internal/domain/catalog"
	"github.com/jelectro/storefront/internal/domain/shared"
)

// ProductService handles product management operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product. The referenced category must exist.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.categoryRepo.ExistsByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrInvalidCategoryRef
	}

	product, err := catalog.NewProduct(req.Name, req.CategoryID, req.UnitPrice, req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products joined with category names
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := filter.ToDomainFilter()
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}

	products, err := s.productRepo.FindAllWithCategory(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductWithCategoryResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product's attributes. A changed category must exist.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	if req.CategoryID != product.CategoryID {
		exists, err := s.categoryRepo.ExistsByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrInvalidCategoryRef
		}
	}

	if err := product.Update(req.Name, req.CategoryID, req.UnitPrice, req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrProductNotFound
		}
		return err
	}
	return nil
}
