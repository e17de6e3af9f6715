package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// Default size for the featured and on-sale listings.
const defaultHighlightLimit = 8

// ProductService provides catalog business logic.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService constructs a ProductService.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProductsResult is the listing response envelope.
type ListProductsResult struct {
	Products      []models.Product `json:"products"`
	Page          int              `json:"page"`
	Pages         int              `json:"pages"`
	TotalProducts int              `json:"totalProducts"`
}

// List runs a parsed product query against the store and computes the
// pagination envelope: pages = ceil(total / limit).
func (s *ProductService) List(ctx context.Context, q *ProductQuery) (*ListProductsResult, error) {
	products, total, err := s.productRepo.List(ctx, &q.Filter, q.Sort, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}

	return &ListProductsResult{
		Products:      products,
		Page:          q.Page,
		Pages:         (total + q.Limit - 1) / q.Limit,
		TotalProducts: total,
	}, nil
}

// GetProduct resolves one product with its category joined.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateProductRequest carries the fields accepted on product creation.
// Price is a pointer so a missing price is distinguishable from zero.
type CreateProductRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          *float64               `json:"price"`
	CompareAtPrice *float64               `json:"compareAtPrice"`
	ImageURL       string                 `json:"imageUrl"`
	Images         []string               `json:"images"`
	Category       string                 `json:"category"`
	Brand          string                 `json:"brand"`
	SKU            string                 `json:"sku"`
	Inventory      int                    `json:"inventory"`
	Specifications []models.Specification `json:"specifications"`
	FreeShipping   bool                   `json:"freeShipping"`
	Featured       bool                   `json:"featured"`
	OnSale         bool                   `json:"onSale"`
}

// CreateProduct persists a new product. A duplicate SKU is a conflict;
// images, specifications, and flags default to empty/false when omitted.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	existing, err := s.productRepo.GetBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrSKUExists
	}

	p := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		CompareAtPrice: req.CompareAtPrice,
		ImageURL:       req.ImageURL,
		Images:         models.StringList(req.Images),
		CategoryID:     req.Category,
		Brand:          req.Brand,
		SKU:            req.SKU,
		Inventory:      req.Inventory,
		Specifications: models.SpecList(req.Specifications),
		FreeShipping:   req.FreeShipping,
		Featured:       req.Featured,
		OnSale:         req.OnSale,
	}
	if req.Price != nil {
		p.Price = *req.Price
	} else {
		return nil, errors.New("product validation failed: price is required")
	}
	if p.Images == nil {
		p.Images = models.StringList{}
	}
	if p.Specifications == nil {
		p.Specifications = models.SpecList{}
	}

	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProductRequest carries a partial field merge; nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name           *string                 `json:"name"`
	Description    *string                 `json:"description"`
	Price          *float64                `json:"price"`
	CompareAtPrice *float64                `json:"compareAtPrice"`
	ImageURL       *string                 `json:"imageUrl"`
	Images         *[]string               `json:"images"`
	Category       *string                 `json:"category"`
	Brand          *string                 `json:"brand"`
	SKU            *string                 `json:"sku"`
	Inventory      *int                    `json:"inventory"`
	Specifications *[]models.Specification `json:"specifications"`
	Rating         *float64                `json:"rating"`
	ReviewCount    *int                    `json:"reviewCount"`
	FreeShipping   *bool                   `json:"freeShipping"`
	Featured       *bool                   `json:"featured"`
	OnSale         *bool                   `json:"onSale"`
}

// UpdateProduct applies a partial merge, re-validates the merged record under
// the same constraints as create, and returns the post-update record with a
// fresh updatedAt.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		p.CompareAtPrice = req.CompareAtPrice
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Images != nil {
		p.Images = models.StringList(*req.Images)
	}
	if req.Category != nil {
		p.CategoryID = *req.Category
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Inventory != nil {
		p.Inventory = *req.Inventory
	}
	if req.Specifications != nil {
		p.Specifications = models.SpecList(*req.Specifications)
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.ReviewCount != nil {
		p.ReviewCount = *req.ReviewCount
	}
	if req.FreeShipping != nil {
		p.FreeShipping = *req.FreeShipping
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.OnSale != nil {
		p.OnSale = *req.OnSale
	}

	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	// Re-read so the response carries the joined category.
	return s.GetProduct(ctx, p.ID)
}

// DeleteProduct removes a product. The record itself is not returned, only
// confirmation.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

// DecrementInventory atomically reduces stock for one product. It fails with
// ErrInsufficientInventory when quantity exceeds the available count, leaving
// inventory unchanged.
func (s *ProductService) DecrementInventory(ctx context.Context, id string, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("product validation failed: quantity must be positive")
	}
	p, err := s.productRepo.DecrementInventory(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// FeaturedProducts returns up to limit products flagged as featured.
func (s *ProductService) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultHighlightLimit
	}
	t := true
	products, _, err := s.productRepo.List(ctx, &repository.ProductFilter{Featured: &t}, repository.SortNewest, limit, 0)
	return products, err
}

// OnSaleProducts returns up to limit products flagged as on sale. A product
// flagged onSale without a positive compareAtPrice has no discount to show
// and is excluded.
func (s *ProductService) OnSaleProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultHighlightLimit
	}
	t := true
	filter := &repository.ProductFilter{OnSale: &t, RequireDiscount: true}
	products, _, err := s.productRepo.List(ctx, filter, repository.SortNewest, limit, 0)
	return products, err
}

// validateProduct enforces the field constraints shared by create and update.
// Violations surface through the generic error path, like any other store
// constraint failure.
func (s *ProductService) validateProduct(ctx context.Context, p *models.Product) error {
	switch {
	case p.Name == "":
		return errors.New("product validation failed: name is required")
	case p.Description == "":
		return errors.New("product validation failed: description is required")
	case p.ImageURL == "":
		return errors.New("product validation failed: imageUrl is required")
	case p.Brand == "":
		return errors.New("product validation failed: brand is required")
	case p.SKU == "":
		return errors.New("product validation failed: sku is required")
	case p.CategoryID == "":
		return errors.New("product validation failed: category is required")
	case p.Price < 0:
		return errors.New("product validation failed: price must be >= 0")
	case p.CompareAtPrice != nil && *p.CompareAtPrice < 0:
		return errors.New("product validation failed: compareAtPrice must be >= 0")
	case p.Inventory < 0:
		return errors.New("product validation failed: inventory must be >= 0")
	case p.Rating < 0 || p.Rating > 5:
		return errors.New("product validation failed: rating must be between 0 and 5")
	case p.ReviewCount < 0:
		return errors.New("product validation failed: reviewCount must be >= 0")
	}

	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product validation failed: category %s does not exist", p.CategoryID)
		}
		return err
	}
	return nil
}
