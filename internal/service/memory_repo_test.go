package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// memProductRepo is an in-memory ProductRepository with the same contract as
// the SQL implementation, including the single-operation conditional
// decrement.
type memProductRepo struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]models.Product)}
}

// seed inserts a product as-is, keeping caller-provided ids and timestamps.
func (r *memProductRepo) seed(p models.Product) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.products[p.ID] = p
	return p
}

func (r *memProductRepo) countBySKU(sku string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.products {
		if p.SKU == sku {
			n++
		}
	}
	return n
}

func matches(p *models.Product, f *repository.ProductFilter) bool {
	if f == nil {
		return true
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.OnSale != nil && p.OnSale != *f.OnSale {
		return false
	}
	// NaN bounds compare false against everything, excluding all records.
	if f.MinPrice != nil && !(p.Price >= *f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && !(p.Price <= *f.MaxPrice) {
		return false
	}
	if f.InStock && p.Inventory <= 0 {
		return false
	}
	if f.RequireDiscount && (p.CompareAtPrice == nil || *p.CompareAtPrice <= 0) {
		return false
	}
	return true
}

func (r *memProductRepo) List(_ context.Context, filter *repository.ProductFilter, sortBy repository.ProductSort, limit, offset int) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if matches(&p, filter) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		switch sortBy {
		case repository.SortPriceAsc:
			return matched[i].Price < matched[j].Price
		case repository.SortPriceDesc:
			return matched[i].Price > matched[j].Price
		case repository.SortRating:
			return matched[i].Rating > matched[j].Rating
		default:
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
	})

	total := len(matched)
	if offset >= total {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return sql.ErrNoRows
	}
	p.UpdatedAt = time.Now()
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) DecrementInventory(_ context.Context, id string, quantity int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if p.Inventory < quantity {
		return nil, utils.ErrInsufficientInventory
	}
	p.Inventory -= quantity
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return &p, nil
}

// memCategoryRepo is an in-memory CategoryRepository.
type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[string]models.Category)}
}

func (r *memCategoryRepo) seed(c models.Category) models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.categories[c.ID] = c
	return c
}

func (r *memCategoryRepo) ListActive(_ context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Category
	for _, c := range r.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r *memCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memCategoryRepo) Create(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return utils.ErrSlugExists
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return sql.ErrNoRows
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

// memOrderRepo is an in-memory OrderRepository.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]models.Order)}
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &o, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders[o.ID] = *o
	return nil
}
