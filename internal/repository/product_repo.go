package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// ProductFilter selects products for listing queries. Zero values mean
// "no filter"; pointer fields distinguish absent from false/zero.
type ProductFilter struct {
	CategoryID string
	Brand      string
	Featured   *bool
	OnSale     *bool
	// Inclusive price bounds. Either may be set alone. A NaN bound is passed
	// through to the store untouched; comparisons against NaN match nothing.
	MinPrice *float64
	MaxPrice *float64
	// InStock restricts to inventory > 0. There is deliberately no way to
	// filter for zero inventory.
	InStock bool
	// RequireDiscount restricts to compare_at_price > 0 (on-sale listings).
	RequireDiscount bool
}

// ProductSort is a recognized sort token.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortRating    ProductSort = "rating"
)

// orderBy maps a sort token to its ORDER BY clause. Anything unrecognized
// falls back to newest-first.
func (s ProductSort) orderBy() string {
	switch s {
	case SortPriceAsc:
		return "p.price ASC"
	case SortPriceDesc:
		return "p.price DESC"
	case SortRating:
		return "p.rating DESC"
	default:
		return "p.created_at DESC"
	}
}

// ProductRepository is the persistence contract for products. Implementations
// must make DecrementInventory a single conditional store operation so two
// concurrent decrements cannot both pass an inventory check.
type ProductRepository interface {
	List(ctx context.Context, filter *ProductFilter, sort ProductSort, limit, offset int) ([]models.Product, int, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	DecrementInventory(ctx context.Context, id string, quantity int) (*models.Product, error)
}

// ProductSQLRepository implements ProductRepository on PostgreSQL.
type ProductSQLRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductSQLRepository.
func NewProductRepository(db *sqlx.DB) *ProductSQLRepository {
	return &ProductSQLRepository{db: db}
}

// productRow extends Product with joined category columns for scanning.
type productRow struct {
	models.Product
	CategoryName sql.NullString `db:"category_name"`
	CategorySlug sql.NullString `db:"category_slug"`
}

func (r productRow) toProduct() models.Product {
	p := r.Product
	if r.CategoryName.Valid {
		p.Category = &models.CategoryRef{Name: r.CategoryName.String, Slug: r.CategorySlug.String}
	}
	return p
}

const productSelect = `
	SELECT p.*, c.name AS category_name, c.slug AS category_slug
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// buildWhere translates a filter into a WHERE clause with positional args.
func buildWhere(filter *ProductFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter == nil {
		return where, args
	}
	if filter.CategoryID != "" {
		where += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, filter.CategoryID)
		argIdx++
	}
	if filter.Brand != "" {
		where += fmt.Sprintf(" AND p.brand = $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.Featured != nil {
		where += fmt.Sprintf(" AND p.featured = $%d", argIdx)
		args = append(args, *filter.Featured)
		argIdx++
	}
	if filter.OnSale != nil {
		where += fmt.Sprintf(" AND p.on_sale = $%d", argIdx)
		args = append(args, *filter.OnSale)
		argIdx++
	}
	if filter.MinPrice != nil {
		where += fmt.Sprintf(" AND p.price >= $%d", argIdx)
		args = append(args, *filter.MinPrice)
		argIdx++
	}
	if filter.MaxPrice != nil {
		where += fmt.Sprintf(" AND p.price <= $%d", argIdx)
		args = append(args, *filter.MaxPrice)
		argIdx++
	}
	if filter.InStock {
		where += " AND p.inventory > 0"
	}
	if filter.RequireDiscount {
		where += " AND p.compare_at_price > 0"
	}
	return where, args
}

// List returns one page of products matching the filter, with the joined
// category, plus the total match count for pagination.
func (r *ProductSQLRepository) List(ctx context.Context, filter *ProductFilter, sort ProductSort, limit, offset int) ([]models.Product, int, error) {
	where, args := buildWhere(filter)

	countQuery := `SELECT COUNT(1) FROM products p ` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf("%s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		productSelect, where, sort.orderBy(), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, total, nil
}

// GetByID returns a single product with its category joined.
func (r *ProductSQLRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	const q = productSelect + ` WHERE p.id = $1 LIMIT 1`

	var row productRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	p := row.toProduct()
	return &p, nil
}

// GetBySKU returns a single product by its SKU.
func (r *ProductSQLRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	const q = productSelect + ` WHERE p.sku = $1 LIMIT 1`

	var row productRow
	if err := r.db.GetContext(ctx, &row, q, sku); err != nil {
		return nil, err
	}
	p := row.toProduct()
	return &p, nil
}

// Create inserts a new product. The id is generated here; timestamps come
// back from the store.
func (r *ProductSQLRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const q = `
		INSERT INTO products (
			id, name, description, price, compare_at_price, image_url, images,
			category_id, brand, sku, inventory, specifications, rating,
			review_count, free_shipping, featured, on_sale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.CompareAtPrice, p.ImageURL, p.Images,
		p.CategoryID, p.Brand, p.SKU, p.Inventory, p.Specifications, p.Rating,
		p.ReviewCount, p.FreeShipping, p.Featured, p.OnSale,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update persists all mutable fields and bumps updated_at.
func (r *ProductSQLRepository) Update(ctx context.Context, p *models.Product) error {
	const q = `
		UPDATE products SET
			name = $2, description = $3, price = $4, compare_at_price = $5,
			image_url = $6, images = $7, category_id = $8, brand = $9, sku = $10,
			inventory = $11, specifications = $12, rating = $13, review_count = $14,
			free_shipping = $15, featured = $16, on_sale = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.CompareAtPrice,
		p.ImageURL, p.Images, p.CategoryID, p.Brand, p.SKU,
		p.Inventory, p.Specifications, p.Rating, p.ReviewCount,
		p.FreeShipping, p.Featured, p.OnSale,
	).Scan(&p.UpdatedAt)
}

// Delete removes a product by id.
func (r *ProductSQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DecrementInventory atomically decrements inventory by quantity, but only if
// enough stock remains. The guard and the write are one statement, so
// concurrent decrements cannot interleave between check and update.
func (r *ProductSQLRepository) DecrementInventory(ctx context.Context, id string, quantity int) (*models.Product, error) {
	const q = `
		UPDATE products SET inventory = inventory - $2, updated_at = NOW()
		WHERE id = $1 AND inventory >= $2
		RETURNING inventory, updated_at`

	var p models.Product
	p.ID = id
	err := r.db.QueryRowxContext(ctx, q, id, quantity).Scan(&p.Inventory, &p.UpdatedAt)
	if err == nil {
		return &p, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// The guard rejected: distinguish a missing product from too little stock.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id); err != nil {
		return nil, err
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	return nil, utils.ErrInsufficientInventory
}
