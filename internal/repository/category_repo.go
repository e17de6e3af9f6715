package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// CategoryRepository is the persistence contract for categories.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
}

// CategorySQLRepository implements CategoryRepository on PostgreSQL.
type CategorySQLRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategorySQLRepository.
func NewCategoryRepository(db *sqlx.DB) *CategorySQLRepository {
	return &CategorySQLRepository{db: db}
}

// ListActive returns active categories in display order.
func (r *CategorySQLRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	const q = `SELECT * FROM categories WHERE active = true ORDER BY sort_order, name`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a category by id.
func (r *CategorySQLRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM categories WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlug returns a category by its unique slug.
func (r *CategorySQLRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM categories WHERE slug = $1 LIMIT 1`, slug); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category.
func (r *CategorySQLRepository) Create(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO categories (id, name, slug, description, image_url, parent_id, active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.ParentID, c.Active, c.SortOrder)
	return translateCategoryErr(err)
}

// Update persists all mutable category fields.
func (r *CategorySQLRepository) Update(ctx context.Context, c *models.Category) error {
	const q = `
		UPDATE categories SET
			name = $2, slug = $3, description = $4, image_url = $5,
			parent_id = $6, active = $7, sort_order = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.ParentID, c.Active, c.SortOrder)
	if err != nil {
		return translateCategoryErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a category. The schema restricts deletion while products
// still reference the category; that surfaces as ErrCategoryInUse.
func (r *CategorySQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateCategoryErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// translateCategoryErr maps PostgreSQL constraint violations onto the
// application error set.
func translateCategoryErr(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation (slug)
			return utils.ErrSlugExists
		case "23503": // foreign_key_violation (products still reference it)
			return utils.ErrCategoryInUse
		}
	}
	return err
}
