package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shoplane/shoplane-api/internal/models"
)

// OrderRepository is the persistence contract for orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Create(ctx context.Context, o *models.Order) error
}

// OrderSQLRepository implements OrderRepository on PostgreSQL.
type OrderSQLRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderSQLRepository.
func NewOrderRepository(db *sqlx.DB) *OrderSQLRepository {
	return &OrderSQLRepository{db: db}
}

// GetByID returns an order by id.
func (r *OrderSQLRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderSQLRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, q, userID); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts a new order.
func (r *OrderSQLRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO orders (id, user_id, items, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`
	return r.db.QueryRowxContext(ctx, q, o.ID, o.UserID, o.Items, o.Total, o.Status).
		Scan(&o.CreatedAt, &o.UpdatedAt)
}
