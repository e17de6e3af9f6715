package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// OrderService places orders against the catalog. It is the consumer of the
// inventory decrement.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService constructs an OrderService.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrder resolves each item, decrements inventory per product, and
// persists the order with name/price snapshots.
//
// Each decrement is atomic for its own record only. If an item fails on
// insufficient stock, earlier items in the same order stay decremented;
// there is no cross-record rollback.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errors.New("order validation failed: no order items")
	}

	order := &models.Order{
		UserID: userID,
		Items:  models.OrderItemList{},
		Status: models.OrderStatusPending,
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.New("order validation failed: quantity must be positive")
		}

		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			return nil, err
		}

		if _, err := s.productRepo.DecrementInventory(ctx, p.ID, item.Quantity); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			return nil, err
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
		order.Total += p.Price * float64(item.Quantity)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.ID).Str("user_id", userID).
		Int("items", len(order.Items)).Msg("order placed")
	return order, nil
}

// GetOrder returns an order visible to the requester: its owner, or any
// admin. Orders belonging to other users are reported as missing.
func (s *OrderService) GetOrder(ctx context.Context, id, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != requesterID && !isAdmin {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns the requester's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
